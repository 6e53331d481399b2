package service

import (
	"strings"
	"time"

	"vocabville/internal/models"
)

// In-memory store fakes shared by the service tests.

type fakeMasteryStore struct {
	records map[string]models.WordMastery
}

func newFakeMasteryStore() *fakeMasteryStore {
	return &fakeMasteryStore{records: make(map[string]models.WordMastery)}
}

func masteryKey(scope models.Scope, term string) string {
	return scope.String() + "/" + term
}

func (f *fakeMasteryStore) Get(scope models.Scope, term string) (*models.WordMastery, error) {
	if m, ok := f.records[masteryKey(scope, term)]; ok {
		clone := m
		return &clone, nil
	}
	return models.NewWordMastery(scope, term), nil
}

func (f *fakeMasteryStore) GetAll(scope models.Scope) (map[string]*models.WordMastery, error) {
	out := make(map[string]*models.WordMastery)
	for _, m := range f.records {
		if m.Dimension == scope.Dimension && m.Biome == scope.Biome {
			clone := m
			out[m.Term] = &clone
		}
	}
	return out, nil
}

func (f *fakeMasteryStore) Save(m *models.WordMastery) error {
	f.records[masteryKey(m.Scope(), m.Term)] = *m
	return nil
}

func (f *fakeMasteryStore) All() ([]models.WordMastery, error) {
	out := make([]models.WordMastery, 0, len(f.records))
	for _, m := range f.records {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMasteryStore) Clear() error {
	f.records = make(map[string]models.WordMastery)
	return nil
}

type fakeInventoryStore struct {
	counts map[string]int
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{counts: make(map[string]int)}
}

func (f *fakeInventoryStore) Count(scope models.Scope, item string) (int, error) {
	return f.counts[scope.String()+"/"+item], nil
}

func (f *fakeInventoryStore) Bag(scope models.Scope) (map[string]int, error) {
	prefix := scope.String() + "/"
	bag := make(map[string]int)
	for key, count := range f.counts {
		if strings.HasPrefix(key, prefix) {
			bag[strings.TrimPrefix(key, prefix)] = count
		}
	}
	return bag, nil
}

func (f *fakeInventoryStore) Add(scope models.Scope, item string, qty int) error {
	f.counts[scope.String()+"/"+item] += qty
	return nil
}

func (f *fakeInventoryStore) All() ([]models.InventoryItem, error) {
	return nil, nil
}

func (f *fakeInventoryStore) Clear() error {
	f.counts = make(map[string]int)
	return nil
}

type fakeUnlockStore struct {
	unlocked map[string]bool
}

func newFakeUnlockStore() *fakeUnlockStore {
	return &fakeUnlockStore{unlocked: make(map[string]bool)}
}

func (f *fakeUnlockStore) IsUnlocked(dimension, biome string) (bool, error) {
	return f.unlocked[dimension+"/"+biome], nil
}

func (f *fakeUnlockStore) Unlock(dimension, biome string) (bool, error) {
	key := dimension + "/" + biome
	if f.unlocked[key] {
		return false, nil
	}
	f.unlocked[key] = true
	return true, nil
}

func (f *fakeUnlockStore) All() (map[string]map[string]bool, error) {
	out := make(map[string]map[string]bool)
	for key, v := range f.unlocked {
		if !v {
			continue
		}
		for i := 0; i < len(key); i++ {
			if key[i] == '/' {
				dim, biome := key[:i], key[i+1:]
				if out[dim] == nil {
					out[dim] = make(map[string]bool)
				}
				out[dim][biome] = true
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUnlockStore) Clear() error {
	f.unlocked = make(map[string]bool)
	return nil
}

type fakeLedgerStore struct {
	ledger       models.Ledger
	failNextSave error
}

func (f *fakeLedgerStore) Load() (*models.Ledger, error) {
	clone := f.ledger
	return &clone, nil
}

func (f *fakeLedgerStore) Save(l *models.Ledger) error {
	if f.failNextSave != nil {
		err := f.failNextSave
		f.failNextSave = nil
		return err
	}
	f.ledger = *l
	return nil
}

func (f *fakeLedgerStore) Clear() error {
	f.ledger = models.Ledger{}
	return nil
}

type fakeStreakStore struct {
	streak models.Streak
}

func (f *fakeStreakStore) Load() (*models.Streak, error) {
	clone := f.streak
	return &clone, nil
}

func (f *fakeStreakStore) Save(s *models.Streak) error {
	f.streak = *s
	return nil
}

func (f *fakeStreakStore) Clear() error {
	f.streak = models.Streak{}
	return nil
}

// fakeClock is a settable Clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// staticWords serves a fixed card list.
type staticWords struct {
	cards       []models.WordCard
	placeholder bool
}

func (s staticWords) Words(dimension, biome string) ([]models.WordCard, bool) {
	return s.cards, s.placeholder
}

// countingSpeaker records speech requests.
type countingSpeaker struct {
	spoken []string
}

func (s *countingSpeaker) Speak(term string) {
	s.spoken = append(s.spoken, term)
}

func newTestEconomy(clock Clock) (*EconomyService, *fakeLedgerStore, *fakeStreakStore) {
	ledger := &fakeLedgerStore{}
	streaks := &fakeStreakStore{}
	return NewEconomyService(ledger, streaks, clock, "", nil), ledger, streaks
}

func testCards() []models.WordCard {
	return []models.WordCard{
		{
			Term:       "brook",
			Definition: "A small stream.",
			Synonyms:   models.MCQ{Correct: "stream", Options: []string{"stream", "mountain", "desert", "cloud"}},
			Antonyms:   models.MCQ{Correct: "ocean", Options: []string{"ocean", "creek", "rivulet", "burn"}},
		},
		{
			Term:       "meadow",
			Definition: "A field of grass and flowers.",
			Synonyms:   models.MCQ{Correct: "field", Options: []string{"field", "cavern", "summit", "shore"}},
			Antonyms:   models.MCQ{Correct: "wasteland", Options: []string{"wasteland", "pasture", "lea", "grassland"}},
		},
	}
}
