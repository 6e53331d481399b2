package service

import (
	"fmt"
	"strings"
	"unicode"

	"vocabville/internal/models"
	"vocabville/internal/worlds"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// masteredStreak is how many consecutive unassisted passes master a word.
const masteredStreak = 3

// Submission is one full study answer for a word: all three facets at
// once, plus whether the card was flipped to peek at the answer side.
type Submission struct {
	Term     string
	Flipped  bool
	Synonym  string
	Antonym  string
	Spelling string
}

// SubmitResult reports a graded study submission.
type SubmitResult struct {
	Correct     bool
	WrongFacets []models.Facet
	// RevealTerm carries the correct spelling when spelling was the only
	// facet missed.
	RevealTerm    string
	Status        models.WordStatus
	Rewarded      bool
	UnlockedBiome string
	Events        []Event
	Message       string
}

// StudyOverview is the state a study screen needs for one biome.
type StudyOverview struct {
	Cards          []models.WordCard
	Pool           []models.WordCard
	Status         map[string]models.WordStatus
	CompletedOnce  int
	CraftingTables int
	Placeholder    bool
	UnlockedBiome  string
	Events         []Event
}

// StudyService runs the untimed study engine: full-card submissions
// graded across all three facets, mastery streaks, crafting-table rewards
// and biome unlock checks.
type StudyService struct {
	mastery   *MasteryService
	inventory InventoryStore
	unlocks   UnlockStore
	words     WordSource
}

// NewStudyService creates a new study service
func NewStudyService(mastery *MasteryService, inventory InventoryStore, unlocks UnlockStore, words WordSource) *StudyService {
	return &StudyService{
		mastery:   mastery,
		inventory: inventory,
		unlocks:   unlocks,
		words:     words,
	}
}

// Overview loads the study state for a biome. The pool holds the words
// still unmastered, falling back to the full list once everything is
// mastered so the screen never goes empty. Loading also re-checks the
// unlock condition, so progress earned in quests surfaces here too.
func (s *StudyService) Overview(dimension, biome string) (*StudyOverview, error) {
	if !worlds.ValidScope(dimension, biome) {
		return nil, ErrUnknownScope
	}
	scope := models.Scope{Dimension: dimension, Biome: biome}

	cards, placeholder := s.words.Words(dimension, biome)
	snapshot, err := s.mastery.Snapshot(scope)
	if err != nil {
		return nil, err
	}

	status := make(map[string]models.WordStatus, len(cards))
	completed := 0
	pool := make([]models.WordCard, 0, len(cards))
	for _, w := range cards {
		m := snapshot[w.Term]
		if m == nil {
			m = models.NewWordMastery(scope, w.Term)
		}
		status[w.Term] = m.Status()
		if m.AnsweredCorrectOnce {
			completed++
		}
		if !m.Mastered {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		pool = cards
	}

	bag, err := s.inventory.Bag(scope)
	if err != nil {
		return nil, err
	}

	ov := &StudyOverview{
		Cards:          cards,
		Pool:           pool,
		Status:         status,
		CompletedOnce:  completed,
		CraftingTables: bag[models.ItemCraftingTable],
		Placeholder:    placeholder,
	}

	unlocked, err := s.CheckUnlock(scope)
	if err != nil {
		return nil, err
	}
	if unlocked != "" {
		ov.UnlockedBiome = unlocked
		ov.Events = append(ov.Events, unlockEvent(worlds.BiomeName(unlocked)))
	}
	return ov, nil
}

// Submit grades a study submission. All three facets must be right to
// pass. Every pass without flipping the card pays a crafting table and
// extends the mastery streak; a flipped pass keeps progress but earns
// nothing; any miss resets the streak.
func (s *StudyService) Submit(dimension, biome string, sub Submission) (*SubmitResult, error) {
	if !worlds.ValidScope(dimension, biome) {
		return nil, ErrUnknownScope
	}
	scope := models.Scope{Dimension: dimension, Biome: biome}

	cards, _ := s.words.Words(dimension, biome)
	var card *models.WordCard
	for i := range cards {
		if strings.EqualFold(cards[i].Term, sub.Term) {
			card = &cards[i]
			break
		}
	}
	if card == nil {
		return nil, ErrUnknownWord
	}

	m, err := s.mastery.Get(scope, card.Term)
	if err != nil {
		return nil, err
	}
	if sub.Flipped {
		m.TotalFlips++
	}

	res := &SubmitResult{}
	var wrong []models.Facet
	if card.HasSynonyms() && !answersMatch(sub.Synonym, card.Synonyms.Correct) {
		wrong = append(wrong, models.FacetSynonym)
	}
	if card.HasAntonyms() && !answersMatch(sub.Antonym, card.Antonyms.Correct) {
		wrong = append(wrong, models.FacetAntonym)
	}
	spellingWrong := !answersMatch(sub.Spelling, card.Term)
	if spellingWrong {
		wrong = append(wrong, models.FacetSpelling)
	}

	if len(wrong) == 0 {
		res.Correct = true
		m.AnsweredCorrectOnce = true
		m.LastResult = "success"
		if !sub.Flipped {
			m.MasteryStreak++
			if err := s.inventory.Add(scope, models.ItemCraftingTable, 1); err != nil {
				return nil, err
			}
			res.Rewarded = true
			res.Events = append(res.Events, rewardEvent("You earned 1 Crafting Table!"))
			if m.MasteryStreak >= masteredStreak && !m.Mastered {
				m.Mastered = true
				res.Events = append(res.Events, rewardEvent("%q mastered!", card.Term))
			}
			res.Message = "Correct!"
		} else {
			res.Message = "Correct, but no reward for a flipped card."
		}
	} else {
		m.LastResult = "fail"
		m.MasteryStreak = 0
		res.WrongFacets = wrong
		res.Message = wrongMessage(wrong)
		if len(wrong) == 1 && spellingWrong {
			res.RevealTerm = card.Term
		}
	}

	if err := s.mastery.Save(m); err != nil {
		return nil, fmt.Errorf("failed to persist study result for %q: %w", card.Term, err)
	}
	res.Status = m.Status()

	unlocked, err := s.CheckUnlock(scope)
	if err != nil {
		return nil, err
	}
	if unlocked != "" {
		res.UnlockedBiome = unlocked
		res.Events = append(res.Events, unlockEvent(worlds.BiomeName(unlocked)))
	}
	return res, nil
}

// Navigate steps through the study pool from the given position, wrapping
// at both ends. The pool holds the unmastered words, falling back to the
// full list; it returns the card landed on and its pool index.
func (s *StudyService) Navigate(dimension, biome string, index, delta int) (*models.WordCard, int, error) {
	if !worlds.ValidScope(dimension, biome) {
		return nil, 0, ErrUnknownScope
	}
	scope := models.Scope{Dimension: dimension, Biome: biome}

	cards, _ := s.words.Words(dimension, biome)
	snapshot, err := s.mastery.Snapshot(scope)
	if err != nil {
		return nil, 0, err
	}

	pool := make([]models.WordCard, 0, len(cards))
	for _, w := range cards {
		if m := snapshot[w.Term]; m == nil || !m.Mastered {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		pool = cards
	}
	if len(pool) == 0 {
		return nil, 0, ErrUnknownWord
	}

	i := WrapIndex(index, delta, len(pool))
	card := pool[i]
	return &card, i, nil
}

// CheckUnlock unlocks the next biome in catalog order when every recorded
// word in the scope has retired. Returns the newly unlocked slug, or ""
// when nothing changed.
func (s *StudyService) CheckUnlock(scope models.Scope) (string, error) {
	done, err := s.mastery.AllRetired(scope)
	if err != nil || !done {
		return "", err
	}

	next, ok := worlds.NextBiome(scope.Biome)
	if !ok {
		return "", nil
	}
	changed, err := s.unlocks.Unlock(scope.Dimension, next)
	if err != nil {
		return "", fmt.Errorf("failed to unlock %s: %w", next, err)
	}
	if !changed {
		return "", nil
	}
	return next, nil
}

func wrongMessage(wrong []models.Facet) string {
	names := make([]string, len(wrong))
	for i, f := range wrong {
		names[i] = worlds.TitleCase(string(f))
	}
	switch len(names) {
	case 1:
		return names[0] + " is incorrect."
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1] + " are incorrect."
	}
}

// WrapIndex steps an index by delta within [0, n), wrapping at both ends.
func WrapIndex(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	i = (i + delta) % n
	if i < 0 {
		i += n
	}
	return i
}

// answersMatch compares a submitted answer to the expected one ignoring
// case, surrounding space and diacritics, so "resume" passes for
// "résumé".
func answersMatch(got, want string) bool {
	return normalizeAnswer(got) == normalizeAnswer(want)
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	stripper := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(stripper, s); err == nil {
		return out
	}
	return s
}
