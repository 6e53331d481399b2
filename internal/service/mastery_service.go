package service

import (
	"fmt"

	"vocabville/internal/models"
)

// MasteryService owns the word-level progress rules: facet counters and
// the retirement state machine.
type MasteryService struct {
	store MasteryStore
}

// NewMasteryService creates a new mastery service
func NewMasteryService(store MasteryStore) *MasteryService {
	return &MasteryService{store: store}
}

// Bump records one correct answer for a facet and re-evaluates retirement.
// The record is created on the first correct answer and persisted on every
// call. The Retired flag is monotonic: Bump sets it the first time every
// facet counter reaches the word retirement threshold and never clears it.
func (s *MasteryService) Bump(scope models.Scope, term string, facet models.Facet) (*models.WordMastery, error) {
	m, err := s.store.Get(scope, term)
	if err != nil {
		return nil, err
	}

	m.BumpFacet(facet)

	if m.SpellingCorrect >= models.WordRetireCount &&
		m.SynonymCorrect >= models.WordRetireCount &&
		m.AntonymCorrect >= models.WordRetireCount {
		m.Retired = true
	}

	if err := s.store.Save(m); err != nil {
		return nil, fmt.Errorf("failed to persist bump for %q: %w", term, err)
	}
	return m, nil
}

// Get returns the mastery record for a word, zeroed when unrecorded.
func (s *MasteryService) Get(scope models.Scope, term string) (*models.WordMastery, error) {
	return s.store.Get(scope, term)
}

// Snapshot returns every recorded mastery entry in a scope, keyed by term.
func (s *MasteryService) Snapshot(scope models.Scope) (map[string]*models.WordMastery, error) {
	return s.store.GetAll(scope)
}

// Save persists a mutated mastery record.
func (s *MasteryService) Save(m *models.WordMastery) error {
	return s.store.Save(m)
}

// AllRetired reports whether the scope has at least one recorded word and
// every recorded word is fully retired. This is the biome completion
// condition that drives unlocks.
func (s *MasteryService) AllRetired(scope models.Scope) (bool, error) {
	snapshot, err := s.store.GetAll(scope)
	if err != nil {
		return false, err
	}
	if len(snapshot) == 0 {
		return false, nil
	}
	for _, m := range snapshot {
		if !m.WordRetired() {
			return false, nil
		}
	}
	return true, nil
}
