package service

import (
	"errors"
	"time"

	"vocabville/internal/models"
)

// Sentinel errors surfaced by the session engines.
var (
	// ErrUnknownScope means the (dimension, biome) pair is not in the
	// world catalog; no session is produced.
	ErrUnknownScope = errors.New("unknown dimension or biome")

	// ErrSessionNotFound means the quest session has expired or never
	// existed.
	ErrSessionNotFound = errors.New("quest session not found")

	// ErrSessionNotActive means the quest session is not accepting
	// answers (still in prep, or already terminal).
	ErrSessionNotActive = errors.New("quest session not active")

	// ErrUnknownWord means the study submission names a term outside
	// the biome's word list.
	ErrUnknownWord = errors.New("word not in this biome")

	// ErrBadConversion means the requested tier pair has no fixed ratio.
	ErrBadConversion = errors.New("no conversion between those tiers")

	// ErrPINMismatch means the parent PIN did not match.
	ErrPINMismatch = errors.New("parent PIN incorrect")
)

// MasteryStore is the persistence surface the engines need for word
// mastery. Satisfied by repository.MasteryRepository and by in-memory
// fakes in tests.
type MasteryStore interface {
	Get(scope models.Scope, term string) (*models.WordMastery, error)
	GetAll(scope models.Scope) (map[string]*models.WordMastery, error)
	Save(m *models.WordMastery) error
	Clear() error
}

// InventoryStore persists per-scope item counters.
type InventoryStore interface {
	Bag(scope models.Scope) (map[string]int, error)
	Add(scope models.Scope, item string, qty int) error
	All() ([]models.InventoryItem, error)
	Clear() error
}

// UnlockStore persists the biome unlock map.
type UnlockStore interface {
	IsUnlocked(dimension, biome string) (bool, error)
	Unlock(dimension, biome string) (bool, error)
	All() (map[string]map[string]bool, error)
	Clear() error
}

// LedgerStore persists the currency ledger singleton.
type LedgerStore interface {
	Load() (*models.Ledger, error)
	Save(l *models.Ledger) error
	Clear() error
}

// StreakStore persists the daily streak singleton.
type StreakStore interface {
	Load() (*models.Streak, error)
	Save(s *models.Streak) error
	Clear() error
}

// WordSource resolves word-list content for a scope.
type WordSource interface {
	Words(dimension, biome string) (cards []models.WordCard, placeholder bool)
}

// Clock abstracts wall-clock time so the timed quest engine is
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Speaker abstracts audio playback preparation for spelling prompts.
// Implementations must never block grading.
type Speaker interface {
	Speak(term string)
}

// NopSpeaker discards speech requests.
type NopSpeaker struct{}

func (NopSpeaker) Speak(string) {}
