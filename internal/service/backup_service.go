package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"vocabville/internal/models"
)

// MasteryLister extends MasteryStore with the full cross-scope listing the
// exporter needs.
type MasteryLister interface {
	MasteryStore
	All() ([]models.WordMastery, error)
}

// BackupData represents the complete progression backup structure
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Mastery    []MasteryBackup   `json:"mastery"`
	Inventory  []InventoryBackup `json:"inventory"`
	Unlocks    []UnlockBackup    `json:"unlocks"`
	Ledger     models.Ledger     `json:"ledger"`
	Streak     StreakBackup      `json:"streak"`
}

// MasteryBackup represents one word mastery record for backup
type MasteryBackup struct {
	Dimension           string    `json:"dimension"`
	Biome               string    `json:"biome"`
	Term                string    `json:"term"`
	SpellingCorrect     int       `json:"spelling_correct"`
	SynonymCorrect      int       `json:"synonym_correct"`
	AntonymCorrect      int       `json:"antonym_correct"`
	Retired             bool      `json:"retired"`
	AnsweredCorrectOnce bool      `json:"answered_correct_once"`
	MasteryStreak       int       `json:"mastery_streak"`
	Mastered            bool      `json:"mastered"`
	TotalFlips          int       `json:"total_flips"`
	LastResult          string    `json:"last_result"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// InventoryBackup represents one inventory counter for backup
type InventoryBackup struct {
	Dimension string `json:"dimension"`
	Biome     string `json:"biome"`
	Item      string `json:"item"`
	Count     int    `json:"count"`
}

// UnlockBackup represents one unlocked biome for backup
type UnlockBackup struct {
	Dimension string `json:"dimension"`
	Biome     string `json:"biome"`
}

// StreakBackup represents the daily streak state for backup
type StreakBackup struct {
	LastAttempt string `json:"last_attempt"`
	Count       int    `json:"count"`
}

// BackupService handles progression export, restore and full resets
type BackupService struct {
	mastery   MasteryLister
	inventory InventoryStore
	unlocks   UnlockStore
	ledger    LedgerStore
	streaks   StreakStore
}

// NewBackupService creates a new backup service
func NewBackupService(mastery MasteryLister, inventory InventoryStore, unlocks UnlockStore, ledger LedgerStore, streaks StreakStore) *BackupService {
	return &BackupService{
		mastery:   mastery,
		inventory: inventory,
		unlocks:   unlocks,
		ledger:    ledger,
		streaks:   streaks,
	}
}

// Export creates a complete backup of the progression state to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting progression export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Export complete: %s", outputPath)
	return nil
}

// ExportToWriter streams the backup JSON to a writer.
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	records, err := s.mastery.All()
	if err != nil {
		return fmt.Errorf("failed to export mastery: %w", err)
	}
	for _, m := range records {
		backup.Mastery = append(backup.Mastery, MasteryBackup{
			Dimension:           m.Dimension,
			Biome:               m.Biome,
			Term:                m.Term,
			SpellingCorrect:     m.SpellingCorrect,
			SynonymCorrect:      m.SynonymCorrect,
			AntonymCorrect:      m.AntonymCorrect,
			Retired:             m.Retired,
			AnsweredCorrectOnce: m.AnsweredCorrectOnce,
			MasteryStreak:       m.MasteryStreak,
			Mastered:            m.Mastered,
			TotalFlips:          m.TotalFlips,
			LastResult:          m.LastResult,
			UpdatedAt:           m.UpdatedAt,
		})
	}

	items, err := s.inventory.All()
	if err != nil {
		return fmt.Errorf("failed to export inventory: %w", err)
	}
	for _, it := range items {
		backup.Inventory = append(backup.Inventory, InventoryBackup{
			Dimension: it.Dimension,
			Biome:     it.Biome,
			Item:      it.Item,
			Count:     it.Count,
		})
	}

	unlocks, err := s.unlocks.All()
	if err != nil {
		return fmt.Errorf("failed to export unlocks: %w", err)
	}
	for dimension, biomes := range unlocks {
		for biome := range biomes {
			backup.Unlocks = append(backup.Unlocks, UnlockBackup{Dimension: dimension, Biome: biome})
		}
	}

	ledger, err := s.ledger.Load()
	if err != nil {
		return fmt.Errorf("failed to export ledger: %w", err)
	}
	backup.Ledger = *ledger

	streak, err := s.streaks.Load()
	if err != nil {
		return fmt.Errorf("failed to export streak: %w", err)
	}
	backup.Streak.Count = streak.Count
	if !streak.LastAttempt.IsZero() {
		backup.Streak.LastAttempt = streak.LastAttempt.Format("2006-01-02")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d mastery records, %d inventory rows, %d unlocks",
		len(backup.Mastery), len(backup.Inventory), len(backup.Unlocks))
	return nil
}

// Import restores a backup file. With clearExisting set, all current
// progression is wiped first; otherwise records merge into what is there.
func (s *BackupService) Import(inputPath string, clearExisting bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clearExisting)
}

// ImportFromReader restores a backup from a reader. The ledger section
// accepts both the nested lifetime/current shape and the legacy flat
// balance shape.
func (s *BackupService) ImportFromReader(r io.Reader, clearExisting bool) error {
	log.Println("Starting progression import...")

	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	if clearExisting {
		log.Println("Clearing existing progression data...")
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	for _, b := range backup.Mastery {
		m := &models.WordMastery{
			Dimension:           b.Dimension,
			Biome:               b.Biome,
			Term:                b.Term,
			SpellingCorrect:     b.SpellingCorrect,
			SynonymCorrect:      b.SynonymCorrect,
			AntonymCorrect:      b.AntonymCorrect,
			Retired:             b.Retired,
			AnsweredCorrectOnce: b.AnsweredCorrectOnce,
			MasteryStreak:       b.MasteryStreak,
			Mastered:            b.Mastered,
			TotalFlips:          b.TotalFlips,
			LastResult:          b.LastResult,
			UpdatedAt:           b.UpdatedAt,
		}
		if err := s.mastery.Save(m); err != nil {
			return fmt.Errorf("failed to import mastery for %q: %w", b.Term, err)
		}
	}

	for _, it := range backup.Inventory {
		scope := models.Scope{Dimension: it.Dimension, Biome: it.Biome}
		if err := s.inventory.Add(scope, it.Item, it.Count); err != nil {
			return fmt.Errorf("failed to import inventory for %s: %w", scope, err)
		}
	}

	for _, u := range backup.Unlocks {
		if _, err := s.unlocks.Unlock(u.Dimension, u.Biome); err != nil {
			return fmt.Errorf("failed to import unlock %s/%s: %w", u.Dimension, u.Biome, err)
		}
	}

	ledger := backup.Ledger
	if err := s.ledger.Save(&ledger); err != nil {
		return fmt.Errorf("failed to import ledger: %w", err)
	}

	streak := &models.Streak{Count: backup.Streak.Count}
	if backup.Streak.LastAttempt != "" {
		t, err := time.Parse("2006-01-02", backup.Streak.LastAttempt)
		if err != nil {
			return fmt.Errorf("failed to parse streak date %q: %w", backup.Streak.LastAttempt, err)
		}
		streak.LastAttempt = t
	}
	if err := s.streaks.Save(streak); err != nil {
		return fmt.Errorf("failed to import streak: %w", err)
	}

	log.Printf("Import complete: %d mastery records, %d inventory rows, %d unlocks",
		len(backup.Mastery), len(backup.Inventory), len(backup.Unlocks))
	return nil
}

// ClearAll wipes every piece of progression state.
func (s *BackupService) ClearAll() error {
	if err := s.mastery.Clear(); err != nil {
		return fmt.Errorf("failed to clear mastery: %w", err)
	}
	if err := s.inventory.Clear(); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	if err := s.unlocks.Clear(); err != nil {
		return fmt.Errorf("failed to clear unlocks: %w", err)
	}
	if err := s.ledger.Clear(); err != nil {
		return fmt.Errorf("failed to clear ledger: %w", err)
	}
	if err := s.streaks.Clear(); err != nil {
		return fmt.Errorf("failed to clear streak: %w", err)
	}
	return nil
}
