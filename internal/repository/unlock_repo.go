package repository

import (
	"fmt"

	"vocabville/internal/database"
)

// UnlockRepository handles biome unlock database operations
type UnlockRepository struct {
	db database.DBTX
}

// NewUnlockRepository creates a new unlock repository
func NewUnlockRepository(db database.DBTX) *UnlockRepository {
	return &UnlockRepository{db: db}
}

// IsUnlocked reports whether a biome has been unlocked.
func (r *UnlockRepository) IsUnlocked(dimension, biome string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM biome_unlocks
		WHERE dimension = ? AND biome = ?
	`

	var count int
	if err := r.db.QueryRow(query, dimension, biome).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check unlock for %s/%s: %w", dimension, biome, err)
	}
	return count > 0, nil
}

// Unlock marks a biome as unlocked. Returns true when the row was newly
// created, false when it was already unlocked. The check-then-insert pair
// runs in one transaction.
func (r *UnlockRepository) Unlock(dimension, biome string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT COUNT(*)
		FROM biome_unlocks
		WHERE dimension = ? AND biome = ?
	`

	var count int
	if err := tx.QueryRow(query, dimension, biome).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check unlock for %s/%s: %w", dimension, biome, err)
	}
	if count > 0 {
		return false, nil
	}

	insert := "INSERT INTO biome_unlocks (dimension, biome) VALUES (?, ?)"
	if _, err := tx.Exec(insert, dimension, biome); err != nil {
		return false, fmt.Errorf("failed to unlock %s/%s: %w", dimension, biome, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// All returns the full unlock map: dimension -> biome -> true.
func (r *UnlockRepository) All() (map[string]map[string]bool, error) {
	rows, err := r.db.Query("SELECT dimension, biome FROM biome_unlocks")
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]bool)
	for rows.Next() {
		var dimension, biome string
		if err := rows.Scan(&dimension, &biome); err != nil {
			return nil, fmt.Errorf("failed to scan unlock row: %w", err)
		}
		if out[dimension] == nil {
			out[dimension] = make(map[string]bool)
		}
		out[dimension][biome] = true
	}
	return out, rows.Err()
}

// Clear removes all unlock rows.
func (r *UnlockRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM biome_unlocks"); err != nil {
		return fmt.Errorf("failed to clear unlocks: %w", err)
	}
	return nil
}
