package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"vocabville/internal/database"
	"vocabville/internal/models"
)

// LedgerRepository handles the singleton currency ledger row
type LedgerRepository struct {
	db database.DBTX
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db database.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Load reads the ledger, returning a zeroed one when none is stored yet.
func (r *LedgerRepository) Load() (*models.Ledger, error) {
	query := `
		SELECT lifetime_pickaxe, lifetime_diamond, lifetime_netherite,
		       lifetime_play_minutes,
		       current_pickaxe, current_diamond, current_netherite
		FROM currency_ledger
		WHERE id = 1
	`

	l := &models.Ledger{}
	err := r.db.QueryRow(query).Scan(
		&l.Lifetime.Pickaxe, &l.Lifetime.Diamond, &l.Lifetime.Netherite,
		&l.Lifetime.PlayMinutes,
		&l.Current.Pickaxe, &l.Current.Diamond, &l.Current.Netherite,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Ledger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load currency ledger: %w", err)
	}
	return l, nil
}

// Save writes the ledger singleton row. The update-then-insert pair runs
// in one transaction.
func (r *LedgerRepository) Save(l *models.Ledger) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	update := `
		UPDATE currency_ledger
		SET lifetime_pickaxe = ?, lifetime_diamond = ?, lifetime_netherite = ?,
		    lifetime_play_minutes = ?,
		    current_pickaxe = ?, current_diamond = ?, current_netherite = ?
		WHERE id = 1
	`

	result, err := tx.Exec(update,
		l.Lifetime.Pickaxe, l.Lifetime.Diamond, l.Lifetime.Netherite,
		l.Lifetime.PlayMinutes,
		l.Current.Pickaxe, l.Current.Diamond, l.Current.Netherite,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency ledger: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		insert := `
			INSERT INTO currency_ledger (
				id, lifetime_pickaxe, lifetime_diamond, lifetime_netherite,
				lifetime_play_minutes,
				current_pickaxe, current_diamond, current_netherite
			) VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(insert,
			l.Lifetime.Pickaxe, l.Lifetime.Diamond, l.Lifetime.Netherite,
			l.Lifetime.PlayMinutes,
			l.Current.Pickaxe, l.Current.Diamond, l.Current.Netherite,
		)
		if err != nil {
			return fmt.Errorf("failed to insert currency ledger: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Clear removes the ledger row.
func (r *LedgerRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM currency_ledger"); err != nil {
		return fmt.Errorf("failed to clear currency ledger: %w", err)
	}
	return nil
}
