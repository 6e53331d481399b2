package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vocabville/internal/database"
	"vocabville/internal/models"
)

// MasteryRepository handles word mastery database operations
type MasteryRepository struct {
	db database.DBTX
}

// NewMasteryRepository creates a new mastery repository
func NewMasteryRepository(db database.DBTX) *MasteryRepository {
	return &MasteryRepository{db: db}
}

const masteryColumns = `dimension, biome, term,
	spelling_correct, synonym_correct, antonym_correct, retired,
	answered_correct_once, mastery_streak, mastered, total_flips,
	last_result, updated_at`

// Get retrieves the mastery record for a word. A missing row is not an
// error: a zeroed record for the word is returned instead.
func (r *MasteryRepository) Get(scope models.Scope, term string) (*models.WordMastery, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		WHERE dimension = ? AND biome = ? AND term = ?
	`

	m, err := scanMastery(r.db.QueryRow(query, scope.Dimension, scope.Biome, term))
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewWordMastery(scope, term), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery for %q: %w", term, err)
	}
	return m, nil
}

// GetAll retrieves every recorded mastery entry in a scope, keyed by term.
func (r *MasteryRepository) GetAll(scope models.Scope) (map[string]*models.WordMastery, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		WHERE dimension = ? AND biome = ?
	`

	rows, err := r.db.Query(query, scope.Dimension, scope.Biome)
	if err != nil {
		return nil, fmt.Errorf("failed to list mastery for %s: %w", scope, err)
	}
	defer rows.Close()

	out := make(map[string]*models.WordMastery)
	for rows.Next() {
		m, err := scanMastery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mastery row: %w", err)
		}
		out[m.Term] = m
	}
	return out, rows.Err()
}

// All retrieves every mastery record across all scopes, for export.
func (r *MasteryRepository) All() ([]models.WordMastery, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM word_mastery
		ORDER BY dimension, biome, term
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list mastery records: %w", err)
	}
	defer rows.Close()

	var out []models.WordMastery
	for rows.Next() {
		m, err := scanMastery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mastery row: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Save writes a mastery record, inserting it on first write. The
// update-then-insert pair runs in one transaction.
func (r *MasteryRepository) Save(m *models.WordMastery) error {
	m.UpdatedAt = time.Now().UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	update := `
		UPDATE word_mastery
		SET spelling_correct = ?, synonym_correct = ?, antonym_correct = ?,
		    retired = ?, answered_correct_once = ?, mastery_streak = ?,
		    mastered = ?, total_flips = ?, last_result = ?, updated_at = ?
		WHERE dimension = ? AND biome = ? AND term = ?
	`

	result, err := tx.Exec(update,
		m.SpellingCorrect, m.SynonymCorrect, m.AntonymCorrect,
		m.Retired, m.AnsweredCorrectOnce, m.MasteryStreak,
		m.Mastered, m.TotalFlips, m.LastResult, m.UpdatedAt,
		m.Dimension, m.Biome, m.Term,
	)
	if err != nil {
		return fmt.Errorf("failed to update mastery for %q: %w", m.Term, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		insert := `
			INSERT INTO word_mastery (` + masteryColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(insert,
			m.Dimension, m.Biome, m.Term,
			m.SpellingCorrect, m.SynonymCorrect, m.AntonymCorrect, m.Retired,
			m.AnsweredCorrectOnce, m.MasteryStreak, m.Mastered, m.TotalFlips,
			m.LastResult, m.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert mastery for %q: %w", m.Term, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Clear removes all mastery records.
func (r *MasteryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM word_mastery"); err != nil {
		return fmt.Errorf("failed to clear word mastery: %w", err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMastery(s scanner) (*models.WordMastery, error) {
	m := &models.WordMastery{}
	err := s.Scan(
		&m.Dimension, &m.Biome, &m.Term,
		&m.SpellingCorrect, &m.SynonymCorrect, &m.AntonymCorrect, &m.Retired,
		&m.AnsweredCorrectOnce, &m.MasteryStreak, &m.Mastered, &m.TotalFlips,
		&m.LastResult, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
