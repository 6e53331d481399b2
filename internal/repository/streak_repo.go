package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vocabville/internal/database"
	"vocabville/internal/models"
)

// streakDateLayout is the stored calendar-date form of the last attempt.
const streakDateLayout = "2006-01-02"

// StreakRepository handles the singleton daily streak row
type StreakRepository struct {
	db database.DBTX
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db database.DBTX) *StreakRepository {
	return &StreakRepository{db: db}
}

// Load reads the streak, returning a zeroed one when none is stored yet.
// A malformed stored date is treated as no prior attempt.
func (r *StreakRepository) Load() (*models.Streak, error) {
	query := "SELECT last_attempt, count FROM quest_streak WHERE id = 1"

	var lastAttempt string
	s := &models.Streak{}
	err := r.db.QueryRow(query).Scan(&lastAttempt, &s.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Streak{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	if lastAttempt != "" {
		if t, err := time.ParseInLocation(streakDateLayout, lastAttempt, time.UTC); err == nil {
			s.LastAttempt = t
		}
	}
	return s, nil
}

// Save writes the streak singleton row. The update-then-insert pair runs
// in one transaction.
func (r *StreakRepository) Save(s *models.Streak) error {
	lastAttempt := ""
	if !s.LastAttempt.IsZero() {
		lastAttempt = s.LastAttempt.Format(streakDateLayout)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	update := "UPDATE quest_streak SET last_attempt = ?, count = ? WHERE id = 1"
	result, err := tx.Exec(update, lastAttempt, s.Count)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		insert := "INSERT INTO quest_streak (id, last_attempt, count) VALUES (1, ?, ?)"
		if _, err := tx.Exec(insert, lastAttempt, s.Count); err != nil {
			return fmt.Errorf("failed to insert streak: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Clear removes the streak row.
func (r *StreakRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM quest_streak"); err != nil {
		return fmt.Errorf("failed to clear streak: %w", err)
	}
	return nil
}
