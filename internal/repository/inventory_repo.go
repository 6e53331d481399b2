package repository

import (
	"fmt"

	"vocabville/internal/database"
	"vocabville/internal/models"
)

// InventoryRepository handles per-scope item counter operations
type InventoryRepository struct {
	db database.DBTX
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db database.DBTX) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Bag returns every item counter recorded for a scope.
func (r *InventoryRepository) Bag(scope models.Scope) (map[string]int, error) {
	query := `
		SELECT item, count
		FROM inventory
		WHERE dimension = ? AND biome = ?
	`

	rows, err := r.db.Query(query, scope.Dimension, scope.Biome)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory for %s: %w", scope, err)
	}
	defer rows.Close()

	bag := make(map[string]int)
	for rows.Next() {
		var item string
		var count int
		if err := rows.Scan(&item, &count); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		bag[item] = count
	}
	return bag, rows.Err()
}

// Add increments an item counter, creating it lazily on first award. The
// update-then-insert pair runs in one transaction.
func (r *InventoryRepository) Add(scope models.Scope, item string, qty int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	update := `
		UPDATE inventory
		SET count = count + ?
		WHERE dimension = ? AND biome = ? AND item = ?
	`

	result, err := tx.Exec(update, qty, scope.Dimension, scope.Biome, item)
	if err != nil {
		return fmt.Errorf("failed to add %q to %s: %w", item, scope, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		insert := `
			INSERT INTO inventory (dimension, biome, item, count)
			VALUES (?, ?, ?, ?)
		`
		if _, err := tx.Exec(insert, scope.Dimension, scope.Biome, item, qty); err != nil {
			return fmt.Errorf("failed to insert %q for %s: %w", item, scope, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// All returns every inventory counter across all scopes.
func (r *InventoryRepository) All() ([]models.InventoryItem, error) {
	rows, err := r.db.Query("SELECT dimension, biome, item, count FROM inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var it models.InventoryItem
		if err := rows.Scan(&it.Dimension, &it.Biome, &it.Item, &it.Count); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Clear removes all inventory counters.
func (r *InventoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM inventory"); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	return nil
}
