package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// ListWishes returns the owner's wish list in creation order.
func (s *SQLiteStore) ListWishes(ctx context.Context, owner string) ([]models.WishItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, owner, content, created_at FROM wishes WHERE owner = ? ORDER BY created_at, id",
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}
	defer rows.Close()

	var items []models.WishItem
	for rows.Next() {
		var item models.WishItem
		if err := rows.Scan(&item.ID, &item.Owner, &item.Content, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishes: %w", err)
	}

	return items, nil
}

// AddWish appends a wish item, generating its ID and timestamp if unset.
func (s *SQLiteStore) AddWish(ctx context.Context, item *models.WishItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO wishes (id, owner, content, created_at) VALUES (?, ?, ?, ?)",
		item.ID, item.Owner, item.Content, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert wish: %w", err)
	}

	return nil
}

// RemoveWish deletes one wish item by ID. The owner scope means a user can
// never delete somebody else's item, even with a guessed ID.
func (s *SQLiteStore) RemoveWish(ctx context.Context, owner, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM wishes WHERE id = ? AND owner = ?",
		itemID, owner,
	)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wish %q for %q: %w", itemID, owner, storage.ErrWishNotFound)
	}

	return nil
}
