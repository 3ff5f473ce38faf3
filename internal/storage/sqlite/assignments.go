package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// GetAssignment retrieves a group's assignment, one row per giver pair.
func (s *SQLiteStore) GetAssignment(ctx context.Context, groupID string) (*models.Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT giver, recipient, created_at FROM assignments WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	defer rows.Close()

	assignment := &models.Assignment{
		GroupID: groupID,
		Pairs:   make(map[string]string),
	}
	for rows.Next() {
		var giver, recipient string
		if err := rows.Scan(&giver, &recipient, &assignment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment pair: %w", err)
		}
		assignment.Pairs[giver] = recipient
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignment pairs: %w", err)
	}

	if len(assignment.Pairs) == 0 {
		return nil, fmt.Errorf("group %q: %w", groupID, storage.ErrAssignmentNotFound)
	}

	return assignment, nil
}

// PutAssignment stores all giver pairs for a group in one transaction,
// replacing any rows a previous record left behind. A crash mid-write
// rolls back, so the store never holds a partial assignment.
func (s *SQLiteStore) PutAssignment(ctx context.Context, assignment *models.Assignment) error {
	if assignment.GroupID == "" {
		return fmt.Errorf("assignment has no group ID")
	}
	if assignment.CreatedAt == 0 {
		assignment.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM assignments WHERE group_id = ?", assignment.GroupID,
	); err != nil {
		return fmt.Errorf("failed to clear previous assignment: %w", err)
	}

	for giver, recipient := range assignment.Pairs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO assignments (group_id, giver, recipient, created_at) VALUES (?, ?, ?, ?)",
			assignment.GroupID, giver, recipient, assignment.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment pair: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteAssignment removes all of a group's assignment rows. No-op if the
// group has no stored assignment.
func (s *SQLiteStore) DeleteAssignment(ctx context.Context, groupID string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM assignments WHERE group_id = ?", groupID,
	); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// ListAssignmentGroupIDs returns every group ID with a stored assignment.
func (s *SQLiteStore) ListAssignmentGroupIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT group_id FROM assignments ORDER BY group_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment group IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group IDs: %w", err)
	}

	return ids, nil
}
