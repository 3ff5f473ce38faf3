// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/santa/internal/models"
)

var (
	// ErrAssignmentNotFound is returned when a group has no stored
	// assignment (not yet reconciled, or the group was removed).
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrWishNotFound is returned when removing a wish item that does not
	// exist or is owned by someone else.
	ErrWishNotFound = errors.New("wish not found")
)

// Store defines the interface for assignment and wish persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// GetAssignment retrieves the stored assignment for a group.
	// Returns ErrAssignmentNotFound if the group has none.
	GetAssignment(ctx context.Context, groupID string) (*models.Assignment, error)

	// PutAssignment stores a group's assignment as a single atomic record,
	// replacing any previous record for the same group.
	PutAssignment(ctx context.Context, assignment *models.Assignment) error

	// DeleteAssignment removes a group's assignment. Deleting a group with
	// no stored assignment is a no-op.
	DeleteAssignment(ctx context.Context, groupID string) error

	// ListAssignmentGroupIDs returns the group IDs that currently have a
	// stored assignment. Used by reconciliation to find stale entries.
	ListAssignmentGroupIDs(ctx context.Context) ([]string, error)

	// ListWishes returns a participant's wish list in creation order.
	ListWishes(ctx context.Context, owner string) ([]models.WishItem, error)

	// AddWish appends an item to the owner's wish list. The item's ID and
	// CreatedAt are populated by the store if unset.
	AddWish(ctx context.Context, item *models.WishItem) error

	// RemoveWish deletes one wish item by ID, scoped to the owner.
	// Returns ErrWishNotFound if no such item exists for that owner.
	RemoveWish(ctx context.Context, owner, itemID string) error

	// Close releases any resources held by the store.
	Close() error
}
