package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

// WishService manages per-participant wish lists. Mutation is owner-only;
// the one cross-user read (the giver viewing their recipient's list) goes
// through ExchangeService.RecipientFor first, so the handler already knows
// the caller is entitled to it.
type WishService struct {
	store storage.Store
}

// NewWishService creates a WishService over the given store.
func NewWishService(store storage.Store) *WishService {
	return &WishService{store: store}
}

// List returns the owner's wish list in creation order.
func (s *WishService) List(ctx context.Context, owner string) ([]models.WishItem, error) {
	return s.store.ListWishes(ctx, owner)
}

// Add appends a wish to the owner's list. Duplicate content is allowed.
func (s *WishService) Add(ctx context.Context, owner, content string) (*models.WishItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("wish content must not be empty")
	}

	item := &models.WishItem{Owner: owner, Content: content}
	if err := s.store.AddWish(ctx, item); err != nil {
		return nil, err
	}

	slog.Info("Wish added", "owner", owner, "wish_id", item.ID)
	return item, nil
}

// Remove deletes one of the owner's wishes by ID. Removing an unknown item
// returns storage.ErrWishNotFound rather than silently succeeding.
func (s *WishService) Remove(ctx context.Context, owner, itemID string) error {
	if err := s.store.RemoveWish(ctx, owner, itemID); err != nil {
		return err
	}
	slog.Info("Wish removed", "owner", owner, "wish_id", itemID)
	return nil
}
