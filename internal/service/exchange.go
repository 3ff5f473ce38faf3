// Package service implements the exchange lifecycle on top of the store:
// startup reconciliation, assignment reads, and wish list operations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/santa/internal/matcher"
	"github.com/mmynk/santa/internal/metrics"
	"github.com/mmynk/santa/internal/models"
	"github.com/mmynk/santa/internal/storage"
)

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// ExchangeService reconciles stored assignments against the configured
// groups and answers assignment reads. The group snapshot is injected at
// construction and never changes; redeploying the config restarts the
// process.
type ExchangeService struct {
	store  storage.Store
	groups []models.Group
}

// NewExchangeService creates an ExchangeService over the given store and
// config snapshot.
func NewExchangeService(store storage.Store, groups []models.Group) *ExchangeService {
	return &ExchangeService{store: store, groups: groups}
}

// Reconcile synchronizes the store with the configured groups:
//
//  1. Every configured group without a stored assignment gets one computed
//     and persisted. An existing assignment is never recomputed, even if
//     the roster changed since; operators delete the group's entry to force
//     a redraw.
//  2. Every stored assignment whose group is no longer configured is
//     deleted. Wishes are keyed by person, not group, and are left alone.
//
// Infeasible groups are skipped and collected; the remaining groups still
// reconcile, and the joined error (matching matcher.ErrInfeasible) is
// returned so the caller can flag the config. Storage failures abort
// immediately. Calling Reconcile again is idempotent.
func (s *ExchangeService) Reconcile(ctx context.Context) error {
	var infeasible []error

	configured := make(map[string]bool, len(s.groups))
	for _, g := range s.groups {
		configured[g.ID] = true

		_, err := s.store.GetAssignment(ctx, g.ID)
		if err == nil {
			slog.Debug("Assignment already exists, leaving untouched", "group_id", g.ID)
			metrics.ReconcileGroups.WithLabelValues(metrics.OutcomeKept).Inc()
			continue
		}
		if !errors.Is(err, storage.ErrAssignmentNotFound) {
			return fmt.Errorf("failed to check assignment for group %q: %w", g.ID, err)
		}

		pairs, attempts, err := matcher.Assign(g.Usernames(), g.Exclusions())
		if err != nil {
			slog.Error("No feasible assignment for group, skipping",
				"group_id", g.ID,
				"participants", len(g.Participants),
				"error", err,
			)
			metrics.ReconcileGroups.WithLabelValues(metrics.OutcomeInfeasible).Inc()
			infeasible = append(infeasible, fmt.Errorf("group %q: %w", g.ID, err))
			continue
		}

		if err := s.store.PutAssignment(ctx, &models.Assignment{GroupID: g.ID, Pairs: pairs}); err != nil {
			return fmt.Errorf("failed to store assignment for group %q: %w", g.ID, err)
		}
		slog.Info("Assignment created",
			"group_id", g.ID,
			"participants", len(g.Participants),
			"attempts", attempts,
		)
		metrics.ReconcileGroups.WithLabelValues(metrics.OutcomeCreated).Inc()
		metrics.MatcherAttempts.Observe(float64(attempts))
	}

	storedIDs, err := s.store.ListAssignmentGroupIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored assignments: %w", err)
	}
	for _, id := range storedIDs {
		if configured[id] {
			continue
		}
		if err := s.store.DeleteAssignment(ctx, id); err != nil {
			return fmt.Errorf("failed to delete stale assignment for group %q: %w", id, err)
		}
		slog.Info("Deleted assignment for removed group", "group_id", id)
		metrics.ReconcileGroups.WithLabelValues(metrics.OutcomeDeleted).Inc()
	}

	return errors.Join(infeasible...)
}

// Group returns the configured group with the given ID.
func (s *ExchangeService) Group(groupID string) (*models.Group, error) {
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			return &s.groups[i], nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", groupID, ErrGroupNotFound)
}

// GroupsFor returns the groups the given username belongs to, in config
// order. A person can be in several exchanges at once.
func (s *ExchangeService) GroupsFor(username string) []models.Group {
	var groups []models.Group
	for _, g := range s.groups {
		if g.Member(username) != nil {
			groups = append(groups, g)
		}
	}
	return groups
}

// RecipientFor returns the participant the given giver buys a gift for in
// the given group. Returns ErrGroupNotFound / ErrParticipantNotFound for
// unknown identifiers and storage.ErrAssignmentNotFound when the group has
// not been reconciled yet.
func (s *ExchangeService) RecipientFor(ctx context.Context, groupID, giver string) (*models.Participant, error) {
	g, err := s.Group(groupID)
	if err != nil {
		return nil, err
	}
	if g.Member(giver) == nil {
		return nil, fmt.Errorf("%q in group %q: %w", giver, groupID, ErrParticipantNotFound)
	}

	assignment, err := s.store.GetAssignment(ctx, groupID)
	if err != nil {
		return nil, err
	}

	recipientName := assignment.RecipientOf(giver)
	if recipientName == "" {
		// Roster changed after the draw and the giver is new. The spec'd
		// remedy is an operator delete of the group's entry.
		return nil, fmt.Errorf("%q has no recipient in group %q: %w", giver, groupID, ErrParticipantNotFound)
	}

	recipient := g.Member(recipientName)
	if recipient == nil {
		// Roster changed after the draw and the recipient left.
		return nil, fmt.Errorf("recipient %q left group %q: %w", recipientName, groupID, ErrParticipantNotFound)
	}

	return recipient, nil
}
