// Package review implements the approval workflow over collected worlds:
// pending worlds are approved or rejected, and reviewed worlds can be reset
// back to pending.
package review

import (
	"context"
	"errors"
	"log/slog"

	"worldfeed/internal/logging"
	"worldfeed/internal/store"
)

// Action is one review decision applied to a world.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionReset   Action = "reset"
)

// Outcome describes the result of a review action on a single world.
type Outcome string

const (
	OutcomeUpdated           Outcome = "updated"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeInvalidTransition Outcome = "invalid_transition"
)

// ItemResult is the per-world result of a bulk review action.
type ItemResult struct {
	WorldID string  `json:"worldId"`
	Outcome Outcome `json:"outcome"`
	Status  string  `json:"status,omitempty"`
}

// Result aggregates a bulk review action.
type Result struct {
	UpdatedCount int          `json:"updatedCount"`
	Items        []ItemResult `json:"items"`
}

// Service applies review actions against the store.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

// NewService builds a review service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logging.WithComponent(logger, "review"),
	}
}

// Pending lists the worlds awaiting review in collection order.
func (s *Service) Pending(ctx context.Context) ([]*store.World, error) {
	return s.store.List(ctx, store.StatusPending)
}

// Apply runs one review action with an optional note and returns the
// updated world.
func (s *Service) Apply(ctx context.Context, action Action, worldID, note string) (*store.World, error) {
	var (
		item *store.World
		err  error
	)
	switch action {
	case ActionApprove:
		item, err = s.store.Approve(ctx, worldID, note)
	case ActionReject:
		item, err = s.store.Reject(ctx, worldID, note)
	case ActionReset:
		item, err = s.store.ResetReview(ctx, worldID)
	default:
		return nil, errors.New("review: unknown action")
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("review action applied",
		logging.String("action", string(action)),
		logging.String("world", worldID),
		logging.String("status", string(item.Status)))
	return item, nil
}

// ApplyAll runs one review action over several worlds, collecting per-world
// outcomes instead of failing the batch on the first bad ID.
func (s *Service) ApplyAll(ctx context.Context, action Action, worldIDs []string, note string) (Result, error) {
	result := Result{Items: make([]ItemResult, 0, len(worldIDs))}
	for _, worldID := range worldIDs {
		item, err := s.Apply(ctx, action, worldID, note)
		switch {
		case err == nil:
			result.UpdatedCount++
			result.Items = append(result.Items, ItemResult{
				WorldID: worldID,
				Outcome: OutcomeUpdated,
				Status:  string(item.Status),
			})
		case errors.Is(err, store.ErrNotFound):
			result.Items = append(result.Items, ItemResult{WorldID: worldID, Outcome: OutcomeNotFound})
		case errors.Is(err, store.ErrInvalidTransition):
			result.Items = append(result.Items, ItemResult{WorldID: worldID, Outcome: OutcomeInvalidTransition})
		default:
			return Result{}, err
		}
	}
	return result, nil
}
