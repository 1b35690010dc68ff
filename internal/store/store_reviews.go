package store

import (
	"context"
	"fmt"
	"time"
)

// Approve marks a pending world approved with an optional review note.
func (s *Store) Approve(ctx context.Context, id, note string) (*World, error) {
	return s.transition(ctx, id, StatusApproved, note, StatusPending)
}

// Reject marks a pending world rejected with an optional review note.
func (s *Store) Reject(ctx context.Context, id, note string) (*World, error) {
	return s.transition(ctx, id, StatusRejected, note, StatusPending)
}

// ResetReview returns a reviewed world to pending and clears the note.
func (s *Store) ResetReview(ctx context.Context, id string) (*World, error) {
	return s.transition(ctx, id, StatusPending, "", StatusApproved, StatusRejected)
}

func (s *Store) transition(ctx context.Context, id string, to Status, note string, from ...Status) (*World, error) {
	ctx = ensureContext(ctx)

	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("world %s: %w", id, ErrNotFound)
	}

	allowed := false
	for _, status := range from {
		if item.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("world %s is %s: %w", id, item.Status, ErrInvalidTransition)
	}

	reviewedAt := ""
	if to != StatusPending {
		reviewedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if _, err := s.execWithRetry(
		ctx,
		`UPDATE worlds SET status = ?, review_note = ?, reviewed_at = ? WHERE id = ?`,
		to, note, reviewedAt, id,
	); err != nil {
		return nil, fmt.Errorf("update review state: %w", err)
	}

	return s.GetByID(ctx, id)
}
