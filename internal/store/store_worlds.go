package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"worldfeed/internal/world"
)

const worldColumns = `id, name, author_id, author_name, description, tags, capacity,
    visits, favorites, heat, popularity, image_url,
    created_at_remote, updated_at_remote, publication_date, labs_publication_date,
    status, review_note, reviewed_at, first_seen_at, last_fetched_at`

// Upsert inserts a newly collected world as pending or refreshes the stored
// metadata of a known one. The write is a single atomic statement, so
// concurrent fetches of the same world cannot race into a duplicate-key
// failure. Review state survives refreshes. It reports whether the world
// was newly inserted.
func (s *Store) Upsert(ctx context.Context, rec world.Record) (*World, bool, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return nil, false, errors.New("world id is required")
	}

	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	tags, err := encodeTags(rec.Tags)
	if err != nil {
		return nil, false, err
	}

	// first_seen_at is only written on insert; when a conflicting row keeps
	// its original value the world was already known.
	var firstSeen string
	err = retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(
			ctx,
			`INSERT INTO worlds (
                id, name, author_id, author_name, description, tags, capacity,
                visits, favorites, heat, popularity, image_url,
                created_at_remote, updated_at_remote, publication_date, labs_publication_date,
                status, first_seen_at, last_fetched_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(id) DO UPDATE SET
                name = excluded.name,
                author_id = excluded.author_id,
                author_name = excluded.author_name,
                description = excluded.description,
                tags = excluded.tags,
                capacity = excluded.capacity,
                visits = excluded.visits,
                favorites = excluded.favorites,
                heat = excluded.heat,
                popularity = excluded.popularity,
                image_url = excluded.image_url,
                created_at_remote = excluded.created_at_remote,
                updated_at_remote = excluded.updated_at_remote,
                publication_date = excluded.publication_date,
                labs_publication_date = excluded.labs_publication_date,
                last_fetched_at = excluded.last_fetched_at
            RETURNING first_seen_at`,
			rec.ID, rec.Name, rec.AuthorID, rec.AuthorName, rec.Description, tags, rec.Capacity,
			rec.Visits, rec.Favorites, rec.Heat, rec.Popularity, rec.ImageURL,
			rec.CreatedAt, rec.UpdatedAt, rec.PublicationDate, rec.LabsPublicationDate,
			StatusPending, timestamp, timestamp,
		).Scan(&firstSeen)
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert world: %w", err)
	}

	stored, err := s.GetByID(ctx, rec.ID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("world %s missing after upsert", rec.ID)
	}
	return stored, firstSeen == timestamp, nil
}

// UpsertAll upserts a batch of records and reports how many were new.
func (s *Store) UpsertAll(ctx context.Context, recs []world.Record) (created int, updated int, err error) {
	for _, rec := range recs {
		_, isNew, upsertErr := s.Upsert(ctx, rec)
		if upsertErr != nil {
			return created, updated, upsertErr
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}

// GetByID fetches a world by ID. It returns nil without error when the
// world is not stored.
func (s *Store) GetByID(ctx context.Context, id string) (*World, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+worldColumns+` FROM worlds WHERE id = ?`, id)
	item, err := scanWorld(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get world: %w", err)
	}
	return item, nil
}

// List returns worlds filtered by the given statuses, or every world when
// no status is provided, ordered by first-seen time then ID.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*World, error) {
	ctx = ensureContext(ctx)

	query := `SELECT ` + worldColumns + ` FROM worlds`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY first_seen_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()

	var items []*World
	for rows.Next() {
		item, scanErr := scanWorld(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan world: %w", scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worlds: %w", err)
	}
	return items, nil
}

// Approved returns approved worlds ordered by review time then ID. This is
// the export order.
func (s *Store) Approved(ctx context.Context) ([]*World, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+worldColumns+` FROM worlds WHERE status = ? ORDER BY reviewed_at, id`,
		StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved worlds: %w", err)
	}
	defer rows.Close()

	var items []*World
	for rows.Next() {
		item, scanErr := scanWorld(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan world: %w", scanErr)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worlds: %w", err)
	}
	return items, nil
}

// Remove deletes a world and its snapshots. It reports whether a row was
// deleted.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ensureContext(ctx), `DELETE FROM worlds WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove world: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove world rows affected: %w", err)
	}
	return affected > 0, nil
}

// Counts aggregates world totals per review state.
func (s *Store) Counts(ctx context.Context) (Summary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM worlds GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("count worlds: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan counts: %w", err)
		}
		summary.Total += count
		switch status {
		case StatusPending:
			summary.Pending = count
		case StatusApproved:
			summary.Approved = count
		case StatusRejected:
			summary.Rejected = count
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate counts: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorld(row rowScanner) (*World, error) {
	var item World
	var tags string
	var reviewedAt, firstSeenAt, lastFetchedAt string

	err := row.Scan(
		&item.ID, &item.Name, &item.AuthorID, &item.AuthorName, &item.Description, &tags, &item.Capacity,
		&item.Visits, &item.Favorites, &item.Heat, &item.Popularity, &item.ImageURL,
		&item.CreatedAt, &item.UpdatedAt, &item.PublicationDate, &item.LabsPublicationDate,
		&item.Status, &item.ReviewNote, &reviewedAt, &firstSeenAt, &lastFetchedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeTags(tags, &item.Record.Tags); err != nil {
		return nil, err
	}
	item.ReviewedAt = parseStoredTime(reviewedAt)
	item.FirstSeenAt = parseStoredTime(firstSeenAt)
	item.LastFetchedAt = parseStoredTime(lastFetchedAt)
	return &item, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(data string, dst *[]string) error {
	if strings.TrimSpace(data) == "" {
		*dst = nil
		return nil
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	if len(*dst) == 0 {
		*dst = nil
	}
	return nil
}

func parseStoredTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
