package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

var timeNow = time.Now

// saveRawResults writes fetched records verbatim for reuse by other tools,
// mirroring the raw_worlds.json layout.
func saveRawResults(path string, records []world.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure raw results directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode raw results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write raw results: %w", err)
	}
	return nil
}

// storeFetched upserts fetched records and appends one history point per
// record, the way every fetch updates metric history.
func storeFetched(ctx context.Context, st *store.Store, records []world.Record) (created, updated int, err error) {
	now := time.Now().UTC()
	for _, rec := range records {
		_, isNew, upsertErr := st.Upsert(ctx, rec)
		if upsertErr != nil {
			return created, updated, upsertErr
		}
		if isNew {
			created++
		} else {
			updated++
		}
		snap := world.Snapshot{
			WorldID:    rec.ID,
			CapturedAt: now,
			Visits:     rec.Visits,
			Favorites:  rec.Favorites,
			Heat:       rec.Heat,
			Popularity: rec.Popularity,
			UpdatedAt:  rec.UpdatedAt,
		}
		if snapErr := st.AddSnapshot(ctx, snap); snapErr != nil {
			return created, updated, snapErr
		}
	}
	return created, updated, nil
}

func formatStoredTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02 15:04")
}

func formatRemoteDate(value string) string {
	if t, ok := world.ParseDate(value); ok {
		return t.UTC().Format("2006-01-02")
	}
	return "-"
}
