package testsupport

import (
	"context"
	"testing"

	"worldfeed/internal/config"
	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

// MustOpenStore opens a store for the config and closes it when the test
// ends.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}

// SampleRecord returns a world record with deterministic fields derived
// from id.
func SampleRecord(id string) world.Record {
	return world.Record{
		ID:              "wrld_" + id,
		Name:            "World " + id,
		AuthorID:        "usr_" + id,
		AuthorName:      "Author " + id,
		Tags:            []string{"author_tag_test"},
		Capacity:        16,
		Visits:          100,
		Favorites:       10,
		Heat:            3,
		Popularity:      5,
		CreatedAt:       "2023-01-01T00:00:00Z",
		UpdatedAt:       "2023-03-01T00:00:00Z",
		PublicationDate: "2023-02-01T00:00:00Z",
	}
}

// MustUpsert inserts a record and fails the test on error.
func MustUpsert(t testing.TB, st *store.Store, rec world.Record) *store.World {
	t.Helper()

	item, _, err := st.Upsert(context.Background(), rec)
	if err != nil {
		t.Fatalf("upsert %s: %v", rec.ID, err)
	}
	return item
}
