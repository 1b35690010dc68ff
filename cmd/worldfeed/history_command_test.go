package main

import (
	"testing"
	"time"

	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

func TestHistoryRowsDeriveMetricsPerSnapshot(t *testing.T) {
	w := &store.World{Record: world.Record{
		ID:              "wrld_a",
		Name:            "World a",
		PublicationDate: "2023-06-01T00:00:00Z",
	}}
	snapshots := []world.Snapshot{
		{
			WorldID:    "wrld_a",
			CapturedAt: time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC),
			Visits:     100,
			Favorites:  20,
		},
		{
			WorldID:    "wrld_a",
			CapturedAt: time.Date(2023, 6, 21, 0, 0, 0, 0, time.UTC),
			Visits:     400,
			Favorites:  40,
		},
	}

	rows := historyRows(w, snapshots)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	// 10 days after publication: 100 visits and 20 favorites.
	first := rows[0]
	if first[2] != "-" {
		t.Fatalf("first delta = %q, want -", first[2])
	}
	if first[6] != "10.00" || first[7] != "2.00" || first[8] != "5.00" {
		t.Fatalf("first derived columns = %v", first[6:])
	}

	// 20 days after publication: 400 visits and 40 favorites.
	second := rows[1]
	if second[2] != "+300" {
		t.Fatalf("second delta = %q, want +300", second[2])
	}
	if second[6] != "20.00" || second[7] != "2.00" || second[8] != "10.00" {
		t.Fatalf("second derived columns = %v", second[6:])
	}
}

func TestHistoryRowsUnpublishedWorldMarksMetricsUnavailable(t *testing.T) {
	w := &store.World{Record: world.Record{ID: "wrld_a", PublicationDate: "none"}}
	snapshots := []world.Snapshot{
		{WorldID: "wrld_a", CapturedAt: time.Date(2023, 6, 11, 0, 0, 0, 0, time.UTC), Visits: 5},
	}

	rows := historyRows(w, snapshots)
	if rows[0][6] != "-" || rows[0][7] != "-" || rows[0][8] != "-" {
		t.Fatalf("unavailable metrics rendered as %v", rows[0][6:])
	}
}
