package main

import (
	"reflect"
	"testing"

	"worldfeed/internal/store"
	"worldfeed/internal/viewer"
	"worldfeed/internal/world"
)

func storedWorld(id string, visits int, pub string, tags ...string) *store.World {
	return &store.World{Record: world.Record{
		ID:              id,
		Name:            "World " + id,
		AuthorName:      "author",
		Visits:          visits,
		PublicationDate: pub,
		Tags:            tags,
	}}
}

func listedIDs(items []*store.World) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func sampleStoredWorlds() []*store.World {
	return []*store.World{
		storedWorld("wrld_a", 10, "2023-01-01T00:00:00Z"),
		storedWorld("wrld_b", 50, "2023-06-01T00:00:00Z", "event"),
		storedWorld("wrld_c", 30, "2023-03-01T00:00:00Z"),
	}
}

func TestApplyViewerSelectionPopularOrder(t *testing.T) {
	got, err := applyViewerSelection(sampleStoredWorlds(), "popular", viewer.TagAll)
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	want := []string{"wrld_b", "wrld_c", "wrld_a"}
	if !reflect.DeepEqual(listedIDs(got), want) {
		t.Fatalf("popular order = %v, want %v", listedIDs(got), want)
	}
}

func TestApplyViewerSelectionLatestOrder(t *testing.T) {
	got, err := applyViewerSelection(sampleStoredWorlds(), "latest", viewer.TagAll)
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	want := []string{"wrld_b", "wrld_c", "wrld_a"}
	if !reflect.DeepEqual(listedIDs(got), want) {
		t.Fatalf("latest order = %v, want %v", listedIDs(got), want)
	}
}

func TestApplyViewerSelectionTagFilter(t *testing.T) {
	items := sampleStoredWorlds()
	got, err := applyViewerSelection(items, "", "event")
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if len(got) != 1 || got[0] != items[1] {
		t.Fatalf("tag filter = %v, want the tagged stored world", listedIDs(got))
	}
}

func TestApplyViewerSelectionRejectsUnknownSort(t *testing.T) {
	if _, err := applyViewerSelection(sampleStoredWorlds(), "alphabetical", viewer.TagAll); err == nil {
		t.Fatal("unknown sort mode accepted")
	}
}
