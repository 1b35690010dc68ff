package viewer_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"worldfeed/internal/feed"
	"worldfeed/internal/viewer"
)

func sampleWorlds() []feed.World {
	return []feed.World{
		{
			Name:            "Author World A",
			Author:          "example author",
			WorldURL:        "https://example.com/world_a",
			Visits:          10,
			PublicationDate: "2023-01-01",
		},
		{
			Name:            "Author World B",
			Author:          "example author",
			WorldURL:        "https://example.com/world_b",
			Tags:            []string{"event"},
			Visits:          50,
			PublicationDate: "2023-06-01",
		},
	}
}

func entryNames(entries []viewer.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestRenderPopularOrdersByVisitsDescending(t *testing.T) {
	entries := viewer.Render(sampleWorlds(), viewer.SortPopular, viewer.TagAll)
	got := entryNames(entries)
	want := []string{"Author World B", "Author World A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("popular order = %v, want %v", got, want)
	}
}

func TestRenderLatestOrdersByPublicationDateDescending(t *testing.T) {
	entries := viewer.Render(sampleWorlds(), viewer.SortLatest, viewer.TagAll)
	got := entryNames(entries)
	want := []string{"Author World B", "Author World A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("latest order = %v, want %v", got, want)
	}
}

func TestRenderLatestTreatsMissingDateAsEmpty(t *testing.T) {
	worlds := []feed.World{
		{Name: "undated", Visits: 100},
		{Name: "dated", Visits: 1, PublicationDate: "2020-01-01"},
	}
	entries := viewer.Render(worlds, viewer.SortLatest, viewer.TagAll)
	got := entryNames(entries)
	want := []string{"dated", "undated"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("latest order = %v, want %v", got, want)
	}
}

func TestRenderSortIsStableOnTies(t *testing.T) {
	worlds := []feed.World{
		{Name: "first", Visits: 5},
		{Name: "second", Visits: 5},
		{Name: "third", Visits: 5},
	}
	entries := viewer.Render(worlds, viewer.SortPopular, viewer.TagAll)
	got := entryNames(entries)
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tied order = %v, want %v", got, want)
	}
}

func TestRenderFiltersByExactTagMembership(t *testing.T) {
	entries := viewer.Render(sampleWorlds(), viewer.SortPopular, "event")
	got := entryNames(entries)
	want := []string{"Author World B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tag filter = %v, want %v", got, want)
	}

	if out := viewer.Render(sampleWorlds(), viewer.SortPopular, "even"); len(out) != 0 {
		t.Fatalf("partial tag match passed filter: %v", entryNames(out))
	}
}

func TestRenderTagAllPassesUntaggedRecords(t *testing.T) {
	entries := viewer.Render(sampleWorlds(), viewer.SortPopular, viewer.TagAll)
	if len(entries) != 2 {
		t.Fatalf("got %d entries under %q, want 2", len(entries), viewer.TagAll)
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	worlds := sampleWorlds()
	viewer.Render(worlds, viewer.SortLatest, viewer.TagAll)
	if worlds[0].Name != "Author World A" || worlds[1].Name != "Author World B" {
		t.Fatalf("input slice reordered: %v", entryNames(viewer.Render(worlds, viewer.SortPopular, viewer.TagAll)))
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	worlds := sampleWorlds()
	first := viewer.Render(worlds, viewer.SortLatest, "event")
	second := viewer.Render(worlds, viewer.SortLatest, "event")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated render differs: %v vs %v", first, second)
	}
}

func TestTagOptionsFirstOccurrenceOrder(t *testing.T) {
	worlds := []feed.World{
		{Name: "a", Tags: []string{"game", "social"}},
		{Name: "b"},
		{Name: "c", Tags: []string{"social", "event"}},
	}
	got := viewer.TagOptions(worlds)
	want := []string{"all", "game", "social", "event"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tag options = %v, want %v", got, want)
	}
}

func TestTagOptionsEmptyExport(t *testing.T) {
	got := viewer.TagOptions(nil)
	want := []string{"all"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tag options = %v, want %v", got, want)
	}
}

func TestEntryText(t *testing.T) {
	entry := viewer.Entry{Name: "Author World B", Author: "example author", Visits: 50}
	want := "Author World B by example author (50 visits)"
	if got := entry.Text(); got != want {
		t.Fatalf("entry text = %q, want %q", got, want)
	}
}

func TestParseSortMode(t *testing.T) {
	if mode, err := viewer.ParseSortMode("latest"); err != nil || mode != viewer.SortLatest {
		t.Fatalf("ParseSortMode(latest) = %v, %v", mode, err)
	}
	if mode, err := viewer.ParseSortMode("popular"); err != nil || mode != viewer.SortPopular {
		t.Fatalf("ParseSortMode(popular) = %v, %v", mode, err)
	}
	if _, err := viewer.ParseSortMode("alphabetical"); err == nil {
		t.Fatal("ParseSortMode accepted an unknown mode")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := viewer.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := viewer.Load(path); err == nil {
		t.Fatal("Load succeeded on malformed JSON")
	}
}

func TestViewDefaultsAndSelectors(t *testing.T) {
	view := viewer.New(sampleWorlds())
	if view.SortMode() != viewer.SortPopular {
		t.Fatalf("default sort mode = %q, want %q", view.SortMode(), viewer.SortPopular)
	}
	if view.Tag() != viewer.TagAll {
		t.Fatalf("default tag = %q, want %q", view.Tag(), viewer.TagAll)
	}

	view.SetSortMode(viewer.SortLatest)
	view.SetTag("event")
	got := entryNames(view.Render())
	want := []string{"Author World B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("render = %v, want %v", got, want)
	}
}
