package export_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"worldfeed/internal/export"
	"worldfeed/internal/feed"
	"worldfeed/internal/logging"
	"worldfeed/internal/store"
	"worldfeed/internal/testsupport"
)

func TestConvertMapsStoredWorlds(t *testing.T) {
	rec := testsupport.SampleRecord("a")
	items := []*store.World{{Record: rec, Status: store.StatusApproved}}

	worlds := export.Convert(items)
	if len(worlds) != 1 {
		t.Fatalf("got %d worlds, want 1", len(worlds))
	}
	w := worlds[0]
	if w.Name != rec.Name || w.Author != rec.AuthorName || w.Visits != rec.Visits {
		t.Fatalf("convert mismatch: %+v", w)
	}
	if w.WorldURL != "https://vrchat.com/home/world/wrld_a" {
		t.Fatalf("world url = %q", w.WorldURL)
	}
	if len(w.Tags) != 1 || w.Tags[0] != "author_tag_test" {
		t.Fatalf("tags = %v", w.Tags)
	}
	if w.PublicationDate != rec.PublicationDate {
		t.Fatalf("publication date = %q, want %q", w.PublicationDate, rec.PublicationDate)
	}
}

func TestConvertDropsUnpublishedDate(t *testing.T) {
	rec := testsupport.SampleRecord("a")
	rec.PublicationDate = "none"
	worlds := export.Convert([]*store.World{{Record: rec}})
	if worlds[0].PublicationDate != "" {
		t.Fatalf("unpublished date exported: %q", worlds[0].PublicationDate)
	}
}

func TestConvertOmitsEmptyTags(t *testing.T) {
	rec := testsupport.SampleRecord("a")
	rec.Tags = nil
	worlds := export.Convert([]*store.World{{Record: rec}})
	if worlds[0].Tags != nil {
		t.Fatalf("empty tags serialized as %v", worlds[0].Tags)
	}
}

func TestRunWritesApprovedWorldsInApprovalOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("b"))
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("c"))
	for _, id := range []string{"wrld_b", "wrld_a"} {
		if _, err := st.Approve(ctx, id, ""); err != nil {
			t.Fatalf("approve %s: %v", id, err)
		}
	}

	exporter := export.New(cfg, logging.NewNop())
	count, err := exporter.Run(ctx, st)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 2 {
		t.Fatalf("exported %d worlds, want 2", count)
	}

	worlds, err := feed.Load(cfg.Paths.ExportPath)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(worlds) != 2 || worlds[0].Name != "World b" || worlds[1].Name != "World a" {
		t.Fatalf("export content = %+v", worlds)
	}
}

func TestRunEmptyStoreWritesEmptyArray(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	exporter := export.New(cfg, logging.NewNop())
	count, err := exporter.Run(context.Background(), st)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 0 {
		t.Fatalf("exported %d worlds, want 0", count)
	}

	data, err := os.ReadFile(cfg.Paths.ExportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Fatalf("empty export = %q, want []", got)
	}
}

func TestRunReplacesExistingExport(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))
	if _, err := st.Approve(ctx, "wrld_a", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	exporter := export.New(cfg, logging.NewNop())
	if _, err := exporter.Run(ctx, st); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := st.ResetReview(ctx, "wrld_a"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := exporter.Run(ctx, st); err != nil {
		t.Fatalf("second run: %v", err)
	}

	worlds, err := feed.Load(cfg.Paths.ExportPath)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(worlds) != 0 {
		t.Fatalf("stale entries survived rewrite: %+v", worlds)
	}
}
