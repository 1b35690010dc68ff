package feed_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"worldfeed/internal/feed"
)

func TestDecodeExportShape(t *testing.T) {
	input := `[
  {"name": "World A", "author": "alice", "worldUrl": "https://example.com/a", "tags": ["event"], "visits": 42, "publicationDate": "2023-06-01"},
  {"name": "World B", "author": "bob", "worldUrl": "https://example.com/b"}
]`
	worlds, err := feed.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(worlds) != 2 {
		t.Fatalf("got %d worlds, want 2", len(worlds))
	}
	first := worlds[0]
	if first.Name != "World A" || first.Author != "alice" || first.Visits != 42 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if len(first.Tags) != 1 || first.Tags[0] != "event" {
		t.Fatalf("unexpected tags: %v", first.Tags)
	}
	second := worlds[1]
	if second.Visits != 0 || second.PublicationDate != "" || second.Tags != nil {
		t.Fatalf("absent fields not zero valued: %+v", second)
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	if _, err := feed.Decode(strings.NewReader(`{"name": "not an array"}`)); err == nil {
		t.Fatal("decode accepted a non-array document")
	}
	if _, err := feed.Decode(strings.NewReader(`[{"name":`)); err == nil {
		t.Fatal("decode accepted truncated JSON")
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	if _, err := feed.Decode(strings.NewReader(`[{"name": "A"}] this is not json`)); err == nil {
		t.Fatal("decode accepted trailing garbage")
	}
	if _, err := feed.Decode(strings.NewReader(`[] []`)); err == nil {
		t.Fatal("decode accepted a second document")
	}
}

func TestDecodeRejectsNullDocument(t *testing.T) {
	if _, err := feed.Decode(strings.NewReader(`null`)); err == nil {
		t.Fatal("decode accepted a null document")
	}
}

func TestDecodeAllowsTrailingWhitespace(t *testing.T) {
	worlds, err := feed.Decode(strings.NewReader("[]\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(worlds) != 0 {
		t.Fatalf("got %d worlds, want 0", len(worlds))
	}
}

func TestEncodeNilSliceEmitsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := feed.Encode(&buf, nil, false); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("empty export = %q, want []", got)
	}
}

func TestEncodeOmitsAbsentOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	worlds := []feed.World{{Name: "World B", Author: "bob", WorldURL: "https://example.com/b"}}
	if err := feed.Encode(&buf, worlds, false); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, field := range []string{"tags", "visits", "publicationDate"} {
		if strings.Contains(out, field) {
			t.Fatalf("absent field %q serialized: %s", field, out)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), feed.ExportFileName)
	worlds := []feed.World{
		{Name: "World A", Author: "alice", WorldURL: "https://example.com/a", Visits: 7},
	}
	var buf bytes.Buffer
	if err := feed.Encode(&buf, worlds, true); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := feed.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "World A" || loaded[0].Visits != 7 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
