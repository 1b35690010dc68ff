// Package feed defines the approved-worlds export format shared by the
// exporter, the CLI view command, and the HTTP server. The export is a bare
// JSON array of world entries with no envelope and no schema version.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExportFileName is the canonical name of the export file.
const ExportFileName = "approved_export.json"

// World is one approved world entry. Name, Author, and WorldURL are always
// present in exports produced by this repository; the remaining fields are
// optional and default to their zero values when absent.
type World struct {
	Name            string   `json:"name"`
	Author          string   `json:"author"`
	WorldURL        string   `json:"worldUrl"`
	Tags            []string `json:"tags,omitempty"`
	Visits          int      `json:"visits,omitempty"`
	PublicationDate string   `json:"publicationDate,omitempty"`
}

// Decode reads a JSON array of worlds from r. The payload must be exactly
// one array: a null document or trailing data after the array is malformed
// and viewers render it as a load failure.
func Decode(r io.Reader) ([]World, error) {
	var worlds []World
	dec := json.NewDecoder(r)
	if err := dec.Decode(&worlds); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	// A JSON null decodes into a nil slice without error; an actual empty
	// array decodes into a non-nil one.
	if worlds == nil {
		return nil, errors.New("decode export: payload is not a JSON array")
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode export: trailing data after array")
	}
	return worlds, nil
}

// Load reads and decodes the export file at path.
func Load(path string) ([]World, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Encode writes worlds to w as a JSON array. When pretty is true the output
// is indented for human inspection.
func Encode(w io.Writer, worlds []World, pretty bool) error {
	if worlds == nil {
		worlds = []World{}
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(worlds); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
