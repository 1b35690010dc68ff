// Package export regenerates the approved-worlds feed file from the store.
// Every run rewrites the complete file; a lock file keeps concurrent runs
// from interleaving writes.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"worldfeed/internal/config"
	"worldfeed/internal/feed"
	"worldfeed/internal/logging"
	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

const lockRetryInterval = 50 * time.Millisecond

// Exporter writes the approved export file.
type Exporter struct {
	path   string
	pretty bool
	logger *slog.Logger
}

// New builds an exporter targeting the configured export path.
func New(cfg *config.Config, logger *slog.Logger) *Exporter {
	return &Exporter{
		path:   cfg.Paths.ExportPath,
		pretty: cfg.Export.Pretty,
		logger: logging.WithComponent(logger, "export"),
	}
}

// Path returns the export file destination.
func (e *Exporter) Path() string {
	return e.path
}

// Run reads the approved worlds from the store and rewrites the export
// file. It returns the number of exported entries.
func (e *Exporter) Run(ctx context.Context, st *store.Store) (int, error) {
	items, err := st.Approved(ctx)
	if err != nil {
		return 0, err
	}
	worlds := Convert(items)
	if err := e.write(ctx, worlds); err != nil {
		return 0, err
	}
	e.logger.Info("export written",
		logging.String("path", e.path),
		logging.Int("worlds", len(worlds)))
	return len(worlds), nil
}

// Convert maps stored worlds to the export shape. Ordering is preserved, so
// callers control the export order through the input slice. Unpublished
// dates (the upstream "none" marker) export as an absent publicationDate.
func Convert(items []*store.World) []feed.World {
	worlds := make([]feed.World, 0, len(items))
	for _, item := range items {
		entry := feed.World{
			Name:     item.Name,
			Author:   item.AuthorName,
			WorldURL: item.PageURL(),
			Visits:   item.Visits,
		}
		if len(item.Record.Tags) > 0 {
			entry.Tags = append([]string(nil), item.Record.Tags...)
		}
		if _, ok := world.ParseDate(item.PublicationDate); ok {
			entry.PublicationDate = item.PublicationDate
		}
		worlds = append(worlds, entry)
	}
	return worlds
}

// write serializes worlds to a temp file next to the destination and
// renames it into place, holding the export lock for the duration.
func (e *Exporter) write(ctx context.Context, worlds []feed.World) error {
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure export directory: %w", err)
	}

	lock := flock.New(e.path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("export lock %s is held by another process", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	var buf bytes.Buffer
	if err := feed.Encode(&buf, worlds, e.pretty); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(e.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp export: %w", err)
	}
	if err := os.Rename(tmpPath, e.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace export: %w", err)
	}
	return nil
}
