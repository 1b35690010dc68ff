// Package testsupport provides builders shared by package tests: configs
// seeded with per-test temp directories, stores, and sample records.
package testsupport

import (
	"path/filepath"
	"testing"

	"worldfeed/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportPath = filepath.Join(base, "data", "approved_export.json")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Snapshots.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithExportPath overrides the export destination on the test config.
func WithExportPath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.ExportPath = path
	}
}

// WithPrettyExport toggles indented export output on the test config.
func WithPrettyExport(pretty bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Export.Pretty = pretty
	}
}
