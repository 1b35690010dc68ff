package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"worldfeed/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.VRChat.BaseURL != "https://vrchat.com/api/1" {
		t.Fatalf("default base url = %q", cfg.VRChat.BaseURL)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7648" {
		t.Fatalf("default bind = %q", cfg.Paths.APIBind)
	}
	if !cfg.Export.Pretty || !cfg.Snapshots.Enabled {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
[paths]
data_dir = "`+filepath.Join(base, "data")+`"
api_bind = "0.0.0.0:9000"

[vrchat]
base_url = "https://example.com/api/1/"
page_size = 25

[logging]
format = "JSON"
level = "Debug"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("existing file reported as missing")
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Fatalf("bind override lost: %q", cfg.Paths.APIBind)
	}
	// Trailing slash trimmed, casing folded during normalization.
	if cfg.VRChat.BaseURL != "https://example.com/api/1" {
		t.Fatalf("base url = %q", cfg.VRChat.BaseURL)
	}
	if cfg.VRChat.PageSize != 25 {
		t.Fatalf("page size = %d", cfg.VRChat.PageSize)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging normalization: %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadBindAddress(t *testing.T) {
	path := writeConfig(t, `
[paths]
api_bind = "not-a-bind"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("bad bind address accepted")
	}
}

func TestLoadRejectsNonHTTPBaseURL(t *testing.T) {
	path := writeConfig(t, `
[vrchat]
base_url = "ftp://example.com"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("non-http base url accepted")
	}
}

func TestLoadRejectsPasswordWithoutUsername(t *testing.T) {
	path := writeConfig(t, `
[vrchat]
password = "hunter2"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("password without username accepted")
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("unknown log format accepted")
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = "/tmp/worldfeed-test/data"
	cfg.Paths.LogDir = "/tmp/worldfeed-test/logs"

	if got := cfg.DatabasePath(); got != "/tmp/worldfeed-test/data/worlds.db" {
		t.Fatalf("database path = %q", got)
	}
	if got := cfg.LockPath(); got != "/tmp/worldfeed-test/logs/worldfeedd.lock" {
		t.Fatalf("lock path = %q", got)
	}
	if !strings.HasPrefix(cfg.RawWorldsPath(), cfg.Paths.DataDir) {
		t.Fatalf("raw worlds path outside data dir: %q", cfg.RawWorldsPath())
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := config.ExpandPath("~/worlds")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "worlds") {
		t.Fatalf("expanded = %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := writeConfig(t, config.SampleConfig())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}
