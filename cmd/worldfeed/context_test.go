package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureLoggerAppliesLoggingConfig(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(base, "data") + `"
log_dir = "` + filepath.Join(base, "logs") + `"
export_path = "` + filepath.Join(base, "data", "approved_export.json") + `"

[logging]
format = "console"
level = "debug"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	flag := cfgPath
	ctx := newCommandContext(&flag)
	logger, err := ctx.ensureLogger()
	if err != nil {
		t.Fatalf("ensure logger: %v", err)
	}
	logger.Debug("logger configured")

	data, err := os.ReadFile(filepath.Join(base, "logs", "worldfeed.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "logger configured") {
		t.Fatalf("configured debug record missing from log file: %s", data)
	}

	again, err := ctx.ensureLogger()
	if err != nil {
		t.Fatalf("second ensure logger: %v", err)
	}
	if again != logger {
		t.Fatal("ensureLogger rebuilt the logger")
	}
}
