package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"worldfeed/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestConsoleFormatLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logging.WithComponent(logger, "export").Info("export written",
		logging.String("path", "/tmp/out.json"),
		logging.Int("worlds", 3))

	line := readLog(t, path)
	for _, want := range []string{"INFO", "export:", "export written", "path=/tmp/out.json", "worlds=3"} {
		if !strings.Contains(line, want) {
			t.Errorf("console line missing %q: %s", want, line)
		}
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	line := readLog(t, path)
	if strings.Contains(line, "quiet") {
		t.Errorf("info record passed warn filter: %s", line)
	}
	if !strings.Contains(line, "loud") {
		t.Errorf("warn record filtered out: %s", line)
	}
}

func TestJSONFormatFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("feed loaded", logging.Int("worlds", 2))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "feed loaded" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Errorf("level = %v", record["level"])
	}
	if record["worlds"] != float64(2) {
		t.Errorf("worlds = %v", record["worlds"])
	}
	if _, ok := record["ts"]; !ok {
		t.Error("ts field missing")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestWithComponentNilBase(t *testing.T) {
	logger := logging.WithComponent(nil, "anything")
	// Must not panic and must stay silent.
	logger.Error("dropped")
}

func TestErrorAttrNil(t *testing.T) {
	attr := logging.Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("nil error attr = %v", attr.Value)
	}
}
