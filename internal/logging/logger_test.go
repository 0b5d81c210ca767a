package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"datalake/internal/config"
	"datalake/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(contents)
}

func TestConsoleFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("pushed", logging.String("id", "abc123"), logging.String("note", "two words"))

	line := strings.TrimSpace(readLog(t, logPath))
	if !strings.Contains(line, " INFO ") {
		t.Fatalf("expected level label in output: %q", line)
	}
	if !strings.Contains(line, "pushed") {
		t.Fatalf("expected message in output: %q", line)
	}
	if !strings.Contains(line, "id=abc123") {
		t.Fatalf("expected attribute in output: %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("expected quoted attribute in output: %q", line)
	}
}

func TestConsoleNumericAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "kinds.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	attrs := []logging.Attr{
		logging.Int("entries", 3),
		logging.Int64("start", 1415391900000),
		logging.Duration("timeout", 1500*time.Millisecond),
	}
	logger.Debug("drained queue", logging.Args(attrs...)...)

	line := strings.TrimSpace(readLog(t, logPath))
	if !strings.Contains(line, "entries=3") {
		t.Fatalf("expected unquoted int attribute in output: %q", line)
	}
	if !strings.Contains(line, "start=1415391900000") {
		t.Fatalf("expected unquoted int64 attribute in output: %q", line)
	}
	if !strings.Contains(line, "timeout=1.5s") {
		t.Fatalf("expected duration attribute in output: %q", line)
	}
}

func TestConsoleComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "component.log")
	base, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger := logging.NewComponentLogger(base, "uploader")
	logger.Info("watching queue")

	line := strings.TrimSpace(readLog(t, logPath))
	if !strings.Contains(line, "uploader: watching queue") {
		t.Fatalf("expected component prefix in output: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not repeat as attribute: %q", line)
	}
}

func TestConsoleLevelGate(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "gate.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "warn",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	contents := readLog(t, logPath)
	if strings.Contains(contents, "hidden") {
		t.Fatalf("info record should be suppressed at warn level: %q", contents)
	}
	if !strings.Contains(contents, "visible") {
		t.Fatalf("warn record missing: %q", contents)
	}
}

func TestJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("enqueued", logging.String("path", "/data/file"), logging.Error(errors.New("boom")))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	if record["msg"] != "enqueued" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	ts, ok := record["ts"].(string)
	if !ok {
		t.Fatalf("expected ts string, got %T", record["ts"])
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("ts not RFC3339: %v", err)
	}
	if record["path"] != "/data/file" {
		t.Fatalf("unexpected path attribute: %v", record["path"])
	}
	if record["error"] != "boom" {
		t.Fatalf("unexpected error attribute: %v", record["error"])
	}
}

func TestUnsupportedFormatFails(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "logfmt"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}

	logger, err = logging.NewFromConfig(nil)
	if err != nil {
		t.Fatalf("NewFromConfig(nil) returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected fallback logger instance")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("discarded")
	logger.Error("also discarded")
}
