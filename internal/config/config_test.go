package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"datalake/internal/config"
)

// clearOverlayEnv blanks every environment variable the config package
// overlays so ambient CI credentials cannot leak into assertions.
func clearOverlayEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATALAKE_STORAGE_URL",
		"DATALAKE_S3_ENDPOINT",
		"DATALAKE_QUEUE_DIR",
		"DATALAKE_DEFAULT_WHERE",
		"DATALAKE_LOG_LEVEL",
		"DATALAKE_LOG_FORMAT",
		"AWS_REGION",
		"AWS_DEFAULT_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	clearOverlayEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Skipf("system config present at %s; defaults not observable", resolved)
	}

	wantPath := filepath.Join(tempHome, ".config", "datalake", "config.toml")
	if resolved != wantPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, wantPath)
	}
	if cfg.Storage.URL != "" {
		t.Fatalf("expected empty storage url, got %q", cfg.Storage.URL)
	}
	if cfg.Queue.Dir != "" {
		t.Fatalf("expected empty queue dir, got %q", cfg.Queue.Dir)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected default log format: %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.Logging.Level)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearOverlayEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "datalake.toml")

	type payload struct {
		Storage struct {
			URL    string `toml:"url"`
			Region string `toml:"region"`
		} `toml:"storage"`
		Queue struct {
			Dir string `toml:"dir"`
		} `toml:"queue"`
		Metadata struct {
			DefaultWhere string `toml:"default_where"`
		} `toml:"metadata"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Storage.URL = "s3://example-bucket/ingest"
	custom.Storage.Region = "eu-west-1"
	custom.Queue.Dir = filepath.Join(tempDir, "queue")
	custom.Metadata.DefaultWhere = "WebServer01"
	custom.Logging.Level = "debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Storage.URL != "s3://example-bucket/ingest" {
		t.Fatalf("unexpected storage url: %q", cfg.Storage.URL)
	}
	if cfg.Storage.Region != "eu-west-1" {
		t.Fatalf("unexpected region: %q", cfg.Storage.Region)
	}
	if cfg.Queue.Dir != filepath.Join(tempDir, "queue") {
		t.Fatalf("unexpected queue dir: %q", cfg.Queue.Dir)
	}
	if cfg.Metadata.DefaultWhere != "webserver01" {
		t.Fatalf("expected default_where lowercased, got %q", cfg.Metadata.DefaultWhere)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadExplicitMissingPathFails(t *testing.T) {
	clearOverlayEnv(t)
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, _, _, err := config.Load(missing); err == nil {
		t.Fatal("expected error for explicit missing config path")
	}
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	clearOverlayEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "datalake.toml")

	type payload struct {
		Storage struct {
			URL         string `toml:"url"`
			Region      string `toml:"region"`
			AccessKeyID string `toml:"access_key_id"`
		} `toml:"storage"`
		Queue struct {
			Dir string `toml:"dir"`
		} `toml:"queue"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Storage.URL = "s3://file-bucket"
	custom.Storage.Region = "us-east-1"
	custom.Storage.AccessKeyID = "file-key"
	custom.Queue.Dir = filepath.Join(tempDir, "file-queue")
	custom.Logging.Level = "info"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	envQueue := filepath.Join(tempDir, "env-queue")
	t.Setenv("DATALAKE_STORAGE_URL", "s3://env-bucket")
	t.Setenv("DATALAKE_QUEUE_DIR", envQueue)
	t.Setenv("DATALAKE_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("DATALAKE_LOG_LEVEL", "warn")
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.URL != "s3://env-bucket" {
		t.Errorf("expected storage url from env, got %q", cfg.Storage.URL)
	}
	if cfg.Storage.Region != "ap-southeast-2" {
		t.Errorf("expected region from env, got %q", cfg.Storage.Region)
	}
	if cfg.Storage.AccessKeyID != "env-key" {
		t.Errorf("expected access key from env, got %q", cfg.Storage.AccessKeyID)
	}
	if cfg.Storage.SecretAccessKey != "env-secret" {
		t.Errorf("expected secret key from env, got %q", cfg.Storage.SecretAccessKey)
	}
	if cfg.Storage.Endpoint != "http://localhost:9000" {
		t.Errorf("expected endpoint from env, got %q", cfg.Storage.Endpoint)
	}
	if cfg.Queue.Dir != envQueue {
		t.Errorf("expected queue dir from env, got %q", cfg.Queue.Dir)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level from env, got %q", cfg.Logging.Level)
	}
}

func TestQueueDirExpandsTilde(t *testing.T) {
	clearOverlayEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "datalake.toml")

	contents := "[queue]\ndir = \"~/queue\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(tempHome, "queue"); cfg.Queue.Dir != want {
		t.Fatalf("unexpected queue dir: got %q want %q", cfg.Queue.Dir, want)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.URL = "https://example-bucket"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-s3 storage url")
	}

	cfg = config.Default()
	cfg.Storage.URL = "s3://"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for storage url without bucket")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Logging.Format = "logfmt"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestCreateSample(t *testing.T) {
	clearOverlayEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "s3://your-bucket") {
		t.Fatalf("sample config missing storage placeholder: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Storage.URL != "s3://your-bucket" {
		t.Fatalf("unexpected sample storage url: %q", cfg.Storage.URL)
	}
}
