package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"datalake/internal/testsupport"
)

// clearAmbientEnv blanks every variable the config overlay reads so host
// settings cannot leak into assertions.
func clearAmbientEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATALAKE_STORAGE_URL",
		"AWS_REGION",
		"AWS_DEFAULT_REGION",
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"DATALAKE_S3_ENDPOINT",
		"DATALAKE_QUEUE_DIR",
		"DATALAKE_DEFAULT_WHERE",
		"DATALAKE_LOG_LEVEL",
		"DATALAKE_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

type cliTestEnv struct {
	baseDir    string
	queueDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	clearAmbientEnv(t)

	base := t.TempDir()
	queueDir := filepath.Join(base, "queue")
	if err := os.MkdirAll(queueDir, 0o755); err != nil {
		t.Fatalf("mkdir queue dir: %v", err)
	}

	cfg := testsupport.NewConfig(t,
		testsupport.WithQueueDir(queueDir),
		testsupport.WithDefaultWhere("testhost"),
	)
	// Quiet the uploader command's stdout logging.
	cfg.Logging.Level = "error"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal test config: %v", err)
	}
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, queueDir: queueDir, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
