package testsupport

import (
	"testing"

	"datalake/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with a unique temp queue directory per
// test and harmless static storage settings. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Queue.Dir = t.TempDir()
	cfg.Storage.URL = "s3://test-bucket"
	cfg.Storage.Region = "us-east-1"
	cfg.Storage.AccessKeyID = "test"
	cfg.Storage.SecretAccessKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithStorageURL overrides the storage URL on the test config.
func WithStorageURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Storage.URL = url
	}
}

// WithQueueDir overrides the queue directory on the test config.
func WithQueueDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Queue.Dir = dir
	}
}

// WithDefaultWhere sets the metadata default_where on the test config.
func WithDefaultWhere(where string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Metadata.DefaultWhere = where
	}
}
