package config

import (
	"fmt"
	"os"
	"strings"
)

// applyEnvironment overlays environment variables onto file values. The
// resolution order is flag > environment > file > default; flags are applied
// by the CLI layer after Load returns.
func (c *Config) applyEnvironment() {
	overlay := func(dst *string, keys ...string) {
		for _, key := range keys {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				*dst = value
				return
			}
		}
	}
	overlay(&c.Storage.URL, "DATALAKE_STORAGE_URL")
	overlay(&c.Storage.Region, "AWS_REGION", "AWS_DEFAULT_REGION")
	overlay(&c.Storage.AccessKeyID, "AWS_ACCESS_KEY_ID")
	overlay(&c.Storage.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	overlay(&c.Storage.Endpoint, "DATALAKE_S3_ENDPOINT")
	overlay(&c.Queue.Dir, "DATALAKE_QUEUE_DIR")
	overlay(&c.Metadata.DefaultWhere, "DATALAKE_DEFAULT_WHERE")
	overlay(&c.Logging.Level, "DATALAKE_LOG_LEVEL")
	overlay(&c.Logging.Format, "DATALAKE_LOG_FORMAT")
}

func (c *Config) normalize() error {
	c.normalizeStorage()
	if err := c.normalizeQueue(); err != nil {
		return err
	}
	c.normalizeMetadata()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.URL = strings.TrimSpace(c.Storage.URL)
	c.Storage.Region = strings.TrimSpace(c.Storage.Region)
	c.Storage.AccessKeyID = strings.TrimSpace(c.Storage.AccessKeyID)
	c.Storage.SecretAccessKey = strings.TrimSpace(c.Storage.SecretAccessKey)
	c.Storage.Endpoint = strings.TrimSpace(c.Storage.Endpoint)
}

func (c *Config) normalizeQueue() error {
	c.Queue.Dir = strings.TrimSpace(c.Queue.Dir)
	if c.Queue.Dir == "" {
		return nil
	}
	var err error
	if c.Queue.Dir, err = expandPath(c.Queue.Dir); err != nil {
		return fmt.Errorf("queue.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMetadata() {
	c.Metadata.DefaultWhere = strings.ToLower(strings.TrimSpace(c.Metadata.DefaultWhere))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
