package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. Settings that only some
// commands need, such as the storage URL and the queue directory, may be
// empty here; the consuming component rejects a missing value when it is
// actually required.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.URL == "" {
		return nil
	}
	parsed, err := url.Parse(c.Storage.URL)
	if err != nil {
		return fmt.Errorf("storage.url: %w", err)
	}
	if parsed.Scheme != "s3" {
		return fmt.Errorf("storage.url must use the s3 scheme, got %q", c.Storage.URL)
	}
	if parsed.Host == "" {
		return errors.New("storage.url must name a bucket")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
