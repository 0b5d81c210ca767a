package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"datalake/internal/archive"
	"datalake/internal/config"
)

type commandContext struct {
	configFlag     *string
	storageURLFlag *string
	accessKeyFlag  *string
	secretKeyFlag  *string
	regionFlag     *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, storageURLFlag, accessKeyFlag, secretKeyFlag, regionFlag *string) *commandContext {
	return &commandContext{
		configFlag:     configFlag,
		storageURLFlag: storageURLFlag,
		accessKeyFlag:  accessKeyFlag,
		secretKeyFlag:  secretKeyFlag,
		regionFlag:     regionFlag,
	}
}

// ensureConfig loads configuration once per invocation. Command-line flags
// take precedence over environment variables, which take precedence over the
// config file.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		applyFlag(&cfg.Storage.URL, c.storageURLFlag)
		applyFlag(&cfg.Storage.AccessKeyID, c.accessKeyFlag)
		applyFlag(&cfg.Storage.SecretAccessKey, c.secretKeyFlag)
		applyFlag(&cfg.Storage.Region, c.regionFlag)
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func applyFlag(dst *string, flag *string) {
	if flag == nil {
		return
	}
	if value := strings.TrimSpace(*flag); value != "" {
		*dst = value
	}
}

func (c *commandContext) openArchive(ctx context.Context, logger *slog.Logger) (*archive.Archive, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return archive.New(ctx, cfg, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
