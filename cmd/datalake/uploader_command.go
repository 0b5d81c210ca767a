package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"datalake/internal/logging"
	"datalake/internal/queue"
)

func newUploaderCommand(ctx *commandContext) *cobra.Command {
	var timeoutFlag time.Duration

	cmd := &cobra.Command{
		Use:   "uploader",
		Short: "Push queued files to the archive as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout := queue.NoTimeout
			if cmd.Flags().Changed("timeout") {
				timeout = timeoutFlag
			}
			return runUploader(cmd.Context(), ctx, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Exit after listening for this long (e.g. 30s); listens forever when omitted")
	return cmd
}

func runUploader(cmdCtx context.Context, ctx *commandContext, timeout time.Duration) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	arch, err := ctx.openArchive(signalCtx, logger)
	if err != nil {
		return err
	}
	upl, err := queue.NewUploader(arch, cfg.Queue.Dir, logger)
	if err != nil {
		return err
	}

	if err := upl.Listen(signalCtx, timeout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("uploader shutting down")
			return nil
		}
		logger.Error("uploader stopped", logging.Error(err))
		return err
	}
	return nil
}
