package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"datalake/internal/logging"
	"datalake/internal/queue"
)

func newEnqueueCommand(ctx *commandContext) *cobra.Command {
	var mdFlags metadataFlags

	cmd := &cobra.Command{
		Use:   "enqueue <file>",
		Short: "Queue a file for the uploader to push later",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fields, err := mdFlags.resolve(path, cfg)
			if err != nil {
				return err
			}

			enq, err := queue.NewEnqueuer(cfg.Queue.Dir, logging.NewNop())
			if err != nil {
				return err
			}
			if _, err := enq.Enqueue(path, fields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enqueued %s\n", args[0])
			return nil
		},
	}

	mdFlags.register(cmd)
	return cmd
}
