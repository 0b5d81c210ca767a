package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"datalake/internal/logging"
)

func newPushCommand(ctx *commandContext) *cobra.Command {
	var mdFlags metadataFlags

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Push a file to the archive",
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

			arch, err := ctx.openArchive(cmd.Context(), logging.NewNop())
			if err != nil {
				return err
			}
			url, err := arch.PushPath(cmd.Context(), path, fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s to %s\n", args[0], url)
			return nil
		},
	}

	mdFlags.register(cmd)
	return cmd
}
