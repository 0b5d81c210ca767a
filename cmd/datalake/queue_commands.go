package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datalake/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the upload queue",
	}

	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))

	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show upload queue summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir, err := queue.ResolveDir(cfg.Queue.Dir)
			if err != nil {
				return err
			}
			entries, err := queue.Entries(dir)
			if err != nil {
				return err
			}

			pending, broken := 0, 0
			for _, e := range entries {
				if e.Err != nil {
					broken++
				} else {
					pending++
				}
			}

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)
			for _, line := range renderSectionHeader("Upload Queue", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Directory", statusInfo, dir, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Pending", statusOK, fmt.Sprintf("%d", pending), colorize))
			brokenKind := statusOK
			if broken > 0 {
				brokenKind = statusWarn
			}
			fmt.Fprintln(stdout, renderStatusLine("Broken", brokenKind, fmt.Sprintf("%d", broken), colorize))

			rows := buildQueueWhatRows(entries)
			if len(rows) == 0 {
				fmt.Fprintln(stdout, "Queue is empty")
				return nil
			}
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, renderTable([]string{"What", "Count"}, rows, 1))
			return nil
		},
	}
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending queue entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := queue.Entries(cfg.Queue.Dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "What", "Where", "Start", "State", "Target"},
				buildQueueListRows(entries),
			))
			return nil
		},
	}
}
