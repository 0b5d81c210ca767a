package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var storageURLFlag string
	var accessKeyFlag string
	var secretKeyFlag string
	var regionFlag string

	ctx := newCommandContext(&configFlag, &storageURLFlag, &accessKeyFlag, &secretKeyFlag, &regionFlag)

	rootCmd := &cobra.Command{
		Use:           "datalake",
		Short:         "Archive files with their metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&storageURLFlag, "storage-url", "u", "", "URL of the top-level storage resource (e.g. s3://my-datalake); DATALAKE_STORAGE_URL in config/environment")
	rootCmd.PersistentFlags().StringVarP(&accessKeyFlag, "aws-access-key-id", "k", "", "AWS access key used to write s3; AWS_ACCESS_KEY_ID in config/environment")
	rootCmd.PersistentFlags().StringVarP(&secretKeyFlag, "aws-secret-access-key", "s", "", "AWS secret key used to write s3; AWS_SECRET_ACCESS_KEY in config/environment")
	rootCmd.PersistentFlags().StringVarP(&regionFlag, "aws-region", "r", "", "AWS region where files are stored; AWS_REGION in config/environment")

	rootCmd.AddCommand(newPushCommand(ctx))
	rootCmd.AddCommand(newEnqueueCommand(ctx))
	rootCmd.AddCommand(newUploaderCommand(ctx))
	rootCmd.AddCommand(newTranslateCommand())
	rootCmd.AddCommand(newQueueCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
