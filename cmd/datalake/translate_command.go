package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"datalake/internal/translate"
)

func newTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "translate <expression> <file>",
		Short:       "Translate a file path through an EXTRACT~FORMAT expression",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := translate.New(args[0])
			if err != nil {
				return err
			}
			result, err := t.Translate(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
