package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Execute a single ingestion run and print its summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		application, logger, err := buildApplication(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer application.Close()

		summary, ran, err := application.RunOnce(cmd.Context())
		if err != nil {
			return fmt.Errorf("ingestion run: %w", err)
		}
		if !ran {
			fmt.Fprintln(cmd.OutOrStdout(), "another run is in progress, nothing to do")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), summary.String())
		return nil
	},
}
