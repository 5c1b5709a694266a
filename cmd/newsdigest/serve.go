package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Run ingestion on the configured interval until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, logger, err := buildApplication(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer application.Close()

		return application.Serve(ctx)
	},
}
