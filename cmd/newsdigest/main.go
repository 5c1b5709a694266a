// Package main is the command-line entry point for the news ingestion service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"NewsSimplifier/internal/app"
	"NewsSimplifier/internal/config"
	"NewsSimplifier/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "newsdigest",
	Short: "Ingest, simplify and translate news articles",
	Long:  "newsdigest pulls syndication feeds, simplifies article text under readability and fact checks, generates quizzes and stores multilingual records.",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if configPath == "" {
			return nil
		}
		return os.Setenv(config.ConfigPathEnv, configPath)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (defaults to $"+config.ConfigPathEnv+")")
	rootCmd.AddCommand(runCommand, serveCommand)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildApplication(cmd *cobra.Command) (*app.Application, *logging.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cfg.Logging.Level)
	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return application, logger, nil
}
