package cmd

import (
	"log"

	"movie-reviews/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bootstrap loads config and builds the logger shared by every subcommand
func bootstrap() (*utils.Config, *zap.Logger) {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "movie-reviews",
		Short:         "Movie review REST API",
		SilenceUsage:  true,
		SilenceErrors: false,
		// running without a subcommand starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())
	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}
