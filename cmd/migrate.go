package cmd

import (
	"fmt"
	"strconv"

	"movie-reviews/pkg/database"
	"movie-reviews/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger := bootstrap()
			defer logger.Sync()
			return migrateUp(config.Database, logger)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid steps argument %q", args[0])
				}
				steps = n
			}

			config, logger := bootstrap()
			defer logger.Sync()

			m, err := database.NewMigrator(config.Database, logger)
			if err != nil {
				return err
			}
			defer m.Close()

			return m.Down(steps)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger := bootstrap()
			defer logger.Sync()

			m, err := database.NewMigrator(config.Database, logger)
			if err != nil {
				return err
			}
			defer m.Close()

			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			cmd.Printf("version: %d  dirty: %v\n", v, dirty)
			return nil
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func migrateUp(config utils.DatabaseConfig, logger *zap.Logger) error {
	m, err := database.NewMigrator(config, logger)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}
