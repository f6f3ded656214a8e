package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/modorifa/rifas/internal/infrastructure/database"
	"github.com/modorifa/rifas/internal/infrastructure/migration"
	"github.com/modorifa/rifas/internal/interfaces/cli/bootstrap"
	"github.com/modorifa/rifas/internal/shared/logger"
)

const defaultScriptsDir = "internal/infrastructure/migration/scripts"

var (
	name       string
	scriptsDir string
	steps      int
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.AddCommand(
		newUpCommand(opts),
		newDownCommand(opts),
		newStatusCommand(opts),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *gorm.DB, log logger.Interface) error {
				log.Infow("running up migrations", "environment", opts.Env)
				if err := migration.NewGooseStrategy().Migrate(db); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				log.Infow("migrations completed successfully")
				return nil
			})
		},
	}
}

func newDownCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *gorm.DB, log logger.Interface) error {
				log.Infow("running down migrations", "environment", opts.Env, "steps", steps)
				if err := migration.NewGooseStrategy().MigrateDown(db, steps); err != nil {
					return fmt.Errorf("down migration failed: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(opts, func(db *gorm.DB, log logger.Interface) error {
				strategy := migration.NewGooseStrategy()
				version, err := strategy.GetVersion(db)
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "\nMigration Status:\n")
				fmt.Fprintf(out, "  Environment:     %s\n", opts.Env)
				fmt.Fprintf(out, "  Current Version: %d\n", version)

				return strategy.Status(db)
			})
		},
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new sequential SQL migration file with the specified name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.NewGooseStrategy().Create(scriptsDir, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, scriptsDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&scriptsDir, "dir", defaultScriptsDir, "Directory holding the SQL scripts")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func withDatabase(opts *bootstrap.Options, fn func(db *gorm.DB, log logger.Interface) error) error {
	cfg, log, err := bootstrap.Init(opts)
	if err != nil {
		return err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	return fn(db, log)
}
