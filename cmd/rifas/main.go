package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/modorifa/rifas/internal/interfaces/cli/bootstrap"
	"github.com/modorifa/rifas/internal/interfaces/cli/hashpassword"
	"github.com/modorifa/rifas/internal/interfaces/cli/migrate"
	"github.com/modorifa/rifas/internal/interfaces/cli/reconcile"
	"github.com/modorifa/rifas/internal/interfaces/cli/seed"
	"github.com/modorifa/rifas/internal/interfaces/cli/server"
)

func main() {
	opts := &bootstrap.Options{}

	rootCmd := &cobra.Command{
		Use:          "rifas",
		Short:        "Rifas - raffle sales and draw service",
		Long:         `Rifas sells numbered raffle tickets against manually verified payments and draws the winners.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		server.NewCommand(opts),
		migrate.NewCommand(opts),
		reconcile.NewCommand(opts),
		seed.NewCommand(opts),
		hashpassword.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
