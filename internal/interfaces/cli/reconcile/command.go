package reconcile

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	raffleUsecases "github.com/modorifa/rifas/internal/application/raffle/usecases"
	"github.com/modorifa/rifas/internal/infrastructure/database"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
	"github.com/modorifa/rifas/internal/interfaces/cli/bootstrap"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/keylock"
)

var (
	raffleID uint
	repair   bool
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare cached sold counters with the ticket pool",
		Long: `Walk every raffle (or a single one) and compare its cached tickets_sold
counter with the number of paid tickets in its pool. With --repair the
counter is rewritten from the pool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap.Init(opts)
			if err != nil {
				return err
			}

			gdb, err := database.Open(&cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				if sqlDB, err := gdb.DB(); err == nil {
					sqlDB.Close()
				}
			}()

			uc := raffleUsecases.NewCheckConsistencyUseCase(
				repository.NewRaffleRepository(gdb),
				repository.NewTicketRepository(gdb),
				keylock.New(),
				db.NewTransactionManager(gdb),
				log.Named("reconcile"),
			)

			command := raffleUsecases.CheckConsistencyCommand{Repair: repair}
			if cmd.Flags().Changed("raffle-id") {
				id := raffleID
				command.RaffleID = &id
			}

			result, err := uc.Execute(cmd.Context(), command)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().UintVar(&raffleID, "raffle-id", 0, "Only check this raffle")
	cmd.Flags().BoolVar(&repair, "repair", false, "Rewrite drifted counters from the ticket pool")

	return cmd
}

func printReport(w io.Writer, result *raffleUsecases.CheckConsistencyResult) {
	fmt.Fprintf(w, "Checked raffles: %d\n", result.Checked)
	if len(result.Drifts) == 0 {
		fmt.Fprintln(w, "All counters consistent.")
		return
	}

	fmt.Fprintf(w, "Drifted raffles: %d\n", len(result.Drifts))
	for _, d := range result.Drifts {
		status := "reported"
		if d.Repaired {
			status = "repaired"
		}
		fmt.Fprintf(w, "  raffle %d: cached=%d live=%d (%s)\n", d.RaffleID, d.Cached, d.Live, status)
	}
}
