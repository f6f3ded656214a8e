package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	exchangeRateUsecases "github.com/modorifa/rifas/internal/application/exchangerate/usecases"
	raffleUsecases "github.com/modorifa/rifas/internal/application/raffle/usecases"
	"github.com/modorifa/rifas/internal/infrastructure/database"
	"github.com/modorifa/rifas/internal/infrastructure/migration"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
	"github.com/modorifa/rifas/internal/interfaces/cli/bootstrap"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// Fixture is the on-disk layout of a seed file.
type Fixture struct {
	ExchangeRates []RateFixture   `yaml:"exchange_rates"`
	Raffles       []RaffleFixture `yaml:"raffles"`
}

type RateFixture struct {
	Value  float64 `yaml:"value"`
	Source string  `yaml:"source"`
}

type RaffleFixture struct {
	ProductName  string     `yaml:"product_name"`
	Description  string     `yaml:"description"`
	ImageURL     string     `yaml:"image_url"`
	UnitPrice    float64    `yaml:"unit_price"`
	ExchangeRate float64    `yaml:"exchange_rate"`
	TotalTickets int        `yaml:"total_tickets"`
	NumberWidth  int        `yaml:"number_width"`
	StartsAt     *time.Time `yaml:"starts_at"`
	EndsAt       *time.Time `yaml:"ends_at"`
	DrawAt       *time.Time `yaml:"draw_at"`
}

var (
	fixturePath string
	migrate     bool
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load raffles and exchange rates from a fixture file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}

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

			if migrate {
				if err := migration.NewManager(opts.Env, cfg.Database.Driver).Migrate(gdb); err != nil {
					return err
				}
			}

			raffleRepo := repository.NewRaffleRepository(gdb)
			seeder := &seeder{
				createRaffle: raffleUsecases.NewCreateRaffleUseCase(
					raffleRepo, repository.NewTicketRepository(gdb), db.NewTransactionManager(gdb), log,
				),
				recordRate: exchangeRateUsecases.NewRecordExchangeRateUseCase(
					repository.NewExchangeRateRepository(gdb), log,
				),
				out: cmd.OutOrStdout(),
				log: log.Named("seed"),
			}

			return seeder.apply(cmd.Context(), fixture)
		},
	}

	cmd.Flags().StringVarP(&fixturePath, "file", "f", "configs/seed.yaml", "Fixture file to load")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply migrations before seeding")

	return cmd
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

type raffleCreator interface {
	Execute(ctx context.Context, cmd raffleUsecases.CreateRaffleCommand) (*raffleUsecases.CreateRaffleResult, error)
}

type rateRecorder interface {
	Execute(ctx context.Context, cmd exchangeRateUsecases.RecordExchangeRateCommand) (*exchangeRateUsecases.RecordExchangeRateResult, error)
}

type seeder struct {
	createRaffle raffleCreator
	recordRate   rateRecorder
	out          io.Writer
	log          logger.Interface
}

func (s *seeder) apply(ctx context.Context, f *Fixture) error {
	for _, r := range f.ExchangeRates {
		result, err := s.recordRate.Execute(ctx, exchangeRateUsecases.RecordExchangeRateCommand{
			Value:  r.Value,
			Source: r.Source,
		})
		if err != nil {
			return fmt.Errorf("exchange rate %v: %w", r.Value, err)
		}
		fmt.Fprintf(s.out, "exchange rate %d: %.4f\n", result.Rate.ID(), result.Rate.Value())
	}

	for _, r := range f.Raffles {
		result, err := s.createRaffle.Execute(ctx, raffleUsecases.CreateRaffleCommand{
			ProductName:  r.ProductName,
			Description:  r.Description,
			ImageURL:     r.ImageURL,
			UnitPrice:    r.UnitPrice,
			ExchangeRate: r.ExchangeRate,
			TotalTickets: r.TotalTickets,
			NumberWidth:  r.NumberWidth,
			StartsAt:     r.StartsAt,
			EndsAt:       r.EndsAt,
			DrawAt:       r.DrawAt,
		})
		if err != nil {
			return fmt.Errorf("raffle %q: %w", r.ProductName, err)
		}
		fmt.Fprintf(s.out, "raffle %d: %s (%d tickets)\n",
			result.Raffle.ID(), result.Raffle.ProductName(), result.Raffle.TotalTickets())
	}

	s.log.Infow("seed applied", "exchange_rates", len(f.ExchangeRates), "raffles", len(f.Raffles))
	return nil
}
