package usecases

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type CreateRaffleCommand struct {
	ProductName  string
	Description  string
	ImageURL     string
	UnitPrice    float64
	ExchangeRate float64
	TotalTickets int
	NumberWidth  int
	StartsAt     *time.Time
	EndsAt       *time.Time
	DrawAt       *time.Time
}

type CreateRaffleResult struct {
	Raffle *raffle.Raffle
}

type CreateRaffleUseCase struct {
	raffleRepo raffle.RaffleRepository
	pool       ticket.Pool
	txManager  db.Transactor
	logger     logger.Interface
}

func NewCreateRaffleUseCase(
	raffleRepo raffle.RaffleRepository,
	pool ticket.Pool,
	txManager db.Transactor,
	logger logger.Interface,
) *CreateRaffleUseCase {
	return &CreateRaffleUseCase{
		raffleRepo: raffleRepo,
		pool:       pool,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *CreateRaffleUseCase) Execute(ctx context.Context, cmd CreateRaffleCommand) (*CreateRaffleResult, error) {
	rf, err := raffle.NewRaffle(raffle.NewRaffleParams{
		ProductName:  cmd.ProductName,
		Description:  cmd.Description,
		ImageURL:     cmd.ImageURL,
		UnitPrice:    sharedvo.NewMoneyFromFloat(cmd.UnitPrice, sharedvo.CurrencyUSD),
		ExchangeRate: cmd.ExchangeRate,
		TotalTickets: cmd.TotalTickets,
		NumberWidth:  cmd.NumberWidth,
		StartsAt:     cmd.StartsAt,
		EndsAt:       cmd.EndsAt,
		DrawAt:       cmd.DrawAt,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.raffleRepo.Create(txCtx, rf); err != nil {
			return err
		}
		return uc.pool.Initialize(txCtx, rf.ID(), 0, rf.TotalTickets(), rf.NumberWidth())
	})
	if err != nil {
		uc.logger.Errorw("failed to create raffle", "error", err, "product_name", cmd.ProductName)
		return nil, errors.Persistence("failed to create raffle", err)
	}

	uc.logger.Infow("raffle created",
		"raffle_id", rf.ID(),
		"product_name", rf.ProductName(),
		"total_tickets", rf.TotalTickets(),
		"number_width", rf.NumberWidth(),
	)
	return &CreateRaffleResult{Raffle: rf}, nil
}
