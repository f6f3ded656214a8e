package usecases

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// UpdateRaffleCommand carries optional changes; nil fields are kept.
type UpdateRaffleCommand struct {
	RaffleID     uint
	ProductName  *string
	Description  *string
	ImageURL     *string
	UnitPrice    *float64
	ExchangeRate *float64
	StartsAt     *time.Time
	EndsAt       *time.Time
	DrawAt       *time.Time
}

type UpdateRaffleResult struct {
	Raffle *raffle.Raffle
}

type UpdateRaffleUseCase struct {
	raffleRepo raffle.RaffleRepository
	logger     logger.Interface
}

func NewUpdateRaffleUseCase(raffleRepo raffle.RaffleRepository, logger logger.Interface) *UpdateRaffleUseCase {
	return &UpdateRaffleUseCase{
		raffleRepo: raffleRepo,
		logger:     logger,
	}
}

func (uc *UpdateRaffleUseCase) Execute(ctx context.Context, cmd UpdateRaffleCommand) (*UpdateRaffleResult, error) {
	rf, err := uc.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}

	params := raffle.UpdateRaffleParams{
		ProductName:  cmd.ProductName,
		Description:  cmd.Description,
		ImageURL:     cmd.ImageURL,
		ExchangeRate: cmd.ExchangeRate,
		StartsAt:     cmd.StartsAt,
		EndsAt:       cmd.EndsAt,
		DrawAt:       cmd.DrawAt,
	}
	if cmd.UnitPrice != nil {
		price := sharedvo.NewMoneyFromFloat(*cmd.UnitPrice, sharedvo.CurrencyUSD)
		params.UnitPrice = &price
	}
	if err := rf.UpdateDetails(params); err != nil {
		return nil, mutationError(err)
	}

	if err := uc.raffleRepo.Update(ctx, rf); err != nil {
		uc.logger.Warnw("failed to update raffle", "error", err, "raffle_id", cmd.RaffleID)
		return nil, errors.Persistence("failed to update raffle", err)
	}

	uc.logger.Infow("raffle updated", "raffle_id", rf.ID())
	return &UpdateRaffleResult{Raffle: rf}, nil
}
