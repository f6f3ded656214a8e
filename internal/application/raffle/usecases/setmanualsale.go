package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type SetManualSaleCommand struct {
	RaffleID uint
	Open     bool
}

type SetManualSaleResult struct {
	Raffle *raffle.Raffle
}

type SetManualSaleUseCase struct {
	raffleRepo raffle.RaffleRepository
	logger     logger.Interface
}

func NewSetManualSaleUseCase(raffleRepo raffle.RaffleRepository, logger logger.Interface) *SetManualSaleUseCase {
	return &SetManualSaleUseCase{
		raffleRepo: raffleRepo,
		logger:     logger,
	}
}

func (uc *SetManualSaleUseCase) Execute(ctx context.Context, cmd SetManualSaleCommand) (*SetManualSaleResult, error) {
	rf, err := uc.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}
	if rf.ManualOpenForSale() == cmd.Open {
		return &SetManualSaleResult{Raffle: rf}, nil
	}

	if err := rf.SetManualSale(cmd.Open); err != nil {
		return nil, mutationError(err)
	}
	if err := uc.raffleRepo.Update(ctx, rf); err != nil {
		return nil, errors.Persistence("failed to update raffle", err)
	}

	uc.logger.Infow("raffle manual sale toggled", "raffle_id", rf.ID(), "open", cmd.Open)
	return &SetManualSaleResult{Raffle: rf}, nil
}
