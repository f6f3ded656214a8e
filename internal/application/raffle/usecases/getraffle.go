package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type GetRaffleQuery struct {
	RaffleID uint
}

type GetRaffleResult struct {
	Raffle  *raffle.Raffle
	Winners []raffle.Winner
}

type GetRaffleUseCase struct {
	raffleRepo raffle.RaffleRepository
	winnerRepo raffle.WinnerRepository
	logger     logger.Interface
}

func NewGetRaffleUseCase(raffleRepo raffle.RaffleRepository, winnerRepo raffle.WinnerRepository, logger logger.Interface) *GetRaffleUseCase {
	return &GetRaffleUseCase{
		raffleRepo: raffleRepo,
		winnerRepo: winnerRepo,
		logger:     logger,
	}
}

func (uc *GetRaffleUseCase) Execute(ctx context.Context, query GetRaffleQuery) (*GetRaffleResult, error) {
	rf, err := uc.raffleRepo.GetByID(ctx, query.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}

	result := &GetRaffleResult{Raffle: rf}
	if rf.Status().IsDrawn() {
		winners, err := uc.winnerRepo.ListByRaffle(ctx, rf.ID())
		if err != nil {
			return nil, errors.Persistence("failed to list winners", err)
		}
		result.Winners = winners
	}
	return result, nil
}
