package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type ChangeRaffleStatusCommand struct {
	RaffleID uint
	Status   string
}

type ChangeRaffleStatusResult struct {
	Raffle *raffle.Raffle
}

type ChangeRaffleStatusUseCase struct {
	raffleRepo raffle.RaffleRepository
	logger     logger.Interface
}

func NewChangeRaffleStatusUseCase(raffleRepo raffle.RaffleRepository, logger logger.Interface) *ChangeRaffleStatusUseCase {
	return &ChangeRaffleStatusUseCase{
		raffleRepo: raffleRepo,
		logger:     logger,
	}
}

func (uc *ChangeRaffleStatusUseCase) Execute(ctx context.Context, cmd ChangeRaffleStatusCommand) (*ChangeRaffleStatusResult, error) {
	next, err := vo.NewRaffleStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if next.IsDrawn() {
		return nil, errors.NewValidationError("a raffle becomes drawn only through the draw")
	}

	rf, err := uc.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}

	previous := rf.Status()
	if err := rf.ChangeStatus(next); err != nil {
		return nil, errors.NewInvalidStateTransitionError(err.Error())
	}
	if previous == next {
		return &ChangeRaffleStatusResult{Raffle: rf}, nil
	}

	if err := uc.raffleRepo.Update(ctx, rf); err != nil {
		return nil, errors.Persistence("failed to update raffle status", err)
	}

	uc.logger.Infow("raffle status changed",
		"raffle_id", rf.ID(),
		"from", previous.String(),
		"to", next.String(),
	)
	return &ChangeRaffleStatusResult{Raffle: rf}, nil
}
