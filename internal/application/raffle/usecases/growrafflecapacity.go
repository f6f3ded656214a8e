package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type GrowRaffleCapacityCommand struct {
	RaffleID     uint
	TotalTickets int
}

type GrowRaffleCapacityResult struct {
	Raffle *raffle.Raffle
	Added  int
}

type GrowRaffleCapacityUseCase struct {
	raffleRepo raffle.RaffleRepository
	pool       ticket.Pool
	locks      RaffleLocker
	txManager  db.Transactor
	logger     logger.Interface
}

func NewGrowRaffleCapacityUseCase(
	raffleRepo raffle.RaffleRepository,
	pool ticket.Pool,
	locks RaffleLocker,
	txManager db.Transactor,
	logger logger.Interface,
) *GrowRaffleCapacityUseCase {
	return &GrowRaffleCapacityUseCase{
		raffleRepo: raffleRepo,
		pool:       pool,
		locks:      locks,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *GrowRaffleCapacityUseCase) Execute(ctx context.Context, cmd GrowRaffleCapacityCommand) (*GrowRaffleCapacityResult, error) {
	unlock := uc.locks.LockID(cmd.RaffleID)
	defer unlock()

	var (
		rf       *raffle.Raffle
		from, to int
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		rf, err = uc.raffleRepo.GetByIDForUpdate(txCtx, cmd.RaffleID)
		if err != nil {
			return err
		}
		from, to, err = rf.GrowCapacity(cmd.TotalTickets)
		if err != nil {
			// growth on a drawn raffle is a bad request, not a state race
			return errors.NewValidationError(err.Error())
		}
		if to == from {
			return nil
		}
		if err := uc.raffleRepo.Update(txCtx, rf); err != nil {
			return err
		}
		return uc.pool.Initialize(txCtx, rf.ID(), from, to, rf.NumberWidth())
	})
	if err != nil {
		return nil, errors.Persistence("failed to grow raffle capacity", err)
	}

	if to > from {
		uc.logger.Infow("raffle capacity grown",
			"raffle_id", rf.ID(),
			"from", from,
			"to", to,
		)
	}
	return &GrowRaffleCapacityResult{Raffle: rf, Added: to - from}, nil
}
