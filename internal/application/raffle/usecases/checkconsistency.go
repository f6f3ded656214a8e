package usecases

import (
	"context"
	"sort"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	ticketvo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type CheckConsistencyCommand struct {
	// RaffleID limits the check to one raffle when set.
	RaffleID *uint
	Repair   bool
}

// CounterDrift is one raffle whose cached tickets_sold disagrees with its pool.
type CounterDrift struct {
	RaffleID uint
	Cached   int
	Live     int
	Repaired bool
}

type CheckConsistencyResult struct {
	Checked int
	Drifts  []CounterDrift
}

type CheckConsistencyUseCase struct {
	raffleRepo raffle.RaffleRepository
	pool       ticket.Pool
	locks      RaffleLocker
	txManager  db.Transactor
	logger     logger.Interface
}

func NewCheckConsistencyUseCase(
	raffleRepo raffle.RaffleRepository,
	pool ticket.Pool,
	locks RaffleLocker,
	txManager db.Transactor,
	logger logger.Interface,
) *CheckConsistencyUseCase {
	return &CheckConsistencyUseCase{
		raffleRepo: raffleRepo,
		pool:       pool,
		locks:      locks,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *CheckConsistencyUseCase) Execute(ctx context.Context, cmd CheckConsistencyCommand) (*CheckConsistencyResult, error) {
	counters, err := uc.raffleRepo.TicketsSoldCounters(ctx)
	if err != nil {
		return nil, errors.Persistence("failed to read ticket counters", err)
	}
	claimed, err := uc.pool.CountClaimedByRaffle(ctx)
	if err != nil {
		return nil, errors.Persistence("failed to count claimed tickets", err)
	}

	if cmd.RaffleID != nil {
		cached, ok := counters[*cmd.RaffleID]
		if !ok {
			return nil, errors.NewNotFoundError("raffle not found")
		}
		counters = map[uint]int{*cmd.RaffleID: cached}
	}

	ids := make([]uint, 0, len(counters))
	for id := range counters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &CheckConsistencyResult{Checked: len(ids)}
	for _, id := range ids {
		cached, live := counters[id], int(claimed[id])
		if cached == live {
			continue
		}
		drift := CounterDrift{RaffleID: id, Cached: cached, Live: live}
		uc.logger.Warnw("tickets sold counter drifted",
			"raffle_id", id,
			"cached", cached,
			"live", live,
		)
		if cmd.Repair {
			repaired, err := uc.repair(ctx, id)
			if err != nil {
				return nil, err
			}
			drift.Live = repaired
			drift.Repaired = true
		}
		result.Drifts = append(result.Drifts, drift)
	}
	return result, nil
}

// repair recounts under the raffle lock so no reservation moves the pool
// between the count and the write.
func (uc *CheckConsistencyUseCase) repair(ctx context.Context, raffleID uint) (int, error) {
	unlock := uc.locks.LockID(raffleID)
	defer unlock()

	var live int64
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.raffleRepo.GetByIDForUpdate(txCtx, raffleID); err != nil {
			return err
		}
		var err error
		live, err = uc.pool.CountByStates(txCtx, raffleID, ticketvo.StatePending, ticketvo.StatePaid)
		if err != nil {
			return err
		}
		return uc.raffleRepo.SetTicketsSold(txCtx, raffleID, int(live))
	})
	if err != nil {
		return 0, errors.Persistence("failed to repair tickets sold counter", err)
	}

	uc.logger.Infow("tickets sold counter repaired", "raffle_id", raffleID, "tickets_sold", live)
	return int(live), nil
}
