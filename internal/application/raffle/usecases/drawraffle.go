package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type DrawTier struct {
	Tier  string
	Count int
}

type DrawRaffleCommand struct {
	RaffleID uint
	// Tiers defaults to one first place winner when empty.
	Tiers []DrawTier
}

type DrawRaffleResult struct {
	Raffle  *raffle.Raffle
	Winners []raffle.Winner
}

type DrawRaffleUseCase struct {
	raffleRepo raffle.RaffleRepository
	winnerRepo raffle.WinnerRepository
	pool       ticket.Pool
	selector   WinnerSelector
	locks      RaffleLocker
	txManager  db.Transactor
	notifier   notification.Notifier
	logger     logger.Interface
}

func NewDrawRaffleUseCase(
	raffleRepo raffle.RaffleRepository,
	winnerRepo raffle.WinnerRepository,
	pool ticket.Pool,
	selector WinnerSelector,
	locks RaffleLocker,
	txManager db.Transactor,
	notifier notification.Notifier,
	logger logger.Interface,
) *DrawRaffleUseCase {
	return &DrawRaffleUseCase{
		raffleRepo: raffleRepo,
		winnerRepo: winnerRepo,
		pool:       pool,
		selector:   selector,
		locks:      locks,
		txManager:  txManager,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *DrawRaffleUseCase) Execute(ctx context.Context, cmd DrawRaffleCommand) (*DrawRaffleResult, error) {
	tiers, err := toTierRequests(cmd.Tiers)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.LockID(cmd.RaffleID)
	defer unlock()

	var (
		rf      *raffle.Raffle
		winners []raffle.Winner
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		rf, err = uc.raffleRepo.GetByIDForUpdate(txCtx, cmd.RaffleID)
		if err != nil {
			return err
		}
		if rf.Status().IsDrawn() {
			return errors.NewAlreadyDrawnError("raffle already drawn")
		}
		if rf.TicketsSold() == 0 {
			return errors.NewNoPaidTicketsError("raffle has no sold tickets")
		}

		paid, err := uc.pool.ListPaid(txCtx, rf.ID())
		if err != nil {
			return err
		}
		if len(paid) == 0 {
			return errors.NewNoPaidTicketsError("raffle has no paid tickets")
		}

		now := biztime.NowUTC()
		winners = uc.selector.Select(paid, tiers, now)
		if err := rf.MarkDrawn(now); err != nil {
			return errors.NewAlreadyDrawnError(err.Error())
		}
		if err := uc.raffleRepo.Update(txCtx, rf); err != nil {
			return err
		}
		return uc.winnerRepo.SaveAll(txCtx, winners)
	})
	if err != nil {
		uc.logger.Warnw("raffle draw failed", "error", err, "raffle_id", cmd.RaffleID)
		return nil, errors.Persistence("failed to draw raffle", err)
	}

	uc.logger.Infow("raffle drawn",
		"raffle_id", rf.ID(),
		"winners", len(winners),
	)
	uc.notifier.RaffleDrawn(rf, winners)

	return &DrawRaffleResult{Raffle: rf, Winners: winners}, nil
}

func toTierRequests(tiers []DrawTier) ([]raffle.TierRequest, error) {
	if len(tiers) == 0 {
		return raffle.DefaultTiers(), nil
	}
	out := make([]raffle.TierRequest, 0, len(tiers))
	for _, t := range tiers {
		tier := vo.NewPrizeTier(t.Tier)
		if tier == "" {
			return nil, errors.NewValidationError("tier name is required")
		}
		if t.Count < 1 {
			return nil, errors.NewValidationError("tier count must be at least 1", tier.String())
		}
		out = append(out, raffle.TierRequest{Tier: tier, Count: t.Count})
	}
	return out, nil
}
