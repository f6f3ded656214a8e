package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/domain/payment"
	paymentvo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type DeleteRaffleCommand struct {
	RaffleID uint
}

// DeleteRaffleUseCase removes a raffle with its tickets, winners and payments.
// While the raffle is still selling, payments that hold tickets block the
// deletion. Proof files of the removed payments are deleted after commit.
type DeleteRaffleUseCase struct {
	raffleRepo  raffle.RaffleRepository
	winnerRepo  raffle.WinnerRepository
	paymentRepo payment.PaymentRepository
	pool        ticket.Pool
	proofs      proofstore.Store
	locks       RaffleLocker
	txManager   db.Transactor
	logger      logger.Interface
}

func NewDeleteRaffleUseCase(
	raffleRepo raffle.RaffleRepository,
	winnerRepo raffle.WinnerRepository,
	paymentRepo payment.PaymentRepository,
	pool ticket.Pool,
	proofs proofstore.Store,
	locks RaffleLocker,
	txManager db.Transactor,
	logger logger.Interface,
) *DeleteRaffleUseCase {
	return &DeleteRaffleUseCase{
		raffleRepo:  raffleRepo,
		winnerRepo:  winnerRepo,
		paymentRepo: paymentRepo,
		pool:        pool,
		proofs:      proofs,
		locks:       locks,
		txManager:   txManager,
		logger:      logger,
	}
}

func (uc *DeleteRaffleUseCase) Execute(ctx context.Context, cmd DeleteRaffleCommand) error {
	unlock := uc.locks.LockID(cmd.RaffleID)
	defer unlock()

	var proofKeys []string
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		rf, err := uc.raffleRepo.GetByIDForUpdate(txCtx, cmd.RaffleID)
		if err != nil {
			return err
		}

		closed := rf.Status().IsDrawn() || rf.Status() == vo.StatusFinished
		if !closed {
			live, err := uc.paymentRepo.CountByRaffle(txCtx, rf.ID(),
				paymentvo.PaymentStatusPending, paymentvo.PaymentStatusVerified)
			if err != nil {
				return err
			}
			if live > 0 {
				return errors.NewConflictError("raffle has payments holding tickets",
					fmt.Sprintf("%d live payments", live))
			}
		}

		proofKeys, err = uc.paymentRepo.ListProofKeysByRaffle(txCtx, rf.ID())
		if err != nil {
			return err
		}
		if err := uc.paymentRepo.DeleteByRaffle(txCtx, rf.ID()); err != nil {
			return err
		}
		if err := uc.winnerRepo.DeleteByRaffle(txCtx, rf.ID()); err != nil {
			return err
		}
		if err := uc.pool.DeleteByRaffle(txCtx, rf.ID()); err != nil {
			return err
		}
		return uc.raffleRepo.Delete(txCtx, rf.ID())
	})
	if err != nil {
		uc.logger.Warnw("failed to delete raffle", "error", err, "raffle_id", cmd.RaffleID)
		return errors.Persistence("failed to delete raffle", err)
	}

	uc.removeProofs(cmd.RaffleID, proofKeys)
	uc.logger.Infow("raffle deleted", "raffle_id", cmd.RaffleID, "proofs", len(proofKeys))
	return nil
}

func (uc *DeleteRaffleUseCase) removeProofs(raffleID uint, keys []string) {
	if uc.proofs == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := uc.proofs.Delete(ctx, key); err != nil {
			uc.logger.Warnw("failed to remove proof of payment", "error", err, "raffle_id", raffleID, "key", key)
		}
	}
}
