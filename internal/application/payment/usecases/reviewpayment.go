package usecases

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type ReviewPaymentCommand struct {
	PaymentID uint
	Notes     string
}

type ReviewPaymentResult struct {
	Payment  *payment.Payment
	Released int64
}

// reviewer runs one reconciliation action for the verify, reject and delete
// use cases.
type reviewer struct {
	paymentRepo payment.PaymentRepository
	raffleRepo  raffle.RaffleRepository
	reconciler  Reconciler
	proofs      proofstore.Store
	locks       RaffleLocker
	txManager   db.Transactor
	notifier    notification.Notifier
	sanitizer   TextSanitizer
	logger      logger.Interface
}

func (r *reviewer) apply(ctx context.Context, paymentID uint, action reconciliation.Action, notes string) (*reconciliation.Outcome, error) {
	if paymentID == 0 {
		return nil, errors.NewValidationError("payment id is required")
	}
	current, err := r.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, errors.Persistence("failed to get payment", err)
	}
	if r.sanitizer != nil {
		notes = r.sanitizer.SanitizePlain(notes)
	}

	unlock := r.locks.LockID(current.RaffleID())
	defer unlock()

	var out *reconciliation.Outcome
	err = r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		// Reload inside the transaction so the status check and the version
		// used by the update come from the same snapshot.
		p, err := r.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			return err
		}
		out, err = r.reconciler.Apply(txCtx, p, action, notes)
		return err
	})
	if err != nil {
		r.logger.Warnw("payment reconciliation failed",
			"error", err,
			"payment_id", paymentID,
			"action", string(action),
		)
		return nil, errors.Persistence("failed to "+string(action)+" payment", err)
	}
	return out, nil
}

// removeProof deletes the proof artifact of a payment that no longer needs it.
func (r *reviewer) removeProof(p *payment.Payment) {
	if p.ProofKey() == nil || r.proofs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.proofs.Delete(ctx, *p.ProofKey()); err != nil {
		r.logger.Warnw("failed to remove proof of payment", "error", err, "payment_no", p.PaymentNo())
	}
}

type VerifyPaymentUseCase struct {
	reviewer
}

func NewVerifyPaymentUseCase(
	paymentRepo payment.PaymentRepository,
	raffleRepo raffle.RaffleRepository,
	reconciler Reconciler,
	locks RaffleLocker,
	txManager db.Transactor,
	notifier notification.Notifier,
	sanitizer TextSanitizer,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{reviewer{
		paymentRepo: paymentRepo,
		raffleRepo:  raffleRepo,
		reconciler:  reconciler,
		locks:       locks,
		txManager:   txManager,
		notifier:    notifier,
		sanitizer:   sanitizer,
		logger:      logger,
	}}
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd ReviewPaymentCommand) (*ReviewPaymentResult, error) {
	out, err := uc.apply(ctx, cmd.PaymentID, reconciliation.ActionVerify, cmd.Notes)
	if err != nil {
		return nil, err
	}
	p := out.Payment

	rf, err := uc.raffleRepo.GetByID(ctx, p.RaffleID())
	if err != nil {
		uc.logger.Warnw("verified payment but could not load raffle for notification",
			"error", err, "payment_no", p.PaymentNo())
	} else {
		uc.notifier.TicketsConfirmed(p, rf)
	}

	return &ReviewPaymentResult{Payment: p}, nil
}

type RejectPaymentUseCase struct {
	reviewer
}

func NewRejectPaymentUseCase(
	paymentRepo payment.PaymentRepository,
	reconciler Reconciler,
	proofs proofstore.Store,
	locks RaffleLocker,
	txManager db.Transactor,
	notifier notification.Notifier,
	sanitizer TextSanitizer,
	logger logger.Interface,
) *RejectPaymentUseCase {
	return &RejectPaymentUseCase{reviewer{
		paymentRepo: paymentRepo,
		reconciler:  reconciler,
		proofs:      proofs,
		locks:       locks,
		txManager:   txManager,
		notifier:    notifier,
		sanitizer:   sanitizer,
		logger:      logger,
	}}
}

func (uc *RejectPaymentUseCase) Execute(ctx context.Context, cmd ReviewPaymentCommand) (*ReviewPaymentResult, error) {
	out, err := uc.apply(ctx, cmd.PaymentID, reconciliation.ActionReject, cmd.Notes)
	if err != nil {
		return nil, err
	}

	uc.removeProof(out.Payment)
	uc.notifier.PaymentReleased(out.Payment, payment.EventTypePaymentRejected, out.Released)

	return &ReviewPaymentResult{Payment: out.Payment, Released: out.Released}, nil
}
