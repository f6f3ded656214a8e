package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/application/notification"
	"github.com/modorifa/rifas/internal/application/payment/proofstore"
	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type DeletePaymentCommand struct {
	PaymentID uint
}

type DeletePaymentUseCase struct {
	reviewer
}

func NewDeletePaymentUseCase(
	paymentRepo payment.PaymentRepository,
	reconciler Reconciler,
	proofs proofstore.Store,
	locks RaffleLocker,
	txManager db.Transactor,
	notifier notification.Notifier,
	logger logger.Interface,
) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{reviewer{
		paymentRepo: paymentRepo,
		reconciler:  reconciler,
		proofs:      proofs,
		locks:       locks,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}}
}

func (uc *DeletePaymentUseCase) Execute(ctx context.Context, cmd DeletePaymentCommand) error {
	out, err := uc.apply(ctx, cmd.PaymentID, reconciliation.ActionDelete, "")
	if err != nil {
		return err
	}

	uc.logger.Infow("payment deleted",
		"payment_id", cmd.PaymentID,
		"payment_no", out.Payment.PaymentNo(),
		"released", out.Released,
	)
	uc.removeProof(out.Payment)
	uc.notifier.PaymentReleased(out.Payment, payment.EventTypePaymentDeleted, out.Released)
	return nil
}
