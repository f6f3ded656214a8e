package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/domain/payment"
)

type SubmitPaymentExecutor interface {
	Execute(ctx context.Context, cmd SubmitPaymentCommand) (*SubmitPaymentResult, error)
}

type VerifyPaymentExecutor interface {
	Execute(ctx context.Context, cmd ReviewPaymentCommand) (*ReviewPaymentResult, error)
}

type RejectPaymentExecutor interface {
	Execute(ctx context.Context, cmd ReviewPaymentCommand) (*ReviewPaymentResult, error)
}

type DeletePaymentExecutor interface {
	Execute(ctx context.Context, cmd DeletePaymentCommand) error
}

type GetPaymentExecutor interface {
	Execute(ctx context.Context, query GetPaymentQuery) (*GetPaymentResult, error)
}

type ListPaymentsExecutor interface {
	Execute(ctx context.Context, query ListPaymentsQuery) (*ListPaymentsResult, error)
}

// RaffleLocker serializes same-raffle work inside this process.
type RaffleLocker interface {
	LockID(id uint) (unlock func())
}

type RateResolver interface {
	Resolve(ctx context.Context, preferred float64) (float64, error)
}

type Reserver interface {
	Reserve(ctx context.Context, req reservation.Request) (*reservation.Claim, error)
}

type Reconciler interface {
	Apply(ctx context.Context, p *payment.Payment, action reconciliation.Action, notes string) (*reconciliation.Outcome, error)
}

type TextSanitizer interface {
	SanitizePlain(text string) string
}
