package payment

import (
	"context"

	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/shared/query"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	// Update persists payment if its stored version still equals the version it
	// was loaded with. A lost race returns a conflict error.
	Update(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetByPaymentNo(ctx context.Context, paymentNo string) (*Payment, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	List(ctx context.Context, filter PaymentFilter) ([]*Payment, int64, error)
	CountByRaffle(ctx context.Context, raffleID uint, statuses ...vo.PaymentStatus) (int64, error)
	DeleteByRaffle(ctx context.Context, raffleID uint) error
	// ListProofKeysByRaffle returns the stored proof keys of a raffle's payments.
	ListProofKeysByRaffle(ctx context.Context, raffleID uint) ([]string, error)
}

type PaymentFilter struct {
	query.PageFilter
	query.SortFilter
	RaffleID *uint
	Status   *vo.PaymentStatus
	// Search matches buyer name, email, id number, reference or payment number.
	Search string
}
