package usecases

import (
	"context"
	"strings"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

// GetPaymentQuery looks a payment up by id, or by public number when ID is zero.
type GetPaymentQuery struct {
	ID        uint
	PaymentNo string
}

type GetPaymentResult struct {
	Payment *payment.Payment
}

type GetPaymentUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewGetPaymentUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, query GetPaymentQuery) (*GetPaymentResult, error) {
	var (
		p   *payment.Payment
		err error
	)
	switch {
	case query.ID != 0:
		p, err = uc.paymentRepo.GetByID(ctx, query.ID)
	case strings.TrimSpace(query.PaymentNo) != "":
		p, err = uc.paymentRepo.GetByPaymentNo(ctx, strings.TrimSpace(query.PaymentNo))
	default:
		return nil, errors.NewValidationError("payment id or payment number is required")
	}
	if err != nil {
		return nil, errors.Persistence("failed to get payment", err)
	}
	return &GetPaymentResult{Payment: p}, nil
}
