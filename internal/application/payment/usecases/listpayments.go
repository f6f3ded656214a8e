package usecases

import (
	"context"
	"strings"

	"github.com/modorifa/rifas/internal/domain/payment"
	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/query"
)

type ListPaymentsQuery struct {
	RaffleID *uint
	Status   string
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	Order    string
}

type ListPaymentsResult struct {
	Payments []*payment.Payment
	Total    int64
	Page     int
	PageSize int
}

type ListPaymentsUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, q ListPaymentsQuery) (*ListPaymentsResult, error) {
	filter := payment.PaymentFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		SortFilter: query.SortFilter{SortBy: q.OrderBy, SortOrder: q.Order},
		RaffleID:   q.RaffleID,
		Search:     strings.TrimSpace(q.Search),
	}
	if q.Status != "" {
		status, err := vo.NewPaymentStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	payments, total, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err)
		return nil, errors.Persistence("failed to list payments", err)
	}

	return &ListPaymentsResult{
		Payments: payments,
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
