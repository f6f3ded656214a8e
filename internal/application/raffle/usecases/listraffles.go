package usecases

import (
	"context"
	"strings"

	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/query"
)

type ListRafflesQuery struct {
	Status   string
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	Order    string
}

type ListRafflesResult struct {
	Raffles  []*raffle.Raffle
	Total    int64
	Page     int
	PageSize int
}

type ListRafflesUseCase struct {
	raffleRepo raffle.RaffleRepository
	logger     logger.Interface
}

func NewListRafflesUseCase(raffleRepo raffle.RaffleRepository, logger logger.Interface) *ListRafflesUseCase {
	return &ListRafflesUseCase{
		raffleRepo: raffleRepo,
		logger:     logger,
	}
}

func (uc *ListRafflesUseCase) Execute(ctx context.Context, q ListRafflesQuery) (*ListRafflesResult, error) {
	filter := raffle.RaffleFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		SortFilter: query.SortFilter{SortBy: q.OrderBy, SortOrder: q.Order},
		Search:     strings.TrimSpace(q.Search),
	}
	if q.Status != "" {
		status, err := vo.NewRaffleStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}

	raffles, total, err := uc.raffleRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list raffles", "error", err)
		return nil, errors.Persistence("failed to list raffles", err)
	}

	return &ListRafflesResult{
		Raffles:  raffles,
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
