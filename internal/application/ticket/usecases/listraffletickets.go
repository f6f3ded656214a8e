package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/query"
)

type ListRaffleTicketsQuery struct {
	RaffleID uint
	State    string
	// Number filters by prefix.
	Number   string
	Page     int
	PageSize int
	OrderBy  string
	Order    string
}

type ListRaffleTicketsResult struct {
	Tickets  []*ticket.Ticket
	Total    int64
	Page     int
	PageSize int
}

type ListRaffleTicketsUseCase struct {
	raffleRepo raffle.RaffleRepository
	pool       ticket.Pool
	logger     logger.Interface
}

func NewListRaffleTicketsUseCase(raffleRepo raffle.RaffleRepository, pool ticket.Pool, logger logger.Interface) *ListRaffleTicketsUseCase {
	return &ListRaffleTicketsUseCase{
		raffleRepo: raffleRepo,
		pool:       pool,
		logger:     logger,
	}
}

func (uc *ListRaffleTicketsUseCase) Execute(ctx context.Context, q ListRaffleTicketsQuery) (*ListRaffleTicketsResult, error) {
	if _, err := uc.raffleRepo.GetByID(ctx, q.RaffleID); err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}

	filter := ticket.TicketFilter{
		PageFilter: query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		SortFilter: query.SortFilter{SortBy: q.OrderBy, SortOrder: q.Order},
		RaffleID:   q.RaffleID,
		Number:     q.Number,
	}
	if q.State != "" {
		state, err := vo.NewTicketState(q.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.State = &state
	}

	tickets, total, err := uc.pool.List(ctx, filter)
	if err != nil {
		return nil, errors.Persistence("failed to list tickets", err)
	}
	return &ListRaffleTicketsResult{
		Tickets:  tickets,
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}
