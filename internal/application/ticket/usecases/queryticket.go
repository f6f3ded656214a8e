package usecases

import (
	"context"
	"strconv"
	"strings"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type QueryTicketQuery struct {
	RaffleID uint
	// Number may omit leading zeros; "7" finds "0007" in a 4 digit raffle.
	Number string
}

type QueryTicketResult struct {
	Ticket *ticket.Ticket
}

type QueryTicketUseCase struct {
	raffleRepo raffle.RaffleRepository
	pool       ticket.Pool
	logger     logger.Interface
}

func NewQueryTicketUseCase(raffleRepo raffle.RaffleRepository, pool ticket.Pool, logger logger.Interface) *QueryTicketUseCase {
	return &QueryTicketUseCase{
		raffleRepo: raffleRepo,
		pool:       pool,
		logger:     logger,
	}
}

func (uc *QueryTicketUseCase) Execute(ctx context.Context, query QueryTicketQuery) (*QueryTicketResult, error) {
	raw := strings.TrimSpace(query.Number)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, errors.NewValidationError("ticket number must be numeric", raw)
	}

	rf, err := uc.raffleRepo.GetByID(ctx, query.RaffleID)
	if err != nil {
		return nil, errors.Persistence("failed to get raffle", err)
	}

	t, err := uc.pool.GetByNumber(ctx, rf.ID(), rf.FormatNumber(n))
	if err != nil {
		return nil, errors.Persistence("failed to get ticket", err)
	}
	return &QueryTicketResult{Ticket: t}, nil
}
