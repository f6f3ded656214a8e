package usecases

import (
	"context"
	"net/mail"
	"strings"

	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type QueryTicketsByBuyerQuery struct {
	Email    string
	RaffleID *uint
}

type QueryTicketsByBuyerResult struct {
	Tickets []*ticket.Ticket
}

type QueryTicketsByBuyerUseCase struct {
	pool   ticket.Pool
	logger logger.Interface
}

func NewQueryTicketsByBuyerUseCase(pool ticket.Pool, logger logger.Interface) *QueryTicketsByBuyerUseCase {
	return &QueryTicketsByBuyerUseCase{
		pool:   pool,
		logger: logger,
	}
}

func (uc *QueryTicketsByBuyerUseCase) Execute(ctx context.Context, query QueryTicketsByBuyerQuery) (*QueryTicketsByBuyerResult, error) {
	email := strings.ToLower(strings.TrimSpace(query.Email))
	if email == "" {
		return nil, errors.NewValidationError("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, errors.NewValidationError("email is not valid")
	}

	tickets, err := uc.pool.ListByBuyerEmail(ctx, email, query.RaffleID)
	if err != nil {
		uc.logger.Errorw("failed to list tickets by buyer", "error", err)
		return nil, errors.Persistence("failed to list tickets", err)
	}
	return &QueryTicketsByBuyerResult{Tickets: tickets}, nil
}
