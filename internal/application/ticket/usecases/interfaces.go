package usecases

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/shared/events"
)

type QueryTicketExecutor interface {
	Execute(ctx context.Context, query QueryTicketQuery) (*QueryTicketResult, error)
}

type QueryTicketsByBuyerExecutor interface {
	Execute(ctx context.Context, query QueryTicketsByBuyerQuery) (*QueryTicketsByBuyerResult, error)
}

type ListRaffleTicketsExecutor interface {
	Execute(ctx context.Context, query ListRaffleTicketsQuery) (*ListRaffleTicketsResult, error)
}

type ChangeTicketStateExecutor interface {
	Execute(ctx context.Context, cmd ChangeTicketStateCommand) (*ChangeTicketStateResult, error)
}

type RaffleLocker interface {
	LockID(id uint) (unlock func())
}

// EventPublisher hands events to the background notifier.
type EventPublisher interface {
	Publish(event events.DomainEvent)
}
