package raffle

import (
	"context"

	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/shared/query"
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle *Raffle) error
	// Update persists descriptive and status fields with an optimistic version
	// check. It never writes tickets_sold.
	Update(ctx context.Context, raffle *Raffle) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Raffle, error)
	// GetByIDForUpdate loads the raffle holding a row lock until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint) (*Raffle, error)
	List(ctx context.Context, filter RaffleFilter) ([]*Raffle, int64, error)

	// IncrementTicketsSold adds n if the result stays within total_tickets and
	// reports whether the row was updated.
	IncrementTicketsSold(ctx context.Context, id uint, n int) (bool, error)
	// DecrementTicketsSold subtracts n, flooring the counter at zero.
	DecrementTicketsSold(ctx context.Context, id uint, n int) error
	SetTicketsSold(ctx context.Context, id uint, n int) error
	TicketsSoldCounters(ctx context.Context) (map[uint]int, error)
}

type RaffleFilter struct {
	query.PageFilter
	query.SortFilter
	Status *vo.RaffleStatus
	Search string
}

type WinnerRepository interface {
	SaveAll(ctx context.Context, winners []Winner) error
	ListByRaffle(ctx context.Context, raffleID uint) ([]Winner, error)
	DeleteByRaffle(ctx context.Context, raffleID uint) error
}
