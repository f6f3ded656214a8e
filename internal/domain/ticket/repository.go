package ticket

import (
	"context"
	"time"

	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/shared/query"
)

// Pool is the ticket inventory of all raffles. Every state change is a single
// conditional UPDATE so that concurrent callers can never move the same row
// twice; callers compare the returned row counts with what they asked for.
type Pool interface {
	// Initialize inserts available tickets numbered [from, to) with the given width.
	Initialize(ctx context.Context, raffleID uint, from, to, width int) error

	// Claim moves the given available tickets to pending for paymentID.
	// Tickets that are no longer available are skipped.
	Claim(ctx context.Context, raffleID uint, ticketIDs []uint, paymentID uint, owner sharedvo.Buyer, at time.Time) (int64, error)
	// MarkPaid moves pending tickets linked to paymentID to paid.
	MarkPaid(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error)
	// Release returns pending or paid tickets linked to paymentID to available.
	Release(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error)
	// TransitionState applies an admin transition on one ticket if it is still in from.
	TransitionState(ctx context.Context, ticketID uint, from, to vo.TicketState) (bool, error)

	CountByStates(ctx context.Context, raffleID uint, states ...vo.TicketState) (int64, error)
	CountClaimedByRaffle(ctx context.Context) (map[uint]int64, error)
	ListAvailableIDs(ctx context.Context, raffleID uint) ([]uint, error)
	NumbersByIDs(ctx context.Context, ticketIDs []uint) ([]string, error)

	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, raffleID uint, number string) (*Ticket, error)
	ListByBuyerEmail(ctx context.Context, email string, raffleID *uint) ([]*Ticket, error)
	ListPaid(ctx context.Context, raffleID uint) ([]*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	DeleteByRaffle(ctx context.Context, raffleID uint) error
}

type TicketFilter struct {
	query.PageFilter
	query.SortFilter
	RaffleID uint
	State    *vo.TicketState
	Number   string
}
