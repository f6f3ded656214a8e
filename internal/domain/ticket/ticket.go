package ticket

import (
	"fmt"
	"time"

	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/shared/biztime"
)

// Ticket is one numbered slot of a raffle's pool. Claims, payment and release
// are applied by the pool in bulk; the entity only carries the admin-driven
// transitions.
type Ticket struct {
	id          uint
	raffleID    uint
	number      string
	state       vo.TicketState
	owner       *sharedvo.Buyer
	paymentID   *uint
	purchasedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTicket(raffleID uint, number string) (*Ticket, error) {
	if raffleID == 0 {
		return nil, fmt.Errorf("raffle ID is required")
	}
	if number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	now := biztime.NowUTC()
	return &Ticket{
		raffleID:  raffleID,
		number:    number,
		state:     vo.StateAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (t *Ticket) transition(next vo.TicketState) error {
	if !t.state.CanTransitionTo(next) {
		return fmt.Errorf("cannot move ticket %s from %s to %s", t.number, t.state, next)
	}
	t.state = next
	t.updatedAt = biztime.NowUTC()
	return nil
}

// Void withdraws an available ticket from sale.
func (t *Ticket) Void() error {
	return t.transition(vo.StateVoided)
}

// Restore returns a voided ticket to the available pool.
func (t *Ticket) Restore() error {
	if t.state != vo.StateVoided {
		return fmt.Errorf("cannot restore ticket %s in state %s", t.number, t.state)
	}
	return t.transition(vo.StateAvailable)
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) RaffleID() uint {
	return t.raffleID
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) State() vo.TicketState {
	return t.state
}

func (t *Ticket) Owner() *sharedvo.Buyer {
	return t.owner
}

func (t *Ticket) PaymentID() *uint {
	return t.paymentID
}

func (t *Ticket) PurchasedAt() *time.Time {
	return t.purchasedAt
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) SetID(id uint) {
	t.id = id
}

// ReconstructTicket rebuilds a ticket from persistence. It rejects rows that
// break the link invariant: a payment link exists exactly when the ticket is
// pending or paid.
func ReconstructTicket(
	id, raffleID uint,
	number string,
	state vo.TicketState,
	owner *sharedvo.Buyer,
	paymentID *uint,
	purchasedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid ticket state: %s", state)
	}
	if state.IsClaimed() != (paymentID != nil) {
		return nil, fmt.Errorf("ticket %s in state %s has inconsistent payment link", number, state)
	}
	return &Ticket{
		id:          id,
		raffleID:    raffleID,
		number:      number,
		state:       state,
		owner:       owner,
		paymentID:   paymentID,
		purchasedAt: purchasedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}
