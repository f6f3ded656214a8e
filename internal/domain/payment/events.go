package payment

import (
	"time"

	"github.com/modorifa/rifas/internal/domain/shared/events"
)

const (
	EventTypePaymentSubmitted = "payment.submitted"
	EventTypeTicketsConfirmed = "payment.tickets_confirmed"
	EventTypePaymentRejected  = "payment.rejected"
	EventTypePaymentDeleted   = "payment.deleted"
)

type PaymentSubmittedEvent struct {
	events.BaseEvent
	RaffleID  uint     `json:"raffle_id"`
	BuyerName string   `json:"buyer_name"`
	Quantity  int      `json:"quantity"`
	Amount    string   `json:"amount"`
	Method    string   `json:"method"`
	Reference string   `json:"reference,omitempty"`
	Numbers   []string `json:"numbers"`
	HasProof  bool     `json:"has_proof"`
}

func NewPaymentSubmittedEvent(p *Payment) PaymentSubmittedEvent {
	reference := ""
	if p.Reference() != nil {
		reference = *p.Reference()
	}
	return PaymentSubmittedEvent{
		BaseEvent: newBase(p, EventTypePaymentSubmitted, p.CreatedAt()),
		RaffleID:  p.RaffleID(),
		BuyerName: p.Buyer().Name,
		Quantity:  p.Quantity(),
		Amount:    p.Amount().String(),
		Method:    p.Method().String(),
		Reference: reference,
		Numbers:   p.AssignedNumbers(),
		HasProof:  p.ProofKey() != nil,
	}
}

// TicketsConfirmedEvent announces that a buyer's tickets are paid.
type TicketsConfirmedEvent struct {
	events.BaseEvent
	RaffleID   uint     `json:"raffle_id"`
	RaffleName string   `json:"raffle_name"`
	BuyerName  string   `json:"buyer_name"`
	BuyerEmail string   `json:"buyer_email"`
	Numbers    []string `json:"numbers"`
	UnitPrice  string   `json:"unit_price"`
	TotalUSD   string   `json:"total_usd"`
	TotalVES   string   `json:"total_ves"`
}

func NewTicketsConfirmedEvent(p *Payment, raffleName, unitPrice string) TicketsConfirmedEvent {
	return TicketsConfirmedEvent{
		BaseEvent:  newBase(p, EventTypeTicketsConfirmed, reviewedAt(p)),
		RaffleID:   p.RaffleID(),
		RaffleName: raffleName,
		BuyerName:  p.Buyer().Name,
		BuyerEmail: p.Buyer().Email,
		Numbers:    p.AssignedNumbers(),
		UnitPrice:  unitPrice,
		TotalUSD:   p.AmountUSD().String(),
		TotalVES:   p.AmountVES().String(),
	}
}

// PaymentReleasedEvent covers rejection and deletion, both of which return
// tickets to the pool.
type PaymentReleasedEvent struct {
	events.BaseEvent
	RaffleID uint     `json:"raffle_id"`
	Numbers  []string `json:"numbers"`
	Released int64    `json:"released"`
}

func NewPaymentReleasedEvent(p *Payment, eventType string, released int64, at time.Time) PaymentReleasedEvent {
	return PaymentReleasedEvent{
		BaseEvent: newBase(p, eventType, at),
		RaffleID:  p.RaffleID(),
		Numbers:   p.AssignedNumbers(),
		Released:  released,
	}
}

func newBase(p *Payment, eventType string, at time.Time) events.BaseEvent {
	return events.BaseEvent{
		AggregateID: p.PaymentNo(),
		EventType:   eventType,
		OccurredAt:  at,
	}
}

func reviewedAt(p *Payment) time.Time {
	if p.ReviewedAt() != nil {
		return *p.ReviewedAt()
	}
	return p.UpdatedAt()
}
