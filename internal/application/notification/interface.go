package notification

import (
	"context"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/events"
)

// Mailer delivers buyer facing emails.
type Mailer interface {
	SendTicketsConfirmed(ctx context.Context, event payment.TicketsConfirmedEvent) error
	SendWinnerNotice(ctx context.Context, raffleName string, winner raffle.Winner) error
}

// AdminAlerter pings back-office operators about new work.
type AdminAlerter interface {
	PaymentSubmitted(ctx context.Context, event payment.PaymentSubmittedEvent) error
}

// Notifier is what use cases call after a commit. Every method returns
// immediately; delivery happens in the background.
type Notifier interface {
	PaymentSubmitted(p *payment.Payment)
	TicketsConfirmed(p *payment.Payment, rf *raffle.Raffle)
	PaymentReleased(p *payment.Payment, eventType string, released int64)
	RaffleDrawn(rf *raffle.Raffle, winners []raffle.Winner)
	Publish(event events.DomainEvent)
}
