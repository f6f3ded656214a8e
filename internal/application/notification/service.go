// Package notification fans domain outcomes out to the event bus, email and
// the admin chat. Nothing here can fail a use case.
package notification

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/events"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/goroutine"
	"github.com/modorifa/rifas/internal/shared/logger"
)

const deliveryTimeout = 30 * time.Second

type Service struct {
	publisher events.Publisher
	mailer    Mailer
	alerter   AdminAlerter
	logger    logger.Interface

	// run launches one delivery; tests swap it for a synchronous call.
	run func(name string, fn func())
}

// NewService accepts nil collaborators; the matching channel is skipped.
func NewService(publisher events.Publisher, mailer Mailer, alerter AdminAlerter, log logger.Interface) *Service {
	s := &Service{
		publisher: publisher,
		mailer:    mailer,
		alerter:   alerter,
		logger:    log,
	}
	s.run = func(name string, fn func()) {
		goroutine.Go(log, name, fn)
	}
	return s
}

func (s *Service) deliver(name string, fn func(ctx context.Context) error, fields ...interface{}) {
	s.run(name, func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.logger.Warnw("notification delivery failed", append([]interface{}{"channel", name, "error", err}, fields...)...)
		}
	})
}

func (s *Service) Publish(event events.DomainEvent) {
	if s.publisher == nil || event == nil {
		return
	}
	s.deliver("publish", func(ctx context.Context) error {
		return s.publisher.Publish(ctx, event)
	}, "event_type", event.GetEventType(), "aggregate_id", event.GetAggregateID())
}

func (s *Service) PaymentSubmitted(p *payment.Payment) {
	event := payment.NewPaymentSubmittedEvent(p)
	s.Publish(event)
	if s.alerter != nil {
		s.deliver("admin_alert", func(ctx context.Context) error {
			return s.alerter.PaymentSubmitted(ctx, event)
		}, "payment_no", p.PaymentNo())
	}
}

func (s *Service) TicketsConfirmed(p *payment.Payment, rf *raffle.Raffle) {
	event := payment.NewTicketsConfirmedEvent(p, rf.ProductName(), rf.UnitPrice().String())
	s.Publish(event)
	if s.mailer != nil {
		s.deliver("email", func(ctx context.Context) error {
			return s.mailer.SendTicketsConfirmed(ctx, event)
		}, "payment_no", p.PaymentNo())
	}
}

func (s *Service) PaymentReleased(p *payment.Payment, eventType string, released int64) {
	s.Publish(payment.NewPaymentReleasedEvent(p, eventType, released, biztime.NowUTC()))
}

func (s *Service) RaffleDrawn(rf *raffle.Raffle, winners []raffle.Winner) {
	at := biztime.NowUTC()
	if rf.DrawnAt() != nil {
		at = *rf.DrawnAt()
	}
	s.Publish(raffle.NewRaffleDrawnEvent(rf, winners, at))

	if s.mailer == nil {
		return
	}
	for _, w := range winners {
		if w.Owner.Email == "" {
			continue
		}
		winner := w
		s.deliver("email", func(ctx context.Context) error {
			return s.mailer.SendWinnerNotice(ctx, rf.ProductName(), winner)
		}, "raffle_id", rf.ID(), "ticket_number", winner.TicketNumber)
	}
}
