package email

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/events"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/shared/config"
)

func newTestMailer() (*SMTPMailer, *[]*gomail.Message) {
	sent := []*gomail.Message{}
	m := NewSMTPMailer(config.EmailConfig{
		SMTPHost:    "localhost",
		SMTPPort:    1025,
		FromAddress: "rifas@example.com",
		FromName:    "Rifas",
	}, "https://rifas.example.com/")
	m.send = func(msg *gomail.Message) error {
		sent = append(sent, msg)
		return nil
	}
	return m, &sent
}

func confirmedEvent() payment.TicketsConfirmedEvent {
	return payment.TicketsConfirmedEvent{
		BaseEvent:  events.BaseEvent{AggregateID: "RF000001", EventType: payment.EventTypeTicketsConfirmed},
		RaffleID:   3,
		RaffleName: "Moto <Bera>",
		BuyerName:  "maria perez",
		BuyerEmail: "maria@example.com",
		Numbers:    []string{"0007", "0042"},
		UnitPrice:  "5.00 USD",
		TotalUSD:   "10.00 USD",
		TotalVES:   "400.00 VES",
	}
}

func TestSendTicketsConfirmed(t *testing.T) {
	mailer, sent := newTestMailer()

	require.NoError(t, mailer.SendTicketsConfirmed(context.Background(), confirmedEvent()))
	require.Len(t, *sent, 1)
	msg := (*sent)[0]
	assert.Equal(t, []string{"maria@example.com"}, msg.GetHeader("To"))
	assert.Len(t, msg.GetHeader("Subject"), 1)
}

func TestTicketsConfirmedBody(t *testing.T) {
	mailer, _ := newTestMailer()

	plain, htmlBody := mailer.ticketsConfirmedBody(confirmedEvent())

	assert.Contains(t, plain, "Hola Maria Perez,")
	assert.Contains(t, plain, "0007, 0042")
	assert.Contains(t, plain, "https://rifas.example.com/raffles/3/tickets")
	assert.Contains(t, plain, "400.00 VES")
	assert.Contains(t, htmlBody, "Moto &lt;Bera&gt;")
	assert.NotContains(t, htmlBody, "<Bera>")
}

func TestSendTicketsConfirmed_Errors(t *testing.T) {
	mailer, _ := newTestMailer()

	e := confirmedEvent()
	e.BuyerEmail = ""
	assert.Error(t, mailer.SendTicketsConfirmed(context.Background(), e))

	mailer.send = func(*gomail.Message) error { return fmt.Errorf("connection refused") }
	assert.Error(t, mailer.SendTicketsConfirmed(context.Background(), confirmedEvent()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, mailer.SendTicketsConfirmed(ctx, confirmedEvent()), context.Canceled)
}

func TestSendWinnerNotice(t *testing.T) {
	mailer, sent := newTestMailer()
	w := raffle.Winner{Position: 1, TicketNumber: "0042", Owner: sharedvo.Buyer{Name: "luis", Email: "luis@example.com"}}

	require.NoError(t, mailer.SendWinnerNotice(context.Background(), "Moto", w))
	require.Len(t, *sent, 1)
	assert.Equal(t, []string{"luis@example.com"}, (*sent)[0].GetHeader("To"))

	plain, _ := mailer.winnerBody("Moto", w)
	assert.Contains(t, plain, "Hola Luis,")
	assert.Contains(t, plain, "boleto 0042")
}

func TestNewSMTPMailer_DefaultSenderDialsServer(t *testing.T) {
	m := NewSMTPMailer(config.EmailConfig{
		SMTPHost:    "127.0.0.1",
		SMTPPort:    1,
		FromAddress: "rifas@example.com",
	}, "")
	require.NotNil(t, m.send)

	msg := gomail.NewMessage()
	msg.SetHeader("From", "rifas@example.com")
	msg.SetHeader("To", "maria@example.com")
	msg.SetBody("text/plain", "hola")

	assert.Error(t, m.send(msg))
}
