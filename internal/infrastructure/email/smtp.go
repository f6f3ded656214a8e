package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/gomail.v2"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/config"
)

// SMTPMailer sends buyer facing mail in Spanish through gomail.
type SMTPMailer struct {
	config  config.EmailConfig
	baseURL string
	dialer  *gomail.Dialer
	title   cases.Caser
	printer *message.Printer

	// send is swapped in tests
	send func(m *gomail.Message) error
}

func NewSMTPMailer(cfg config.EmailConfig, baseURL string) *SMTPMailer {
	s := &SMTPMailer{
		config:  cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		title:   cases.Title(language.Spanish),
		printer: message.NewPrinter(language.Spanish),
	}
	s.send = func(m *gomail.Message) error { return s.dialer.DialAndSend(m) }
	return s
}

func (s *SMTPMailer) SendTicketsConfirmed(ctx context.Context, e payment.TicketsConfirmedEvent) error {
	if e.BuyerEmail == "" {
		return fmt.Errorf("payment %s has no buyer email", e.GetAggregateID())
	}
	subject := fmt.Sprintf("Tus boletos para %s están confirmados", e.RaffleName)
	plain, htmlBody := s.ticketsConfirmedBody(e)
	return s.sendEmail(ctx, e.BuyerEmail, subject, htmlBody, plain)
}

func (s *SMTPMailer) SendWinnerNotice(ctx context.Context, raffleName string, w raffle.Winner) error {
	subject := fmt.Sprintf("¡Ganaste en %s!", raffleName)
	plain, htmlBody := s.winnerBody(raffleName, w)
	return s.sendEmail(ctx, w.Owner.Email, subject, htmlBody, plain)
}

func (s *SMTPMailer) ticketsConfirmedBody(e payment.TicketsConfirmedEvent) (string, string) {
	name := s.title.String(e.BuyerName)
	count := s.printer.Sprintf("%d", len(e.Numbers))
	numbers := strings.Join(e.Numbers, ", ")
	lookup := fmt.Sprintf("%s/raffles/%d/tickets", s.baseURL, e.RaffleID)

	plain := fmt.Sprintf(`Hola %s,

Tu pago %s fue verificado. Estos son tus %s boletos para %s:

%s

Precio por boleto: %s
Total: %s (%s)

Puedes consultar tus boletos en %s
`, name, e.GetAggregateID(), count, e.RaffleName, numbers, e.UnitPrice, e.TotalUSD, e.TotalVES, lookup)

	htmlBody := fmt.Sprintf(`<html>
<body>
	<h2>Hola %s,</h2>
	<p>Tu pago <strong>%s</strong> fue verificado. Estos son tus %s boletos para <strong>%s</strong>:</p>
	<p style="font-size:18px">%s</p>
	<p>Precio por boleto: %s<br>Total: %s (%s)</p>
	<p><a href="%s">Consultar mis boletos</a></p>
</body>
</html>`,
		html.EscapeString(name), html.EscapeString(e.GetAggregateID()), count,
		html.EscapeString(e.RaffleName), html.EscapeString(numbers),
		html.EscapeString(e.UnitPrice), html.EscapeString(e.TotalUSD), html.EscapeString(e.TotalVES),
		html.EscapeString(lookup))

	return plain, htmlBody
}

func (s *SMTPMailer) winnerBody(raffleName string, w raffle.Winner) (string, string) {
	name := s.title.String(w.Owner.Name)
	place := s.printer.Sprintf("%d", w.Position)

	plain := fmt.Sprintf(`Hola %s,

Tu boleto %s resultó ganador del puesto %s en %s.
Nos pondremos en contacto contigo para la entrega del premio.
`, name, w.TicketNumber, place, raffleName)

	htmlBody := fmt.Sprintf(`<html>
<body>
	<h2>¡Felicidades %s!</h2>
	<p>Tu boleto <strong>%s</strong> resultó ganador del puesto %s en <strong>%s</strong>.</p>
	<p>Nos pondremos en contacto contigo para la entrega del premio.</p>
</body>
</html>`,
		html.EscapeString(name), html.EscapeString(w.TicketNumber), place, html.EscapeString(raffleName))

	return plain, htmlBody
}

func (s *SMTPMailer) sendEmail(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
