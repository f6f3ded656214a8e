// Package telegram posts admin alerts to Telegram chats.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/config"
	"github.com/modorifa/rifas/internal/shared/logger"
)

const maxRetryAfter = 30 * time.Second

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AdminAlerter tells operators that a payment is waiting for review.
type AdminAlerter struct {
	bot     sender
	chatIDs []int64
	baseURL string
	logger  logger.Interface
}

func NewAdminAlerter(cfg config.TelegramConfig, baseURL string, log logger.Interface) (*AdminAlerter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", toAPIError(err))
	}
	log.Infow("telegram bot authorized", "username", bot.Self.UserName)
	return newAdminAlerter(bot, cfg.AdminChatIDs, baseURL, log), nil
}

func newAdminAlerter(bot sender, chatIDs []int64, baseURL string, log logger.Interface) *AdminAlerter {
	return &AdminAlerter{
		bot:     bot,
		chatIDs: chatIDs,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

func (a *AdminAlerter) PaymentSubmitted(ctx context.Context, e payment.PaymentSubmittedEvent) error {
	text := a.formatPaymentSubmitted(e)

	var firstErr error
	for _, chatID := range a.chatIDs {
		for _, chunk := range chunkMessage(text, maxMessageLength) {
			if err := a.send(ctx, chatID, chunk); err != nil {
				a.logger.Warnw("failed to send telegram alert",
					"chat_id", chatID,
					"payment_no", e.GetAggregateID(),
					"bot_blocked", IsBotBlocked(err),
					"error", err,
				)
				if firstErr == nil {
					firstErr = err
				}
				break
			}
		}
	}
	return firstErr
}

// send retries once when Telegram asks to back off.
func (a *AdminAlerter) send(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	_, err := a.bot.Send(msg)
	if err == nil {
		return nil
	}
	err = toAPIError(err)
	apiErr, ok := err.(*APIError)
	if !ok || isNonRetryable(err) || apiErr.RetryAfter <= 0 {
		return err
	}

	wait := min(time.Duration(apiErr.RetryAfter)*time.Second, maxRetryAfter)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	if _, err := a.bot.Send(msg); err != nil {
		return toAPIError(err)
	}
	return nil
}

func (a *AdminAlerter) formatPaymentSubmitted(e payment.PaymentSubmittedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Nuevo pago por verificar*\n\n")
	fmt.Fprintf(&b, "Pago: `%s`\n", e.GetAggregateID())
	fmt.Fprintf(&b, "Comprador: %s\n", escapeMarkdown(e.BuyerName))
	fmt.Fprintf(&b, "Boletos: %d\n", e.Quantity)
	fmt.Fprintf(&b, "Monto: %s\n", escapeMarkdown(e.Amount))
	fmt.Fprintf(&b, "Método: %s\n", escapeMarkdown(e.Method))
	if e.Reference != "" {
		fmt.Fprintf(&b, "Referencia: %s\n", escapeMarkdown(e.Reference))
	}
	if e.HasProof {
		b.WriteString("Comprobante adjunto\n")
	}
	fmt.Fprintf(&b, "Fecha: %s\n", biztime.FormatInBizTimezone(e.GetOccurredAt(), "02/01/2006 15:04"))
	if len(e.Numbers) > 0 {
		fmt.Fprintf(&b, "\nNúmeros: %s\n", strings.Join(e.Numbers, ", "))
	}
	if a.baseURL != "" {
		fmt.Fprintf(&b, "\n%s/admin/payments?raffle_id=%d\n", a.baseURL, e.RaffleID)
	}
	return b.String()
}
