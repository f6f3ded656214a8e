package http

import (
	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	raffleRepo       raffle.RaffleRepository
	winnerRepo       raffle.WinnerRepository
	ticketPool       ticket.Pool
	paymentRepo      payment.PaymentRepository
	exchangeRateRepo exchangerate.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		raffleRepo:       repository.NewRaffleRepository(c.db),
		winnerRepo:       repository.NewWinnerRepository(c.db),
		ticketPool:       repository.NewTicketRepository(c.db),
		paymentRepo:      repository.NewPaymentRepository(c.db),
		exchangeRateRepo: repository.NewExchangeRateRepository(c.db),
	}
}
