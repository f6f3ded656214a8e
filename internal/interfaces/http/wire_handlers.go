package http

import (
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/admin"
	exchangeRateHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/exchangerate"
	"github.com/modorifa/rifas/internal/interfaces/http/handlers/health"
	paymentHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/payment"
	raffleHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/raffle"
	ticketHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/ticket"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	raffleHandler       *raffleHandlers.Handler
	paymentHandler      *paymentHandlers.Handler
	ticketHandler       *ticketHandlers.Handler
	exchangeRateHandler *exchangeRateHandlers.Handler
	adminHandler        *admin.Handler
	healthHandler       *health.Handler
}

func (c *Container) initHandlers() {
	u := c.ucs

	// Only the local store serves files through the API.
	var proofs admin.ProofOpener
	if c.infra.localProofs != nil {
		proofs = c.infra.localProofs
	}

	c.hdlrs = &allHandlers{
		raffleHandler: raffleHandlers.NewHandler(raffleHandlers.UseCases{
			Create:      u.createRaffle,
			Grow:        u.growCapacity,
			Update:      u.updateRaffle,
			Status:      u.changeStatus,
			ManualSale:  u.setManualSale,
			Get:         u.getRaffle,
			List:        u.listRaffles,
			Delete:      u.deleteRaffle,
			Draw:        u.drawRaffle,
			Consistency: u.checkConsistency,
		}, c.infra.renderer, c.log),
		paymentHandler: paymentHandlers.NewHandler(paymentHandlers.UseCases{
			Submit: u.submitPayment,
			Verify: u.verifyPayment,
			Reject: u.rejectPayment,
			Delete: u.deletePayment,
			Get:    u.getPayment,
			List:   u.listPayments,
		}, c.infra.proofs.URL, c.log),
		ticketHandler:       ticketHandlers.NewHandler(u.queryTicket, u.queryTicketsByBuyer, u.listRaffleTickets, u.changeTicketState, c.log),
		exchangeRateHandler: exchangeRateHandlers.NewHandler(u.recordExchangeRate, u.getLatestExchangeRate, c.log),
		adminHandler:        admin.NewHandler(u.login, proofs, c.log),
		healthHandler:       health.NewHandler("rifas", c.healthChecks(), c.log),
	}
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.submitLimiter = middleware.NewRateLimiter(c.infra.limiter, "submit_payment",
		c.cfg.RateLimit.SubmitPaymentLimit, c.cfg.RateLimit.SubmitPaymentWindow, c.log)
	c.loginLimiter = middleware.NewRateLimiter(c.infra.limiter, "admin_login",
		c.cfg.RateLimit.SubmitPaymentLimit, c.cfg.RateLimit.SubmitPaymentWindow, c.log)
}
