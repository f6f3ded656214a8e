package http

import (
	adminUsecases "github.com/modorifa/rifas/internal/application/admin/usecases"
	exchangeRateUsecases "github.com/modorifa/rifas/internal/application/exchangerate/usecases"
	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/application/payment/reservation"
	paymentUsecases "github.com/modorifa/rifas/internal/application/payment/usecases"
	"github.com/modorifa/rifas/internal/application/raffle/draw"
	raffleUsecases "github.com/modorifa/rifas/internal/application/raffle/usecases"
	ticketUsecases "github.com/modorifa/rifas/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Raffle
	createRaffle     *raffleUsecases.CreateRaffleUseCase
	growCapacity     *raffleUsecases.GrowRaffleCapacityUseCase
	updateRaffle     *raffleUsecases.UpdateRaffleUseCase
	changeStatus     *raffleUsecases.ChangeRaffleStatusUseCase
	setManualSale    *raffleUsecases.SetManualSaleUseCase
	getRaffle        *raffleUsecases.GetRaffleUseCase
	listRaffles      *raffleUsecases.ListRafflesUseCase
	deleteRaffle     *raffleUsecases.DeleteRaffleUseCase
	drawRaffle       *raffleUsecases.DrawRaffleUseCase
	checkConsistency *raffleUsecases.CheckConsistencyUseCase

	// Payment
	submitPayment *paymentUsecases.SubmitPaymentUseCase
	verifyPayment *paymentUsecases.VerifyPaymentUseCase
	rejectPayment *paymentUsecases.RejectPaymentUseCase
	deletePayment *paymentUsecases.DeletePaymentUseCase
	getPayment    *paymentUsecases.GetPaymentUseCase
	listPayments  *paymentUsecases.ListPaymentsUseCase

	// Ticket
	queryTicket         *ticketUsecases.QueryTicketUseCase
	queryTicketsByBuyer *ticketUsecases.QueryTicketsByBuyerUseCase
	listRaffleTickets   *ticketUsecases.ListRaffleTicketsUseCase
	changeTicketState   *ticketUsecases.ChangeTicketStateUseCase

	// Exchange rate
	recordExchangeRate    *exchangeRateUsecases.RecordExchangeRateUseCase
	getLatestExchangeRate *exchangeRateUsecases.GetLatestExchangeRateUseCase

	// Admin
	login *adminUsecases.LoginUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log

	engine := reservation.NewEngine(r.raffleRepo, r.ticketPool, c.cfg.Raffle.ReservationMaxAttempts, log.Named("reservation"))
	reconciler := reconciliation.NewReconciler(r.raffleRepo, r.ticketPool, r.paymentRepo, log.Named("reconciliation"))
	rates := exchangeRateUsecases.NewRateResolver(r.exchangeRateRepo)
	policy := paymentUsecases.ProofPolicy{
		MaxSizeBytes: c.cfg.Storage.MaxSizeBytes,
		AllowedMIME:  c.cfg.Storage.AllowedMIME,
	}

	c.ucs = &allUseCases{
		createRaffle:     raffleUsecases.NewCreateRaffleUseCase(r.raffleRepo, r.ticketPool, c.txManager, log),
		growCapacity:     raffleUsecases.NewGrowRaffleCapacityUseCase(r.raffleRepo, r.ticketPool, c.locks, c.txManager, log),
		updateRaffle:     raffleUsecases.NewUpdateRaffleUseCase(r.raffleRepo, log),
		changeStatus:     raffleUsecases.NewChangeRaffleStatusUseCase(r.raffleRepo, log),
		setManualSale:    raffleUsecases.NewSetManualSaleUseCase(r.raffleRepo, log),
		getRaffle:        raffleUsecases.NewGetRaffleUseCase(r.raffleRepo, r.winnerRepo, log),
		listRaffles:      raffleUsecases.NewListRafflesUseCase(r.raffleRepo, log),
		deleteRaffle:     raffleUsecases.NewDeleteRaffleUseCase(r.raffleRepo, r.winnerRepo, r.paymentRepo, r.ticketPool, c.infra.proofs, c.locks, c.txManager, log),
		drawRaffle:       raffleUsecases.NewDrawRaffleUseCase(r.raffleRepo, r.winnerRepo, r.ticketPool, draw.NewSelector(), c.locks, c.txManager, c.notifier, log),
		checkConsistency: raffleUsecases.NewCheckConsistencyUseCase(r.raffleRepo, r.ticketPool, c.locks, c.txManager, log),

		submitPayment: paymentUsecases.NewSubmitPaymentUseCase(
			r.raffleRepo, r.paymentRepo, engine, rates, c.infra.proofs, c.infra.paymentNos,
			c.locks, c.txManager, c.notifier, policy, log,
		),
		verifyPayment: paymentUsecases.NewVerifyPaymentUseCase(r.paymentRepo, r.raffleRepo, reconciler, c.locks, c.txManager, c.notifier, c.infra.renderer, log),
		rejectPayment: paymentUsecases.NewRejectPaymentUseCase(r.paymentRepo, reconciler, c.infra.proofs, c.locks, c.txManager, c.notifier, c.infra.renderer, log),
		deletePayment: paymentUsecases.NewDeletePaymentUseCase(r.paymentRepo, reconciler, c.infra.proofs, c.locks, c.txManager, c.notifier, log),
		getPayment:    paymentUsecases.NewGetPaymentUseCase(r.paymentRepo, log),
		listPayments:  paymentUsecases.NewListPaymentsUseCase(r.paymentRepo, log),

		queryTicket:         ticketUsecases.NewQueryTicketUseCase(r.raffleRepo, r.ticketPool, log),
		queryTicketsByBuyer: ticketUsecases.NewQueryTicketsByBuyerUseCase(r.ticketPool, log),
		listRaffleTickets:   ticketUsecases.NewListRaffleTicketsUseCase(r.raffleRepo, r.ticketPool, log),
		changeTicketState:   ticketUsecases.NewChangeTicketStateUseCase(r.ticketPool, c.locks, c.notifier, log),

		recordExchangeRate:    exchangeRateUsecases.NewRecordExchangeRateUseCase(r.exchangeRateRepo, log),
		getLatestExchangeRate: exchangeRateUsecases.NewGetLatestExchangeRateUseCase(r.exchangeRateRepo, log),

		login: adminUsecases.NewLoginUseCase(c.cfg.Auth.Admins, c.infra.hasher, c.jwtSvc, log),
	}
}
