// Package http wires the gin engine: middleware, handlers and routes.
package http

import (
	"fmt"

	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/interfaces/http/routes"
	"github.com/modorifa/rifas/internal/interfaces/http/validators"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() error {
	if err := validators.Register(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.MaxMultipartMemory = c.cfg.Storage.MaxSizeBytes + 1<<20

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	api := c.engine.Group("/api")

	routes.SetupRaffleRoutes(api, &routes.RaffleRouteConfig{
		RaffleHandler:  c.hdlrs.raffleHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler: c.hdlrs.paymentHandler,
		AuthMiddleware: c.authMiddleware,
		SubmitLimiter:  c.submitLimiter,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  c.hdlrs.ticketHandler,
		AuthMiddleware: c.authMiddleware,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		AdminHandler:        c.hdlrs.adminHandler,
		ExchangeRateHandler: c.hdlrs.exchangeRateHandler,
		AuthMiddleware:      c.authMiddleware,
		LoginLimiter:        c.loginLimiter,
	})

	return nil
}
