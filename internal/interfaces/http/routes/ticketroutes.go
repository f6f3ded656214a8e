package routes

import (
	"github.com/gin-gonic/gin"

	ticketHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/ticket"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
)

// TicketRouteConfig holds dependencies for ticket routes.
type TicketRouteConfig struct {
	TicketHandler  *ticketHandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupTicketRoutes configures ticket lookups and ticket maintenance.
func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	api.GET("/raffles/:id/tickets/:number", cfg.TicketHandler.QueryTicket)
	api.GET("/tickets", cfg.TicketHandler.QueryByBuyer)

	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/raffles/:id/tickets", cfg.TicketHandler.ListRaffleTickets)
		admin.POST("/tickets/:id/void", cfg.TicketHandler.VoidTicket)
		admin.POST("/tickets/:id/restore", cfg.TicketHandler.RestoreTicket)
	}
}
