package routes

import (
	"github.com/gin-gonic/gin"

	raffleHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/raffle"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
)

// RaffleRouteConfig holds dependencies for raffle routes.
type RaffleRouteConfig struct {
	RaffleHandler  *raffleHandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupRaffleRoutes configures public raffle reads and the raffle back office.
func SetupRaffleRoutes(api *gin.RouterGroup, cfg *RaffleRouteConfig) {
	raffles := api.Group("/raffles")
	{
		raffles.GET("", cfg.RaffleHandler.ListRaffles)
		raffles.GET("/:id", cfg.RaffleHandler.GetRaffle)
	}

	admin := api.Group("/admin/raffles")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.POST("", cfg.RaffleHandler.CreateRaffle)
		admin.GET("", cfg.RaffleHandler.ListRaffles)
		admin.GET("/consistency", cfg.RaffleHandler.CheckConsistency)
		admin.GET("/:id", cfg.RaffleHandler.GetRaffle)
		admin.PATCH("/:id", cfg.RaffleHandler.UpdateRaffle)
		admin.DELETE("/:id", cfg.RaffleHandler.DeleteRaffle)
		admin.POST("/:id/capacity", cfg.RaffleHandler.GrowCapacity)
		admin.PATCH("/:id/status", cfg.RaffleHandler.ChangeStatus)
		admin.PATCH("/:id/manual-sale", cfg.RaffleHandler.SetManualSale)
		admin.POST("/:id/draw", cfg.RaffleHandler.DrawRaffle)
	}
}
