package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/admin"
	exchangeRateHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/exchangerate"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for login, exchange rates and proof files.
type AdminRouteConfig struct {
	AdminHandler        *adminHandlers.Handler
	ExchangeRateHandler *exchangeRateHandlers.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	LoginLimiter        *middleware.RateLimiter
}

// SetupAdminRoutes configures operator authentication and supporting routes.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	api.POST("/admin/login", cfg.LoginLimiter.Limit(), cfg.AdminHandler.Login)
	api.GET("/exchange-rate", cfg.ExchangeRateHandler.GetLatestRate)

	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/exchange-rates", cfg.ExchangeRateHandler.GetRateHistory)
		admin.POST("/exchange-rates", cfg.ExchangeRateHandler.RecordRate)
		admin.GET("/proofs/*path", cfg.AdminHandler.DownloadProof)
	}
}
