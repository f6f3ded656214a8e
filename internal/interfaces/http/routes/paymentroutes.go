package routes

import (
	"github.com/gin-gonic/gin"

	paymentHandlers "github.com/modorifa/rifas/internal/interfaces/http/handlers/payment"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *paymentHandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
	SubmitLimiter  *middleware.RateLimiter
}

// SetupPaymentRoutes configures buyer submission and payment review routes.
func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	api.POST("/raffles/:id/payments", cfg.SubmitLimiter.Limit(), cfg.PaymentHandler.SubmitPayment)

	payments := api.Group("/admin/payments")
	payments.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		payments.GET("", cfg.PaymentHandler.ListPayments)
		payments.GET("/by-number/:payment_no", cfg.PaymentHandler.GetPaymentByNumber)
		payments.GET("/:id", cfg.PaymentHandler.GetPayment)
		payments.POST("/:id/verify", cfg.PaymentHandler.VerifyPayment)
		payments.POST("/:id/reject", cfg.PaymentHandler.RejectPayment)
		payments.DELETE("/:id", cfg.PaymentHandler.DeletePayment)
	}
}
