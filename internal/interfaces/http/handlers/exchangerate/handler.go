// Package exchangerate serves the VES per USD rate used to price payments.
package exchangerate

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/exchangerate/usecases"
	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/mapper"
	"github.com/modorifa/rifas/internal/shared/utils"
)

const (
	defaultHistory = 10
	maxHistory     = 100
)

type RecordRateRequest struct {
	Value  float64 `json:"value" binding:"required,gt=0"`
	Source string  `json:"source" binding:"omitempty,max=100"`
}

type RateResponse struct {
	ID         uint      `json:"id"`
	Value      float64   `json:"value"`
	Source     string    `json:"source,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type LatestRateResponse struct {
	*RateResponse
	History []*RateResponse `json:"history,omitempty"`
}

func toRateResponse(r *exchangerate.ExchangeRate) *RateResponse {
	if r == nil {
		return nil
	}
	return &RateResponse{
		ID:         r.ID(),
		Value:      r.Value(),
		Source:     r.Source(),
		RecordedAt: r.RecordedAt(),
	}
}

type Handler struct {
	recordUC usecases.RecordExchangeRateExecutor
	latestUC usecases.GetLatestExchangeRateExecutor
	logger   logger.Interface
}

func NewHandler(recordUC usecases.RecordExchangeRateExecutor, latestUC usecases.GetLatestExchangeRateExecutor, logger logger.Interface) *Handler {
	return &Handler{
		recordUC: recordUC,
		latestUC: latestUC,
		logger:   logger,
	}
}

// RecordRate handles POST /api/admin/exchange-rates
// @Summary Record exchange rate
// @Tags Exchange Rates
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body RecordRateRequest true "VES per USD"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/exchange-rates [post]
func (h *Handler) RecordRate(c *gin.Context) {
	var req RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), usecases.RecordExchangeRateCommand{
		Value:  req.Value,
		Source: req.Source,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("exchange rate recorded via api", "value", req.Value, "admin", middleware.AdminEmail(c))
	utils.CreatedResponse(c, toRateResponse(result.Rate), "Exchange rate recorded")
}

// GetLatestRate handles GET /api/exchange-rate
// @Summary Get current exchange rate
// @Tags Exchange Rates
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /exchange-rate [get]
func (h *Handler) GetLatestRate(c *gin.Context) {
	h.latest(c, 0)
}

// GetRateHistory handles GET /api/admin/exchange-rates?limit=
// @Summary Get exchange rate history
// @Tags Exchange Rates
// @Produce json
// @Security Bearer
// @Param limit query int false "History entries (1-100)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/exchange-rates [get]
func (h *Handler) GetRateHistory(c *gin.Context) {
	limit := defaultHistory
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistory {
			utils.ErrorResponseWithError(c, errors.NewValidationError("limit must be between 1 and 100", raw))
			return
		}
		limit = n
	}
	h.latest(c, limit)
}

func (h *Handler) latest(c *gin.Context, historyLimit int) {
	result, err := h.latestUC.Execute(c.Request.Context(), usecases.GetLatestExchangeRateQuery{HistoryLimit: historyLimit})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := &LatestRateResponse{
		RateResponse: toRateResponse(result.Latest),
		History:      mapper.MapSlice(result.History, toRateResponse),
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
