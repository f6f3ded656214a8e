// Package raffle serves raffle catalogue and lifecycle endpoints.
package raffle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/raffle/dto"
	"github.com/modorifa/rifas/internal/application/raffle/usecases"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type Handler struct {
	createUC      usecases.CreateRaffleExecutor
	growUC        usecases.GrowRaffleCapacityExecutor
	updateUC      usecases.UpdateRaffleExecutor
	statusUC      usecases.ChangeRaffleStatusExecutor
	manualSaleUC  usecases.SetManualSaleExecutor
	getUC         usecases.GetRaffleExecutor
	listUC        usecases.ListRafflesExecutor
	deleteUC      usecases.DeleteRaffleExecutor
	drawUC        usecases.DrawRaffleExecutor
	consistencyUC usecases.CheckConsistencyExecutor
	markdown      dto.MarkdownRenderer
	logger        logger.Interface
}

// UseCases groups the executors the handler dispatches to.
type UseCases struct {
	Create      usecases.CreateRaffleExecutor
	Grow        usecases.GrowRaffleCapacityExecutor
	Update      usecases.UpdateRaffleExecutor
	Status      usecases.ChangeRaffleStatusExecutor
	ManualSale  usecases.SetManualSaleExecutor
	Get         usecases.GetRaffleExecutor
	List        usecases.ListRafflesExecutor
	Delete      usecases.DeleteRaffleExecutor
	Draw        usecases.DrawRaffleExecutor
	Consistency usecases.CheckConsistencyExecutor
}

func NewHandler(ucs UseCases, markdown dto.MarkdownRenderer, logger logger.Interface) *Handler {
	return &Handler{
		createUC:      ucs.Create,
		growUC:        ucs.Grow,
		updateUC:      ucs.Update,
		statusUC:      ucs.Status,
		manualSaleUC:  ucs.ManualSale,
		getUC:         ucs.Get,
		listUC:        ucs.List,
		deleteUC:      ucs.Delete,
		drawUC:        ucs.Draw,
		consistencyUC: ucs.Consistency,
		markdown:      markdown,
		logger:        logger,
	}
}

// CreateRaffle handles POST /api/admin/raffles
// @Summary Create raffle
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateRaffleRequest true "Raffle details"
// @Success 201 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/raffles [post]
func (h *Handler) CreateRaffle(c *gin.Context) {
	var req CreateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create raffle", "error", err)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("raffle created via api", "raffle_id", result.Raffle.ID(), "admin", middleware.AdminEmail(c))
	utils.CreatedResponse(c, dto.ToRaffleDTO(result.Raffle, h.markdown), "Raffle created successfully")
}

// GetRaffle handles GET /api/raffles/:id
// @Summary Get raffle
// @Description Winners are included once the raffle is drawn
// @Tags Raffles
// @Produce json
// @Param id path int true "Raffle ID"
// @Success 200 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /raffles/{id} [get]
func (h *Handler) GetRaffle(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetRaffleQuery{RaffleID: raffleID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := dto.ToRaffleDTO(result.Raffle, h.markdown)
	if len(result.Winners) > 0 {
		out.Winners = dto.ToWinnerDTOList(result.Winners)
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

// ListRaffles handles GET /api/raffles
// @Summary List raffles
// @Tags Raffles
// @Produce json
// @Param status query string false "Raffle status"
// @Param search query string false "Product name search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param order_by query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /raffles [get]
func (h *Handler) ListRaffles(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), parseListRafflesQuery(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToRaffleDTOList(result.Raffles, h.markdown), result.Total, result.Page, result.PageSize)
}

// UpdateRaffle handles PATCH /api/admin/raffles/:id
// @Summary Update raffle
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param request body UpdateRaffleRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/raffles/{id} [patch]
func (h *Handler) UpdateRaffle(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateRaffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), req.ToCommand(raffleID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle updated successfully", dto.ToRaffleDTO(result.Raffle, h.markdown))
}

// GrowCapacity handles POST /api/admin/raffles/:id/capacity
// @Summary Grow raffle capacity
// @Description Numbers are never renumbered, so growth stops at the capacity of the number width
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param request body GrowCapacityRequest true "New ticket total"
// @Success 200 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/raffles/{id}/capacity [post]
func (h *Handler) GrowCapacity(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GrowCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.growUC.Execute(c.Request.Context(), usecases.GrowRaffleCapacityCommand{
		RaffleID:     raffleID,
		TotalTickets: req.TotalTickets,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle capacity updated", gin.H{
		"raffle": dto.ToRaffleDTO(result.Raffle, h.markdown),
		"added":  result.Added,
	})
}

// ChangeStatus handles PATCH /api/admin/raffles/:id/status
// @Summary Change raffle status
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/raffles/{id}/status [patch]
func (h *Handler) ChangeStatus(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.statusUC.Execute(c.Request.Context(), usecases.ChangeRaffleStatusCommand{
		RaffleID: raffleID,
		Status:   req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Raffle status updated", dto.ToRaffleDTO(result.Raffle, h.markdown))
}

// SetManualSale handles PATCH /api/admin/raffles/:id/manual-sale
// @Summary Open or close sales manually
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param request body ManualSaleRequest true "Sale switch"
// @Success 200 {object} utils.APIResponse{data=dto.RaffleDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/raffles/{id}/manual-sale [patch]
func (h *Handler) SetManualSale(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ManualSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	result, err := h.manualSaleUC.Execute(c.Request.Context(), usecases.SetManualSaleCommand{
		RaffleID: raffleID,
		Open:     *req.Open,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToRaffleDTO(result.Raffle, h.markdown))
}

// DeleteRaffle handles DELETE /api/admin/raffles/:id
// @Summary Delete raffle
// @Tags Raffles
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/raffles/{id} [delete]
func (h *Handler) DeleteRaffle(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteRaffleCommand{RaffleID: raffleID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("raffle deleted via api", "raffle_id", raffleID, "admin", middleware.AdminEmail(c))
	utils.NoContentResponse(c)
}

// DrawRaffle handles POST /api/admin/raffles/:id/draw. The body is optional;
// without tiers one first place winner is drawn.
// @Summary Draw raffle winners
// @Tags Raffles
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param request body DrawRequest false "Prize tiers"
// @Success 200 {object} utils.APIResponse{data=[]dto.WinnerDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/raffles/{id}/draw [post]
func (h *Handler) DrawRaffle(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req DrawRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
			return
		}
	}

	result, err := h.drawUC.Execute(c.Request.Context(), req.ToCommand(raffleID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("raffle drawn via api",
		"raffle_id", raffleID,
		"winners", len(result.Winners),
		"admin", middleware.AdminEmail(c),
	)
	utils.SuccessResponse(c, http.StatusOK, "Raffle drawn successfully", gin.H{
		"raffle":  dto.ToRaffleDTO(result.Raffle, h.markdown),
		"winners": dto.ToWinnerDTOList(result.Winners),
	})
}

// CheckConsistency handles GET /api/admin/raffles/consistency
// @Summary Check sold counters
// @Tags Raffles
// @Produce json
// @Security Bearer
// @Param raffle_id query int false "Limit the check to one raffle"
// @Param repair query bool false "Rewrite drifted counters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/raffles/consistency [get]
func (h *Handler) CheckConsistency(c *gin.Context) {
	cmd, err := parseConsistencyCommand(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.consistencyUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toConsistencyResponse(result))
}
