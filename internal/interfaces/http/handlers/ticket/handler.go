// Package ticket serves ticket lookups for buyers and ticket maintenance for
// operators.
package ticket

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/ticket/dto"
	"github.com/modorifa/rifas/internal/application/ticket/usecases"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/interfaces/http/validators"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type Handler struct {
	queryUC   usecases.QueryTicketExecutor
	byBuyerUC usecases.QueryTicketsByBuyerExecutor
	listUC    usecases.ListRaffleTicketsExecutor
	changeUC  usecases.ChangeTicketStateExecutor
	logger    logger.Interface
}

func NewHandler(
	queryUC usecases.QueryTicketExecutor,
	byBuyerUC usecases.QueryTicketsByBuyerExecutor,
	listUC usecases.ListRaffleTicketsExecutor,
	changeUC usecases.ChangeTicketStateExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		queryUC:   queryUC,
		byBuyerUC: byBuyerUC,
		listUC:    listUC,
		changeUC:  changeUC,
		logger:    logger,
	}
}

// QueryTicket handles GET /api/raffles/:id/tickets/:number
// @Summary Look up a ticket number
// @Tags Tickets
// @Produce json
// @Param id path int true "Raffle ID"
// @Param number path string true "Ticket number"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /raffles/{id}/tickets/{number} [get]
func (h *Handler) QueryTicket(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	number := strings.TrimSpace(c.Param("number"))
	if !validators.IsTicketNumber(number) {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket number must contain only digits", number))
		return
	}

	result, err := h.queryUC.Execute(c.Request.Context(), usecases.QueryTicketQuery{
		RaffleID: raffleID,
		Number:   number,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPublicTicketDTO(result.Ticket))
}

// QueryByBuyer handles GET /api/tickets?email=&raffle_id=
// @Summary List tickets by buyer email
// @Tags Tickets
// @Produce json
// @Param email query string true "Buyer email"
// @Param raffle_id query int false "Raffle ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [get]
func (h *Handler) QueryByBuyer(c *gin.Context) {
	query := usecases.QueryTicketsByBuyerQuery{Email: c.Query("email")}
	if raw := c.Query("raffle_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid raffle_id", raw))
			return
		}
		raffleID := uint(id)
		query.RaffleID = &raffleID
	}

	result, err := h.byBuyerUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTOList(result.Tickets, true))
}

// ListRaffleTickets handles GET /api/admin/raffles/:id/tickets
// @Summary List raffle tickets
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Raffle ID"
// @Param state query string false "Ticket state"
// @Param number query string false "Number prefix"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param order_by query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/raffles/{id}/tickets [get]
func (h *Handler) ListRaffleTickets(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListRaffleTicketsQuery{
		RaffleID: raffleID,
		State:    c.Query("state"),
		Number:   strings.TrimSpace(c.Query("number")),
		Page:     p.Page,
		PageSize: p.PageSize,
		OrderBy:  c.Query("order_by"),
		Order:    c.Query("order"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToTicketDTOList(result.Tickets, false), result.Total, result.Page, result.PageSize)
}

// VoidTicket handles POST /api/admin/tickets/:id/void
// @Summary Void ticket
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/tickets/{id}/void [post]
func (h *Handler) VoidTicket(c *gin.Context) {
	h.changeState(c, usecases.TicketActionVoid)
}

// RestoreTicket handles POST /api/admin/tickets/:id/restore
// @Summary Restore voided ticket
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/tickets/{id}/restore [post]
func (h *Handler) RestoreTicket(c *gin.Context) {
	h.changeState(c, usecases.TicketActionRestore)
}

func (h *Handler) changeState(c *gin.Context, action usecases.TicketAction) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeUC.Execute(c.Request.Context(), usecases.ChangeTicketStateCommand{
		TicketID: ticketID,
		Action:   action,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("ticket state changed via api",
		"ticket_id", ticketID,
		"action", action,
		"admin", middleware.AdminEmail(c),
	)
	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTO(result.Ticket))
}
