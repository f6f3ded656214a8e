// Package payment serves payment submission and back-office review.
package payment

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/modorifa/rifas/internal/application/payment/dto"
	"github.com/modorifa/rifas/internal/application/payment/usecases"
	"github.com/modorifa/rifas/internal/interfaces/http/middleware"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/utils"
)

const (
	proofField = "proof"
	// sniffLen covers every signature mimetype knows about.
	sniffLen = 3072
)

type Handler struct {
	submitUC usecases.SubmitPaymentExecutor
	verifyUC usecases.VerifyPaymentExecutor
	rejectUC usecases.RejectPaymentExecutor
	deleteUC usecases.DeletePaymentExecutor
	getUC    usecases.GetPaymentExecutor
	listUC   usecases.ListPaymentsExecutor
	proofURL dto.ProofURLFunc
	logger   logger.Interface
}

type UseCases struct {
	Submit usecases.SubmitPaymentExecutor
	Verify usecases.VerifyPaymentExecutor
	Reject usecases.RejectPaymentExecutor
	Delete usecases.DeletePaymentExecutor
	Get    usecases.GetPaymentExecutor
	List   usecases.ListPaymentsExecutor
}

func NewHandler(ucs UseCases, proofURL dto.ProofURLFunc, logger logger.Interface) *Handler {
	return &Handler{
		submitUC: ucs.Submit,
		verifyUC: ucs.Verify,
		rejectUC: ucs.Reject,
		deleteUC: ucs.Delete,
		getUC:    ucs.Get,
		listUC:   ucs.List,
		proofURL: proofURL,
		logger:   logger,
	}
}

// SubmitPayment handles POST /api/raffles/:id/payments
// @Summary Submit payment
// @Description Reserves random ticket numbers for the buyer pending verification
// @Tags Payments
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Raffle ID"
// @Param request body SubmitPaymentRequest true "Buyer and payment details"
// @Param proof formData file false "Proof of payment"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /raffles/{id}/payments [post]
func (h *Handler) SubmitPayment(c *gin.Context) {
	raffleID, err := utils.ParseIDParam(c, "id", "raffle")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for submit payment", "error", err, "raffle_id", raffleID)
		utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
		return
	}

	proof, closeProof, err := h.readProof(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeProof()

	result, err := h.submitUC.Execute(c.Request.Context(), req.ToCommand(raffleID, proof))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toReceiptResponse(result.Payment), "Payment submitted, pending verification")
}

// readProof returns the optional uploaded proof with its sniffed content
// type. The client supplied Content-Type is ignored.
func (h *Handler) readProof(c *gin.Context) (*usecases.ProofUpload, func(), error) {
	noop := func() {}
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}

	header, err := c.FormFile(proofField)
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, errors.NewValidationError("invalid proof of payment upload", err.Error())
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded proof", "error", err)
		return nil, noop, errors.NewInternalError("failed to read proof of payment")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !stderrors.Is(err, io.ErrUnexpectedEOF) && !stderrors.Is(err, io.EOF) {
		file.Close()
		return nil, noop, errors.NewValidationError("failed to read proof of payment")
	}
	if n == 0 {
		file.Close()
		return nil, noop, errors.NewValidationError("proof of payment is empty")
	}

	contentType, _, _ := mime.ParseMediaType(mimetype.Detect(head[:n]).String())
	return &usecases.ProofUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head[:n]), file),
	}, func() { file.Close() }, nil
}

// GetPayment handles GET /api/admin/payments/:id
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Security Bearer
// @Param id path int true "Payment ID"
// @Success 200 {object} utils.APIResponse{data=dto.PaymentDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/payments/{id} [get]
func (h *Handler) GetPayment(c *gin.Context) {
	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.getPayment(c, usecases.GetPaymentQuery{ID: paymentID})
}

// GetPaymentByNumber handles GET /api/admin/payments/by-number/:payment_no
// @Summary Get payment by number
// @Tags Payments
// @Produce json
// @Security Bearer
// @Param payment_no path string true "Payment number"
// @Success 200 {object} utils.APIResponse{data=dto.PaymentDTO}
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/payments/by-number/{payment_no} [get]
func (h *Handler) GetPaymentByNumber(c *gin.Context) {
	h.getPayment(c, usecases.GetPaymentQuery{PaymentNo: c.Param("payment_no")})
}

func (h *Handler) getPayment(c *gin.Context, query usecases.GetPaymentQuery) {
	result, err := h.getUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.ToPaymentDTO(result.Payment, h.proofURL))
}

// ListPayments handles GET /api/admin/payments
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security Bearer
// @Param raffle_id query int false "Raffle ID"
// @Param status query string false "Payment status"
// @Param search query string false "Buyer, reference or payment number"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param order_by query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	query, err := parseListPaymentsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, dto.ToPaymentDTOList(result.Payments, h.proofURL), result.Total, result.Page, result.PageSize)
}

// VerifyPayment handles POST /api/admin/payments/:id/verify
// @Summary Verify payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Payment ID"
// @Param request body ReviewPaymentRequest false "Review notes"
// @Success 200 {object} utils.APIResponse{data=dto.PaymentDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/payments/{id}/verify [post]
func (h *Handler) VerifyPayment(c *gin.Context) {
	h.review(c, "verified", h.verifyUC)
}

// RejectPayment handles POST /api/admin/payments/:id/reject
// @Summary Reject payment
// @Description Releases the reserved numbers back to the pool
// @Tags Payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Payment ID"
// @Param request body ReviewPaymentRequest false "Review notes"
// @Success 200 {object} utils.APIResponse{data=dto.PaymentDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/payments/{id}/reject [post]
func (h *Handler) RejectPayment(c *gin.Context) {
	h.review(c, "rejected", h.rejectUC)
}

// reviewer is satisfied by both the verify and the reject use case.
type reviewer interface {
	Execute(ctx context.Context, cmd usecases.ReviewPaymentCommand) (*usecases.ReviewPaymentResult, error)
}

func (h *Handler) review(c *gin.Context, action string, uc reviewer) {
	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReviewPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.TranslateBindingError(err))
			return
		}
	}

	result, err := uc.Execute(c.Request.Context(), usecases.ReviewPaymentCommand{
		PaymentID: paymentID,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("payment reviewed via api",
		"payment_id", paymentID,
		"action", action,
		"released", result.Released,
		"admin", middleware.AdminEmail(c),
	)
	utils.SuccessResponse(c, http.StatusOK, "Payment "+action, dto.ToPaymentDTO(result.Payment, h.proofURL))
}

// DeletePayment handles DELETE /api/admin/payments/:id
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Security Bearer
// @Param id path int true "Payment ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /admin/payments/{id} [delete]
func (h *Handler) DeletePayment(c *gin.Context) {
	paymentID, err := utils.ParseIDParam(c, "id", "payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeletePaymentCommand{PaymentID: paymentID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("payment deleted via api", "payment_id", paymentID, "admin", middleware.AdminEmail(c))
	utils.NoContentResponse(c)
}
