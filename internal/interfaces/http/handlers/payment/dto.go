package payment

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/payment/usecases"
	domainpayment "github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/utils"
)

// SubmitPaymentRequest is bound from multipart/form-data (with an optional
// "proof" file) or from JSON when only a reference is given.
type SubmitPaymentRequest struct {
	Quantity  int        `form:"quantity" json:"quantity" binding:"required,min=1,max=10000"`
	Amount    float64    `form:"amount" json:"amount" binding:"required,gt=0"`
	Currency  string     `form:"currency" json:"currency" binding:"required,oneof=USD VES usd ves"`
	Method    string     `form:"method" json:"method" binding:"required,payment_method"`
	Reference string     `form:"reference" json:"reference" binding:"omitempty,max=100"`
	PaidAt    *time.Time `form:"paid_at" json:"paid_at"`
	Name      string     `form:"name" json:"name" binding:"required,max=150"`
	Email     string     `form:"email" json:"email" binding:"required,email,max=254"`
	Phone     string     `form:"phone" json:"phone" binding:"required,max=30"`
	IDType    string     `form:"id_type" json:"id_type" binding:"omitempty,id_type"`
	IDNumber  string     `form:"id_number" json:"id_number" binding:"omitempty,max=20"`
}

func (r *SubmitPaymentRequest) ToCommand(raffleID uint, proof *usecases.ProofUpload) usecases.SubmitPaymentCommand {
	return usecases.SubmitPaymentCommand{
		RaffleID:  raffleID,
		Quantity:  r.Quantity,
		Amount:    r.Amount,
		Currency:  strings.ToUpper(r.Currency),
		Method:    r.Method,
		Reference: r.Reference,
		PaidAt:    r.PaidAt,
		Buyer: usecases.BuyerInput{
			Name:     r.Name,
			Email:    r.Email,
			Phone:    r.Phone,
			IDType:   strings.ToUpper(strings.TrimSpace(r.IDType)),
			IDNumber: r.IDNumber,
		},
		Proof: proof,
	}
}

// ReceiptResponse is what a buyer sees after submitting. Contact data and the
// proof link stay on the admin side.
type ReceiptResponse struct {
	PaymentNo       string    `json:"payment_no"`
	RaffleID        uint      `json:"raffle_id"`
	Status          string    `json:"status"`
	Quantity        int       `json:"quantity"`
	AmountUSD       float64   `json:"amount_usd"`
	AmountVES       float64   `json:"amount_ves"`
	AssignedNumbers []string  `json:"assigned_numbers"`
	CreatedAt       time.Time `json:"created_at"`
}

func toReceiptResponse(p *domainpayment.Payment) *ReceiptResponse {
	numbers := p.AssignedNumbers()
	if numbers == nil {
		numbers = []string{}
	}
	return &ReceiptResponse{
		PaymentNo:       p.PaymentNo(),
		RaffleID:        p.RaffleID(),
		Status:          p.Status().String(),
		Quantity:        p.Quantity(),
		AmountUSD:       p.AmountUSD().Amount(),
		AmountVES:       p.AmountVES().Amount(),
		AssignedNumbers: numbers,
		CreatedAt:       p.CreatedAt(),
	}
}

type ReviewPaymentRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

func parseListPaymentsQuery(c *gin.Context) (usecases.ListPaymentsQuery, error) {
	p := utils.ParsePagination(c)
	q := usecases.ListPaymentsQuery{
		Status:   c.Query("status"),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     p.Page,
		PageSize: p.PageSize,
		OrderBy:  c.Query("order_by"),
		Order:    c.Query("order"),
	}
	if raw := c.Query("raffle_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return q, errors.NewValidationError("invalid raffle_id", raw)
		}
		raffleID := uint(id)
		q.RaffleID = &raffleID
	}
	return q, nil
}
