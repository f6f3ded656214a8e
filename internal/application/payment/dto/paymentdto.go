package dto

import (
	"time"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/shared/mapper"
)

type PaymentDTO struct {
	ID              uint       `json:"id"`
	PaymentNo       string     `json:"payment_no"`
	RaffleID        uint       `json:"raffle_id"`
	BuyerName       string     `json:"buyer_name"`
	BuyerEmail      string     `json:"buyer_email"`
	BuyerPhone      string     `json:"buyer_phone"`
	IDType          string     `json:"id_type,omitempty"`
	IDNumber        string     `json:"id_number,omitempty"`
	Quantity        int        `json:"quantity"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	AmountUSD       float64    `json:"amount_usd"`
	AmountVES       float64    `json:"amount_ves"`
	ExchangeRate    float64    `json:"exchange_rate"`
	Method          string     `json:"method"`
	Reference       string     `json:"reference,omitempty"`
	ProofURL        string     `json:"proof_url,omitempty"`
	AssignedNumbers []string   `json:"assigned_numbers"`
	Status          string     `json:"status"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	PaidAt          time.Time  `json:"paid_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProofURLFunc turns a stored proof key into a link. May be nil.
type ProofURLFunc func(key string) string

func ToPaymentDTO(p *payment.Payment, proofURL ProofURLFunc) *PaymentDTO {
	if p == nil {
		return nil
	}
	buyer := p.Buyer()
	dto := &PaymentDTO{
		ID:              p.ID(),
		PaymentNo:       p.PaymentNo(),
		RaffleID:        p.RaffleID(),
		BuyerName:       buyer.Name,
		BuyerEmail:      buyer.Email,
		BuyerPhone:      buyer.Phone,
		IDType:          buyer.IDType.String(),
		IDNumber:        buyer.IDNumber,
		Quantity:        p.Quantity(),
		Amount:          p.Amount().Amount(),
		Currency:        p.Amount().Currency().String(),
		AmountUSD:       p.AmountUSD().Amount(),
		AmountVES:       p.AmountVES().Amount(),
		ExchangeRate:    p.ExchangeRateUsed(),
		Method:          p.Method().String(),
		AssignedNumbers: p.AssignedNumbers(),
		Status:          p.Status().String(),
		AdminNotes:      p.AdminNotes(),
		PaidAt:          p.PaidAt(),
		ReviewedAt:      p.ReviewedAt(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
	if dto.AssignedNumbers == nil {
		dto.AssignedNumbers = []string{}
	}
	if p.Reference() != nil {
		dto.Reference = *p.Reference()
	}
	if p.ProofKey() != nil && proofURL != nil {
		dto.ProofURL = proofURL(*p.ProofKey())
	}
	return dto
}

func ToPaymentDTOList(payments []*payment.Payment, proofURL ProofURLFunc) []*PaymentDTO {
	return mapper.MapSlice(payments, func(p *payment.Payment) *PaymentDTO {
		return ToPaymentDTO(p, proofURL)
	})
}
