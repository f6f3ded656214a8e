package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/modorifa/rifas/internal/domain/payment"
	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) (*models.PaymentModel, error) {
	numbers, err := json.Marshal(nonNilNumbers(p.AssignedNumbers()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode assigned numbers: %w", err)
	}
	buyer := p.Buyer()

	return &models.PaymentModel{
		ID:               p.ID(),
		PaymentNo:        p.PaymentNo(),
		RaffleID:         p.RaffleID(),
		BuyerName:        buyer.Name,
		BuyerEmail:       buyer.Email,
		BuyerPhone:       buyer.Phone,
		BuyerIDType:      buyer.IDType.String(),
		BuyerIDNumber:    buyer.IDNumber,
		Quantity:         p.Quantity(),
		Amount:           p.Amount().AmountInCents(),
		Currency:         p.Amount().Currency().String(),
		AmountUSD:        p.AmountUSD().AmountInCents(),
		AmountVES:        p.AmountVES().AmountInCents(),
		ExchangeRateUsed: p.ExchangeRateUsed(),
		Method:           p.Method().String(),
		Reference:        p.Reference(),
		ProofKey:         p.ProofKey(),
		AssignedNumbers:  datatypes.JSON(numbers),
		Status:           p.Status().String(),
		AdminNotes:       p.AdminNotes(),
		PaidAt:           p.PaidAt(),
		ReviewedAt:       p.ReviewedAt(),
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}, nil
}

func PaymentToDomain(model *models.PaymentModel) (*payment.Payment, error) {
	currency, err := sharedvo.NewCurrency(model.Currency)
	if err != nil {
		return nil, err
	}
	method, err := vo.NewPaymentMethod(model.Method)
	if err != nil {
		return nil, err
	}
	status, err := vo.NewPaymentStatus(model.Status)
	if err != nil {
		return nil, err
	}

	var numbers []string
	if len(model.AssignedNumbers) > 0 {
		if err := json.Unmarshal(model.AssignedNumbers, &numbers); err != nil {
			return nil, fmt.Errorf("failed to decode assigned numbers of payment %d: %w", model.ID, err)
		}
	}

	return payment.ReconstructPaymentWithParams(payment.PaymentReconstructParams{
		ID:        model.ID,
		PaymentNo: model.PaymentNo,
		RaffleID:  model.RaffleID,
		Buyer: sharedvo.Buyer{
			Name:     model.BuyerName,
			Email:    model.BuyerEmail,
			Phone:    model.BuyerPhone,
			IDType:   sharedvo.IDType(model.BuyerIDType),
			IDNumber: model.BuyerIDNumber,
		},
		Quantity:         model.Quantity,
		Amount:           sharedvo.NewMoney(model.Amount, currency),
		AmountUSD:        sharedvo.NewMoney(model.AmountUSD, sharedvo.CurrencyUSD),
		AmountVES:        sharedvo.NewMoney(model.AmountVES, sharedvo.CurrencyVES),
		ExchangeRateUsed: model.ExchangeRateUsed,
		Method:           method,
		Reference:        model.Reference,
		ProofKey:         model.ProofKey,
		AssignedNumbers:  numbers,
		Status:           status,
		AdminNotes:       model.AdminNotes,
		PaidAt:           model.PaidAt,
		ReviewedAt:       model.ReviewedAt,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}), nil
}

func nonNilNumbers(numbers []string) []string {
	if numbers == nil {
		return []string{}
	}
	return numbers
}
