package mappers

import (
	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

func ExchangeRateToModel(e *exchangerate.ExchangeRate) *models.ExchangeRateModel {
	return &models.ExchangeRateModel{
		ID:         e.ID(),
		Value:      e.Value(),
		Source:     e.Source(),
		RecordedAt: e.RecordedAt(),
	}
}

func ExchangeRateToDomain(model *models.ExchangeRateModel) *exchangerate.ExchangeRate {
	return exchangerate.ReconstructExchangeRate(model.ID, model.Value, model.Source, model.RecordedAt)
}
