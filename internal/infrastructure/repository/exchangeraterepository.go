package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/modorifa/rifas/internal/domain/exchangerate"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/mappers"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
	"github.com/modorifa/rifas/internal/shared/db"
)

type ExchangeRateRepository struct {
	db *gorm.DB
}

func NewExchangeRateRepository(db *gorm.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

func (r *ExchangeRateRepository) Create(ctx context.Context, rate *exchangerate.ExchangeRate) error {
	model := mappers.ExchangeRateToModel(rate)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record exchange rate: %w", err)
	}
	rate.SetID(model.ID)
	return nil
}

func (r *ExchangeRateRepository) Latest(ctx context.Context) (*exchangerate.ExchangeRate, error) {
	var model models.ExchangeRateModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("recorded_at DESC").
		Order("id DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest exchange rate: %w", err)
	}
	return mappers.ExchangeRateToDomain(&model), nil
}

func (r *ExchangeRateRepository) List(ctx context.Context, limit int) ([]*exchangerate.ExchangeRate, error) {
	if limit <= 0 {
		limit = 30
	}

	var rateModels []models.ExchangeRateModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rateModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}

	rates := make([]*exchangerate.ExchangeRate, 0, len(rateModels))
	for i := range rateModels {
		rates = append(rates, mappers.ExchangeRateToDomain(&rateModels[i]))
	}
	return rates, nil
}
