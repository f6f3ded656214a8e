package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/mappers"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
	"github.com/modorifa/rifas/internal/shared/db"
)

type WinnerRepository struct {
	db *gorm.DB
}

func NewWinnerRepository(db *gorm.DB) *WinnerRepository {
	return &WinnerRepository{db: db}
}

func (r *WinnerRepository) SaveAll(ctx context.Context, winners []raffle.Winner) error {
	if len(winners) == 0 {
		return nil
	}

	winnerModels := make([]*models.RaffleWinnerModel, 0, len(winners))
	for _, w := range winners {
		model, err := mappers.WinnerToModel(w)
		if err != nil {
			return err
		}
		winnerModels = append(winnerModels, model)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(&winnerModels).Error; err != nil {
		return fmt.Errorf("failed to save winners: %w", err)
	}
	return nil
}

func (r *WinnerRepository) ListByRaffle(ctx context.Context, raffleID uint) ([]raffle.Winner, error) {
	var winnerModels []models.RaffleWinnerModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ?", raffleID).
		Order("id ASC").
		Find(&winnerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}

	winners := make([]raffle.Winner, 0, len(winnerModels))
	for i := range winnerModels {
		w, err := mappers.WinnerToDomain(&winnerModels[i])
		if err != nil {
			return nil, err
		}
		winners = append(winners, w)
	}
	return winners, nil
}

func (r *WinnerRepository) DeleteByRaffle(ctx context.Context, raffleID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ?", raffleID).
		Delete(&models.RaffleWinnerModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete winners: %w", err)
	}
	return nil
}
