package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/mappers"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/db"
	apperrors "github.com/modorifa/rifas/internal/shared/errors"
)

// allowedRaffleOrderByFields maps API sort keys to columns.
var allowedRaffleOrderByFields = map[string]string{
	"id":           "id",
	"product_name": "product_name",
	"status":       "status",
	"tickets_sold": "tickets_sold",
	"draw_at":      "draw_at",
	"created_at":   "created_at",
}

type RaffleRepository struct {
	db *gorm.DB
}

func NewRaffleRepository(db *gorm.DB) *RaffleRepository {
	return &RaffleRepository{db: db}
}

func (r *RaffleRepository) Create(ctx context.Context, rf *raffle.Raffle) error {
	model := mappers.RaffleToModel(rf)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create raffle: %w", err)
	}

	rf.SetID(model.ID)
	return nil
}

// Update writes every mutable column except tickets_sold, which only moves
// through the conditional counter methods.
func (r *RaffleRepository) Update(ctx context.Context, rf *raffle.Raffle) error {
	model := mappers.RaffleToModel(rf)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("id = ? AND version = ?", model.ID, rf.LoadedVersion()).
		Updates(map[string]interface{}{
			"product_name":         model.ProductName,
			"description":          model.Description,
			"image_url":            model.ImageURL,
			"unit_price_cents":     model.UnitPriceCents,
			"exchange_rate":        model.ExchangeRate,
			"total_tickets":        model.TotalTickets,
			"status":               model.Status,
			"manual_open_for_sale": model.ManualOpenForSale,
			"starts_at":            model.StartsAt,
			"ends_at":              model.EndsAt,
			"draw_at":              model.DrawAt,
			"drawn_at":             model.DrawnAt,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update raffle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("raffle was modified concurrently, please retry")
	}

	rf.MarkPersisted()
	return nil
}

func (r *RaffleRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.RaffleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete raffle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("raffle not found")
	}
	return nil
}

func (r *RaffleRepository) GetByID(ctx context.Context, id uint) (*raffle.Raffle, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

func (r *RaffleRepository) GetByIDForUpdate(ctx context.Context, id uint) (*raffle.Raffle, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	// SQLite serializes writers on the database file and has no row locks.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(tx, id)
}

func (r *RaffleRepository) get(tx *gorm.DB, id uint) (*raffle.Raffle, error) {
	var model models.RaffleModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("raffle not found")
		}
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	return mappers.RaffleToDomain(&model)
}

func (r *RaffleRepository) List(ctx context.Context, filter raffle.RaffleFilter) ([]*raffle.Raffle, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.RaffleModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("(product_name LIKE ? OR description LIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count raffles: %w", err)
	}

	var raffleModels []models.RaffleModel
	if err := query.
		Order(filter.OrderClause(allowedRaffleOrderByFields, "created_at")).
		Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&raffleModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list raffles: %w", err)
	}

	raffles := make([]*raffle.Raffle, 0, len(raffleModels))
	for i := range raffleModels {
		rf, err := mappers.RaffleToDomain(&raffleModels[i])
		if err != nil {
			return nil, 0, err
		}
		raffles = append(raffles, rf)
	}
	return raffles, total, nil
}

func (r *RaffleRepository) IncrementTicketsSold(ctx context.Context, id uint, n int) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("id = ? AND tickets_sold + ? <= total_tickets", id, n).
		Updates(map[string]interface{}{
			"tickets_sold": gorm.Expr("tickets_sold + ?", n),
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to increment tickets sold: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *RaffleRepository) DecrementTicketsSold(ctx context.Context, id uint, n int) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tickets_sold": gorm.Expr("CASE WHEN tickets_sold >= ? THEN tickets_sold - ? ELSE 0 END", n, n),
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decrement tickets sold: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("raffle not found")
	}
	return nil
}

func (r *RaffleRepository) SetTicketsSold(ctx context.Context, id uint, n int) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"tickets_sold": n,
			"updated_at":   biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set tickets sold: %w", result.Error)
	}
	return nil
}

func (r *RaffleRepository) TicketsSoldCounters(ctx context.Context) (map[uint]int, error) {
	var rows []struct {
		ID          uint
		TicketsSold int
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RaffleModel{}).
		Select("id, tickets_sold").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read tickets sold counters: %w", err)
	}

	counters := make(map[uint]int, len(rows))
	for _, row := range rows {
		counters[row.ID] = row.TicketsSold
	}
	return counters, nil
}
