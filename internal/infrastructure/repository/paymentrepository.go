package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/modorifa/rifas/internal/domain/payment"
	vo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/mappers"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
	"github.com/modorifa/rifas/internal/shared/db"
	apperrors "github.com/modorifa/rifas/internal/shared/errors"
)

var allowedPaymentOrderByFields = map[string]string{
	"id":         "id",
	"status":     "status",
	"quantity":   "quantity",
	"amount_usd": "amount_usd",
	"paid_at":    "paid_at",
	"created_at": "created_at",
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model, err := mappers.PaymentToModel(p)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("payment reference already submitted")
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	p.SetID(model.ID)
	p.MarkPersisted()
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model, err := mappers.PaymentToModel(p)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", model.ID, p.LoadedVersion()).
		Updates(map[string]interface{}{
			"assigned_numbers": model.AssignedNumbers,
			"status":           model.Status,
			"admin_notes":      model.AdminNotes,
			"reviewed_at":      model.ReviewedAt,
			"proof_key":        model.ProofKey,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("payment was modified concurrently, please retry")
	}

	p.MarkPersisted()
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.PaymentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("payment not found")
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) GetByPaymentNo(ctx context.Context, paymentNo string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("payment_no = ?", paymentNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment by payment_no: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("reference = ?", strings.TrimSpace(reference)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check payment reference: %w", err)
	}
	return count > 0, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.PaymentFilter) ([]*payment.Payment, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{})

	if filter.RaffleID != nil {
		query = query.Where("raffle_id = ?", *filter.RaffleID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"(buyer_name LIKE ? OR buyer_email LIKE ? OR buyer_id_number LIKE ? OR reference LIKE ? OR payment_no = ?)",
			like, strings.ToLower(like), like, like, search,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var paymentModels []models.PaymentModel
	if err := query.
		Order(filter.OrderClause(allowedPaymentOrderByFields, "created_at")).
		Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*payment.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		p, err := mappers.PaymentToDomain(&paymentModels[i])
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, nil
}

func (r *PaymentRepository) CountByRaffle(ctx context.Context, raffleID uint, statuses ...vo.PaymentStatus) (int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("raffle_id = ?", raffleID)
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = s.String()
		}
		query = query.Where("status IN ?", values)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

func (r *PaymentRepository) ListProofKeysByRaffle(ctx context.Context, raffleID uint) ([]string, error) {
	keys := []string{}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("raffle_id = ? AND proof_key IS NOT NULL AND proof_key <> ''", raffleID).
		Order("id ASC").
		Pluck("proof_key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list proof keys: %w", err)
	}
	return keys, nil
}

func (r *PaymentRepository) DeleteByRaffle(ctx context.Context, raffleID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ?", raffleID).
		Delete(&models.PaymentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	return nil
}
