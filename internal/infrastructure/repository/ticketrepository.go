package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/mappers"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/constants"
	"github.com/modorifa/rifas/internal/shared/db"
	apperrors "github.com/modorifa/rifas/internal/shared/errors"
)

// inClauseChunk bounds the number of bind variables per statement.
const inClauseChunk = 500

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]string{
	"id":           "id",
	"number":       "number",
	"state":        "state",
	"purchased_at": "purchased_at",
	"updated_at":   "updated_at",
}

// TicketRepository is the gorm backed ticket pool.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Initialize(ctx context.Context, raffleID uint, from, to, width int) error {
	if to <= from {
		return nil
	}

	now := biztime.NowUTC()
	numbers := ticket.NumberRange(from, to, width)
	rows := make([]models.TicketModel, len(numbers))
	for i, number := range numbers {
		rows[i] = models.TicketModel{
			RaffleID:  raffleID,
			Number:    number,
			State:     vo.StateAvailable.String(),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if err := db.GetTxFromContext(ctx, r.db).
		CreateInBatches(rows, constants.TicketInsertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to initialize tickets: %w", err)
	}
	return nil
}

func (r *TicketRepository) Claim(
	ctx context.Context,
	raffleID uint,
	ticketIDs []uint,
	paymentID uint,
	owner sharedvo.Buyer,
	at time.Time,
) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var claimed int64

	for _, chunk := range chunk(ticketIDs, inClauseChunk) {
		result := tx.Model(&models.TicketModel{}).
			Where("raffle_id = ? AND id IN ? AND state = ?", raffleID, chunk, vo.StateAvailable.String()).
			Updates(map[string]interface{}{
				"state":           vo.StatePending.String(),
				"payment_id":      paymentID,
				"owner_name":      owner.Name,
				"owner_email":     owner.Email,
				"owner_phone":     owner.Phone,
				"owner_id_type":   owner.IDType.String(),
				"owner_id_number": owner.IDNumber,
				"purchased_at":    at,
				"updated_at":      at,
			})
		if result.Error != nil {
			return claimed, fmt.Errorf("failed to claim tickets: %w", result.Error)
		}
		claimed += result.RowsAffected
	}
	return claimed, nil
}

func (r *TicketRepository) MarkPaid(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	now := biztime.NowUTC()
	var paid int64

	for _, chunk := range chunk(numbers, inClauseChunk) {
		result := tx.Model(&models.TicketModel{}).
			Where("raffle_id = ? AND number IN ? AND payment_id = ? AND state = ?",
				raffleID, chunk, paymentID, vo.StatePending.String()).
			Updates(map[string]interface{}{
				"state":      vo.StatePaid.String(),
				"updated_at": now,
			})
		if result.Error != nil {
			return paid, fmt.Errorf("failed to mark tickets paid: %w", result.Error)
		}
		paid += result.RowsAffected
	}
	return paid, nil
}

func (r *TicketRepository) Release(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	now := biztime.NowUTC()
	var released int64

	for _, chunk := range chunk(numbers, inClauseChunk) {
		result := tx.Model(&models.TicketModel{}).
			Where("raffle_id = ? AND number IN ? AND payment_id = ? AND state IN ?",
				raffleID, chunk, paymentID, claimedStateStrings()).
			Updates(map[string]interface{}{
				"state":           vo.StateAvailable.String(),
				"payment_id":      nil,
				"owner_name":      "",
				"owner_email":     "",
				"owner_phone":     "",
				"owner_id_type":   "",
				"owner_id_number": "",
				"purchased_at":    nil,
				"updated_at":      now,
			})
		if result.Error != nil {
			return released, fmt.Errorf("failed to release tickets: %w", result.Error)
		}
		released += result.RowsAffected
	}
	return released, nil
}

func (r *TicketRepository) TransitionState(ctx context.Context, ticketID uint, from, to vo.TicketState) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ? AND state = ?", ticketID, from.String()).
		Updates(map[string]interface{}{
			"state":      to.String(),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to change ticket state: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *TicketRepository) CountByStates(ctx context.Context, raffleID uint, states ...vo.TicketState) (int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("raffle_id = ?", raffleID)
	if len(states) > 0 {
		query = query.Where("state IN ?", stateStrings(states))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) CountClaimedByRaffle(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		RaffleID uint
		Claimed  int64
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Select("raffle_id, COUNT(*) AS claimed").
		Where("state IN ?", claimedStateStrings()).
		Group("raffle_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count claimed tickets: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.RaffleID] = row.Claimed
	}
	return counts, nil
}

func (r *TicketRepository) ListAvailableIDs(ctx context.Context, raffleID uint) ([]uint, error) {
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("raffle_id = ? AND state = ?", raffleID, vo.StateAvailable.String()).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list available tickets: %w", err)
	}
	return ids, nil
}

func (r *TicketRepository) NumbersByIDs(ctx context.Context, ticketIDs []uint) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	numbers := make([]string, 0, len(ticketIDs))

	for _, chunk := range chunk(ticketIDs, inClauseChunk) {
		var part []string
		if err := tx.Model(&models.TicketModel{}).
			Where("id IN ?", chunk).
			Pluck("number", &part).Error; err != nil {
			return nil, fmt.Errorf("failed to load ticket numbers: %w", err)
		}
		numbers = append(numbers, part...)
	}
	return numbers, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, raffleID uint, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ? AND number = ?", raffleID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListByBuyerEmail(ctx context.Context, email string, raffleID *uint) ([]*ticket.Ticket, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("owner_email = ? AND state IN ?", strings.ToLower(strings.TrimSpace(email)), claimedStateStrings())
	if raffleID != nil {
		query = query.Where("raffle_id = ?", *raffleID)
	}

	var ticketModels []models.TicketModel
	if err := query.Order("raffle_id ASC").Order("number ASC").Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets by buyer: %w", err)
	}
	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) ListPaid(ctx context.Context, raffleID uint) ([]*ticket.Ticket, error) {
	var ticketModels []models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ? AND state = ?", raffleID, vo.StatePaid.String()).
		Order("number ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list paid tickets: %w", err)
	}
	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})

	if filter.RaffleID != 0 {
		query = query.Where("raffle_id = ?", filter.RaffleID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", filter.State.String())
	}
	if number := strings.TrimSpace(filter.Number); number != "" {
		query = query.Where("number LIKE ?", number+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.
		Order(filter.OrderClause(allowedTicketOrderByFields, "number")).
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(ticketModels)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) DeleteByRaffle(ctx context.Context, raffleID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("raffle_id = ?", raffleID).
		Delete(&models.TicketModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete tickets: %w", err)
	}
	return nil
}

func stateStrings(states []vo.TicketState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}

func claimedStateStrings() []string {
	return stateStrings(vo.ClaimedStates)
}

func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for size < len(items) {
		items, chunks = items[size:], append(chunks, items[:size])
	}
	return append(chunks, items)
}
