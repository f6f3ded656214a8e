package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

func RaffleToModel(r *raffle.Raffle) *models.RaffleModel {
	return &models.RaffleModel{
		ID:                r.ID(),
		ProductName:       r.ProductName(),
		Description:       r.Description(),
		ImageURL:          r.ImageURL(),
		UnitPriceCents:    r.UnitPrice().AmountInCents(),
		ExchangeRate:      r.ExchangeRate(),
		TotalTickets:      r.TotalTickets(),
		TicketsSold:       r.TicketsSold(),
		NumberWidth:       r.NumberWidth(),
		Status:            r.Status().String(),
		ManualOpenForSale: r.ManualOpenForSale(),
		StartsAt:          r.StartsAt(),
		EndsAt:            r.EndsAt(),
		DrawAt:            r.DrawAt(),
		DrawnAt:           r.DrawnAt(),
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}
}

func RaffleToDomain(model *models.RaffleModel) (*raffle.Raffle, error) {
	status, err := vo.NewRaffleStatus(model.Status)
	if err != nil {
		return nil, err
	}
	return raffle.ReconstructRaffle(raffle.RaffleReconstructParams{
		ID:                model.ID,
		ProductName:       model.ProductName,
		Description:       model.Description,
		ImageURL:          model.ImageURL,
		UnitPrice:         sharedvo.NewMoney(model.UnitPriceCents, sharedvo.CurrencyUSD),
		ExchangeRate:      model.ExchangeRate,
		TotalTickets:      model.TotalTickets,
		TicketsSold:       model.TicketsSold,
		NumberWidth:       model.NumberWidth,
		Status:            status,
		ManualOpenForSale: model.ManualOpenForSale,
		StartsAt:          model.StartsAt,
		EndsAt:            model.EndsAt,
		DrawAt:            model.DrawAt,
		DrawnAt:           model.DrawnAt,
		Version:           model.Version,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}), nil
}

type ownerSnapshot struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IDType   string `json:"id_type,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

func WinnerToModel(w raffle.Winner) (*models.RaffleWinnerModel, error) {
	owner, err := json.Marshal(ownerSnapshot{
		Name:     w.Owner.Name,
		Email:    w.Owner.Email,
		Phone:    w.Owner.Phone,
		IDType:   w.Owner.IDType.String(),
		IDNumber: w.Owner.IDNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode winner owner: %w", err)
	}
	return &models.RaffleWinnerModel{
		ID:           w.ID,
		RaffleID:     w.RaffleID,
		Tier:         w.Tier.String(),
		Position:     w.Position,
		TicketID:     w.TicketID,
		TicketNumber: w.TicketNumber,
		Owner:        datatypes.JSON(owner),
		DrawnAt:      w.DrawnAt,
	}, nil
}

func WinnerToDomain(model *models.RaffleWinnerModel) (raffle.Winner, error) {
	var owner ownerSnapshot
	if len(model.Owner) > 0 {
		if err := json.Unmarshal(model.Owner, &owner); err != nil {
			return raffle.Winner{}, fmt.Errorf("failed to decode winner owner: %w", err)
		}
	}
	return raffle.Winner{
		ID:           model.ID,
		RaffleID:     model.RaffleID,
		Tier:         vo.PrizeTier(model.Tier),
		Position:     model.Position,
		TicketID:     model.TicketID,
		TicketNumber: model.TicketNumber,
		Owner: sharedvo.Buyer{
			Name:     owner.Name,
			Email:    owner.Email,
			Phone:    owner.Phone,
			IDType:   sharedvo.IDType(owner.IDType),
			IDNumber: owner.IDNumber,
		},
		DrawnAt: model.DrawnAt,
	}, nil
}
