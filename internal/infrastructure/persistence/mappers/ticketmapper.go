package mappers

import (
	"github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:          t.ID(),
		RaffleID:    t.RaffleID(),
		Number:      t.Number(),
		State:       t.State().String(),
		PaymentID:   t.PaymentID(),
		PurchasedAt: t.PurchasedAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if owner := t.Owner(); owner != nil {
		model.OwnerName = owner.Name
		model.OwnerEmail = owner.Email
		model.OwnerPhone = owner.Phone
		model.OwnerIDType = owner.IDType.String()
		model.OwnerIDNumber = owner.IDNumber
	}
	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	state, err := vo.NewTicketState(model.State)
	if err != nil {
		return nil, err
	}

	var owner *valueobjects.Buyer
	if model.OwnerEmail != "" || model.OwnerName != "" {
		owner = &valueobjects.Buyer{
			Name:     model.OwnerName,
			Email:    model.OwnerEmail,
			Phone:    model.OwnerPhone,
			IDType:   valueobjects.IDType(model.OwnerIDType),
			IDNumber: model.OwnerIDNumber,
		}
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.RaffleID,
		model.Number,
		state,
		owner,
		model.PaymentID,
		model.PurchasedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
