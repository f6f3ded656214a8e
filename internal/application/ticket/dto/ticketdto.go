package dto

import (
	"time"

	"github.com/modorifa/rifas/internal/domain/ticket"
	"github.com/modorifa/rifas/internal/shared/mapper"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type OwnerDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IDType   string `json:"id_type,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

type TicketDTO struct {
	ID          uint       `json:"id"`
	RaffleID    uint       `json:"raffle_id"`
	Number      string     `json:"number"`
	State       string     `json:"state"`
	Owner       *OwnerDTO  `json:"owner,omitempty"`
	PaymentID   *uint      `json:"payment_id,omitempty"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
}

// ToTicketDTO renders a ticket for admins, with full owner contact data.
func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	dto := &TicketDTO{
		ID:          t.ID(),
		RaffleID:    t.RaffleID(),
		Number:      t.Number(),
		State:       t.State().String(),
		PaymentID:   t.PaymentID(),
		PurchasedAt: t.PurchasedAt(),
	}
	if o := t.Owner(); o != nil {
		dto.Owner = &OwnerDTO{
			Name:     o.Name,
			Email:    o.Email,
			Phone:    o.Phone,
			IDType:   o.IDType.String(),
			IDNumber: o.IDNumber,
		}
	}
	return dto
}

// ToPublicTicketDTO hides contact data and the payment link.
func ToPublicTicketDTO(t *ticket.Ticket) *TicketDTO {
	dto := ToTicketDTO(t)
	if dto == nil {
		return nil
	}
	dto.PaymentID = nil
	if dto.Owner != nil {
		dto.Owner = &OwnerDTO{
			Name:  dto.Owner.Name,
			Email: utils.MaskEmail(dto.Owner.Email),
			Phone: utils.MaskPhone(dto.Owner.Phone),
		}
	}
	return dto
}

func ToTicketDTOList(tickets []*ticket.Ticket, public bool) []*TicketDTO {
	if public {
		return mapper.MapSlice(tickets, ToPublicTicketDTO)
	}
	return mapper.MapSlice(tickets, ToTicketDTO)
}
