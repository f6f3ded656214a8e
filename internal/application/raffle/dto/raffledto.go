package dto

import (
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/shared/mapper"
)

type RaffleDTO struct {
	ID                uint         `json:"id"`
	ProductName       string       `json:"product_name"`
	Description       string       `json:"description"`
	DescriptionHTML   string       `json:"description_html,omitempty"`
	ImageURL          string       `json:"image_url,omitempty"`
	UnitPrice         float64      `json:"unit_price"`
	Currency          string       `json:"currency"`
	ExchangeRate      float64      `json:"exchange_rate"`
	UnitPriceVES      float64      `json:"unit_price_ves,omitempty"`
	TotalTickets      int          `json:"total_tickets"`
	TicketsSold       int          `json:"tickets_sold"`
	TicketsAvailable  int          `json:"tickets_available"`
	SoldPercentage    float64      `json:"sold_percentage"`
	NumberWidth       int          `json:"number_width"`
	Status            string       `json:"status"`
	PurchaseStatus    string       `json:"purchase_status"`
	ManualOpenForSale bool         `json:"manual_open_for_sale"`
	StartsAt          *time.Time   `json:"starts_at,omitempty"`
	EndsAt            *time.Time   `json:"ends_at,omitempty"`
	DrawAt            *time.Time   `json:"draw_at,omitempty"`
	DrawnAt           *time.Time   `json:"drawn_at,omitempty"`
	Winners           []*WinnerDTO `json:"winners,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

type WinnerDTO struct {
	Tier         string    `json:"tier"`
	Position     int       `json:"position"`
	TicketNumber string    `json:"ticket_number"`
	OwnerName    string    `json:"owner_name"`
	DrawnAt      time.Time `json:"drawn_at"`
}

// MarkdownRenderer converts a description to safe HTML.
type MarkdownRenderer interface {
	ToHTML(markdown string) (string, error)
}

func ToRaffleDTO(r *raffle.Raffle, md MarkdownRenderer) *RaffleDTO {
	if r == nil {
		return nil
	}
	dto := &RaffleDTO{
		ID:                r.ID(),
		ProductName:       r.ProductName(),
		Description:       r.Description(),
		ImageURL:          r.ImageURL(),
		UnitPrice:         r.UnitPrice().Amount(),
		Currency:          r.UnitPrice().Currency().String(),
		ExchangeRate:      r.ExchangeRate(),
		TotalTickets:      r.TotalTickets(),
		TicketsSold:       r.TicketsSold(),
		TicketsAvailable:  r.TicketsAvailable(),
		SoldPercentage:    r.SoldPercentage(),
		NumberWidth:       r.NumberWidth(),
		Status:            r.Status().String(),
		PurchaseStatus:    r.PurchaseStatus().String(),
		ManualOpenForSale: r.ManualOpenForSale(),
		StartsAt:          r.StartsAt(),
		EndsAt:            r.EndsAt(),
		DrawAt:            r.DrawAt(),
		DrawnAt:           r.DrawnAt(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}
	if r.ExchangeRate() > 0 {
		dto.UnitPriceVES = r.UnitPrice().Amount() * r.ExchangeRate()
	}
	if md != nil && r.Description() != "" {
		if html, err := md.ToHTML(r.Description()); err == nil {
			dto.DescriptionHTML = html
		}
	}
	return dto
}

func ToRaffleDTOList(raffles []*raffle.Raffle, md MarkdownRenderer) []*RaffleDTO {
	return mapper.MapSlice(raffles, func(r *raffle.Raffle) *RaffleDTO {
		return ToRaffleDTO(r, md)
	})
}

func ToWinnerDTOList(winners []raffle.Winner) []*WinnerDTO {
	return mapper.MapSlice(winners, func(w raffle.Winner) *WinnerDTO {
		return &WinnerDTO{
			Tier:         w.Tier.String(),
			Position:     w.Position,
			TicketNumber: w.TicketNumber,
			OwnerName:    w.Owner.Name,
			DrawnAt:      w.DrawnAt,
		}
	})
}
