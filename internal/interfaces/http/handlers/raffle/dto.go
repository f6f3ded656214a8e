package raffle

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/application/raffle/usecases"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/mapper"
	"github.com/modorifa/rifas/internal/shared/utils"
)

type CreateRaffleRequest struct {
	ProductName  string     `json:"product_name" binding:"required,max=200"`
	Description  string     `json:"description" binding:"max=10000"`
	ImageURL     string     `json:"image_url" binding:"omitempty,url,max=500"`
	UnitPrice    float64    `json:"unit_price" binding:"required,gt=0"`
	ExchangeRate float64    `json:"exchange_rate" binding:"gte=0"`
	TotalTickets int        `json:"total_tickets" binding:"required,min=1"`
	// NumberWidth fixes the digit count of ticket numbers for the raffle's
	// lifetime. It defaults to the width of total_tickets-1, so a 100 ticket
	// raffle gets "00".."99" and can never grow past 100; pass a wider value
	// to leave room for capacity increases.
	NumberWidth  int        `json:"number_width" binding:"omitempty,min=1,max=9"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	DrawAt       *time.Time `json:"draw_at"`
}

func (r *CreateRaffleRequest) ToCommand() usecases.CreateRaffleCommand {
	return usecases.CreateRaffleCommand{
		ProductName:  r.ProductName,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		UnitPrice:    r.UnitPrice,
		ExchangeRate: r.ExchangeRate,
		TotalTickets: r.TotalTickets,
		NumberWidth:  r.NumberWidth,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		DrawAt:       r.DrawAt,
	}
}

type UpdateRaffleRequest struct {
	ProductName  *string    `json:"product_name" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=10000"`
	ImageURL     *string    `json:"image_url" binding:"omitempty,max=500"`
	UnitPrice    *float64   `json:"unit_price" binding:"omitempty,gt=0"`
	ExchangeRate *float64   `json:"exchange_rate" binding:"omitempty,gte=0"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	DrawAt       *time.Time `json:"draw_at"`
}

func (r *UpdateRaffleRequest) ToCommand(raffleID uint) usecases.UpdateRaffleCommand {
	return usecases.UpdateRaffleCommand{
		RaffleID:     raffleID,
		ProductName:  r.ProductName,
		Description:  r.Description,
		ImageURL:     r.ImageURL,
		UnitPrice:    r.UnitPrice,
		ExchangeRate: r.ExchangeRate,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		DrawAt:       r.DrawAt,
	}
}

type GrowCapacityRequest struct {
	TotalTickets int `json:"total_tickets" binding:"required,min=1"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ManualSaleRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type DrawTierRequest struct {
	Tier  string `json:"tier" binding:"required,max=50"`
	Count int    `json:"count" binding:"required,min=1,max=100"`
}

type DrawRequest struct {
	Tiers []DrawTierRequest `json:"tiers" binding:"omitempty,max=20,dive"`
}

func (r *DrawRequest) ToCommand(raffleID uint) usecases.DrawRaffleCommand {
	cmd := usecases.DrawRaffleCommand{RaffleID: raffleID}
	for _, t := range r.Tiers {
		cmd.Tiers = append(cmd.Tiers, usecases.DrawTier{Tier: t.Tier, Count: t.Count})
	}
	return cmd
}

type CounterDriftResponse struct {
	RaffleID uint `json:"raffle_id"`
	Cached   int  `json:"cached"`
	Live     int  `json:"live"`
	Repaired bool `json:"repaired"`
}

type ConsistencyResponse struct {
	Checked int                     `json:"checked"`
	Drifts  []*CounterDriftResponse `json:"drifts"`
}

func toConsistencyResponse(result *usecases.CheckConsistencyResult) *ConsistencyResponse {
	return &ConsistencyResponse{
		Checked: result.Checked,
		Drifts: mapper.MapSlice(result.Drifts, func(d usecases.CounterDrift) *CounterDriftResponse {
			return &CounterDriftResponse{
				RaffleID: d.RaffleID,
				Cached:   d.Cached,
				Live:     d.Live,
				Repaired: d.Repaired,
			}
		}),
	}
}

func parseListRafflesQuery(c *gin.Context) usecases.ListRafflesQuery {
	p := utils.ParsePagination(c)
	return usecases.ListRafflesQuery{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Page:     p.Page,
		PageSize: p.PageSize,
		OrderBy:  c.Query("order_by"),
		Order:    c.Query("order"),
	}
}

func parseConsistencyCommand(c *gin.Context) (usecases.CheckConsistencyCommand, error) {
	var cmd usecases.CheckConsistencyCommand
	if raw := c.Query("raffle_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return cmd, errors.NewValidationError("invalid raffle_id", raw)
		}
		raffleID := uint(id)
		cmd.RaffleID = &raffleID
	}
	if raw := c.Query("repair"); raw != "" {
		repair, err := strconv.ParseBool(raw)
		if err != nil {
			return cmd, errors.NewValidationError("invalid repair flag", raw)
		}
		cmd.Repair = repair
	}
	return cmd, nil
}
