package raffle

import (
	"strconv"
	"time"

	"github.com/modorifa/rifas/internal/domain/shared/events"
)

const EventTypeRaffleDrawn = "raffle.drawn"

type DrawnWinner struct {
	Tier         string `json:"tier"`
	Position     int    `json:"position"`
	TicketNumber string `json:"ticket_number"`
	OwnerName    string `json:"owner_name"`
}

type RaffleDrawnEvent struct {
	events.BaseEvent
	ProductName string        `json:"product_name"`
	Winners     []DrawnWinner `json:"winners"`
}

func NewRaffleDrawnEvent(r *Raffle, winners []Winner, at time.Time) RaffleDrawnEvent {
	drawn := make([]DrawnWinner, 0, len(winners))
	for _, w := range winners {
		drawn = append(drawn, DrawnWinner{
			Tier:         w.Tier.String(),
			Position:     w.Position,
			TicketNumber: w.TicketNumber,
			OwnerName:    w.Owner.Name,
		})
	}
	return RaffleDrawnEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(r.ID()), 10),
			EventType:   EventTypeRaffleDrawn,
			OccurredAt:  at,
		},
		ProductName: r.ProductName(),
		Winners:     drawn,
	}
}
