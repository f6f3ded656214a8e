package ticket

import (
	"strconv"
	"time"

	"github.com/modorifa/rifas/internal/domain/shared/events"
)

const EventTypeTicketStateChanged = "ticket.state_changed"

// TicketStateChangedEvent is published for admin driven transitions (void, restore).
type TicketStateChangedEvent struct {
	events.BaseEvent
	RaffleID uint   `json:"raffle_id"`
	Number   string `json:"number"`
	From     string `json:"from"`
	To       string `json:"to"`
}

func NewTicketStateChangedEvent(t *Ticket, from string, at time.Time) TicketStateChangedEvent {
	return TicketStateChangedEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(t.ID()), 10),
			EventType:   EventTypeTicketStateChanged,
			OccurredAt:  at,
		},
		RaffleID: t.RaffleID(),
		Number:   t.Number(),
		From:     from,
		To:       t.State().String(),
	}
}
