package valueobjects

import "fmt"

type TicketState string

const (
	StateAvailable TicketState = "available"
	StatePending   TicketState = "pending"
	StatePaid      TicketState = "paid"
	StateVoided    TicketState = "voided"
)

var validTicketStates = map[TicketState]bool{
	StateAvailable: true,
	StatePending:   true,
	StatePaid:      true,
	StateVoided:    true,
}

var ticketStateTransitions = map[TicketState][]TicketState{
	StateAvailable: {
		StatePending,
		StateVoided,
	},
	StatePending: {
		StatePaid,
		StateAvailable,
	},
	StatePaid: {
		StateAvailable,
	},
	StateVoided: {
		StateAvailable,
	},
}

// ClaimedStates are the states that count toward a raffle's tickets sold.
var ClaimedStates = []TicketState{StatePending, StatePaid}

func (s TicketState) String() string {
	return string(s)
}

func (s TicketState) IsValid() bool {
	return validTicketStates[s]
}

func (s TicketState) CanTransitionTo(next TicketState) bool {
	for _, allowed := range ticketStateTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TicketState) IsAvailable() bool {
	return s == StateAvailable
}

// IsClaimed reports whether the ticket is held by a payment.
func (s TicketState) IsClaimed() bool {
	return s == StatePending || s == StatePaid
}

func NewTicketState(s string) (TicketState, error) {
	ts := TicketState(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket state: %s", s)
	}
	return ts, nil
}
