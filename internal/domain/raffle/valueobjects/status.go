package valueobjects

import "fmt"

type RaffleStatus string

const (
	StatusActive   RaffleStatus = "active"
	StatusPaused   RaffleStatus = "paused"
	StatusFinished RaffleStatus = "finished"
	StatusDrawn    RaffleStatus = "drawn"
)

var validRaffleStatuses = map[RaffleStatus]bool{
	StatusActive:   true,
	StatusPaused:   true,
	StatusFinished: true,
	StatusDrawn:    true,
}

// drawn is reachable only through the draw itself and is terminal.
var raffleStatusTransitions = map[RaffleStatus][]RaffleStatus{
	StatusActive: {
		StatusPaused,
		StatusFinished,
	},
	StatusPaused: {
		StatusActive,
		StatusFinished,
	},
	StatusFinished: {
		StatusActive,
	},
}

func (s RaffleStatus) String() string {
	return string(s)
}

func (s RaffleStatus) IsValid() bool {
	return validRaffleStatuses[s]
}

func (s RaffleStatus) CanTransitionTo(next RaffleStatus) bool {
	for _, allowed := range raffleStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RaffleStatus) IsActive() bool {
	return s == StatusActive
}

func (s RaffleStatus) IsDrawn() bool {
	return s == StatusDrawn
}

func NewRaffleStatus(s string) (RaffleStatus, error) {
	rs := RaffleStatus(s)
	if !rs.IsValid() {
		return "", fmt.Errorf("invalid raffle status: %s", s)
	}
	return rs, nil
}
