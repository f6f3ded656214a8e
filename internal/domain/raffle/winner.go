package raffle

import (
	"time"

	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
)

// Winner is one selected ticket of a draw. Owner is a snapshot taken at draw
// time so later edits to the ticket do not alter the result.
type Winner struct {
	ID           uint
	RaffleID     uint
	Tier         vo.PrizeTier
	Position     int
	TicketID     uint
	TicketNumber string
	Owner        sharedvo.Buyer
	DrawnAt      time.Time
}

// TierRequest asks for Count winners of one tier.
type TierRequest struct {
	Tier  vo.PrizeTier
	Count int
}

// DefaultTiers is used when a draw is requested without tiers.
func DefaultTiers() []TierRequest {
	return []TierRequest{{Tier: vo.TierFirst, Count: 1}}
}
