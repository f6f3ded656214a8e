// Package draw picks raffle winners among paid tickets.
package draw

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	vo "github.com/modorifa/rifas/internal/domain/raffle/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
)

// Select assigns winners tier by tier in prize order. A ticket wins at most
// once per call; when the pool runs dry later tiers get fewer winners.
// Requests naming the same tier twice are merged.
func Select(paid []*ticket.Ticket, tiers []raffle.TierRequest, rnd *rand.Rand, at time.Time) []raffle.Winner {
	counts := make(map[vo.PrizeTier]int, len(tiers))
	order := make([]vo.PrizeTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Count <= 0 {
			continue
		}
		if _, seen := counts[t.Tier]; !seen {
			order = append(order, t.Tier)
		}
		counts[t.Tier] += t.Count
	}
	vo.SortTiers(order)

	remaining := append([]*ticket.Ticket(nil), paid...)
	winners := make([]raffle.Winner, 0)
	for _, tier := range order {
		for pos := 1; pos <= counts[tier] && len(remaining) > 0; pos++ {
			i := rnd.IntN(len(remaining))
			tk := remaining[i]
			// swap-remove keeps the draw without replacement
			last := len(remaining) - 1
			remaining[i] = remaining[last]
			remaining = remaining[:last]

			w := raffle.Winner{
				RaffleID:     tk.RaffleID(),
				Tier:         tier,
				Position:     pos,
				TicketID:     tk.ID(),
				TicketNumber: tk.Number(),
				DrawnAt:      at,
			}
			if tk.Owner() != nil {
				w.Owner = *tk.Owner()
			}
			winners = append(winners, w)
		}
	}
	return winners
}

// Selector holds a shared random source for the draw use case.
type Selector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// WithSource replaces the random source. Tests use it for repeatable draws.
func (s *Selector) WithSource(src rand.Source) *Selector {
	s.mu.Lock()
	s.rnd = rand.New(src)
	s.mu.Unlock()
	return s
}

func (s *Selector) Select(paid []*ticket.Ticket, tiers []raffle.TierRequest, at time.Time) []raffle.Winner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Select(paid, tiers, s.rnd, at)
}
