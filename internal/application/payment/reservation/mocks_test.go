package reservation

import (
	"context"
	"time"

	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/domain/ticket"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
)

type mockRaffleRepository struct {
	GetByIDForUpdateFunc     func(ctx context.Context, id uint) (*raffle.Raffle, error)
	IncrementTicketsSoldFunc func(ctx context.Context, id uint, n int) (bool, error)
}

func (m *mockRaffleRepository) Create(ctx context.Context, r *raffle.Raffle) error { return nil }
func (m *mockRaffleRepository) Update(ctx context.Context, r *raffle.Raffle) error { return nil }
func (m *mockRaffleRepository) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockRaffleRepository) GetByID(ctx context.Context, id uint) (*raffle.Raffle, error) {
	return m.GetByIDForUpdate(ctx, id)
}

func (m *mockRaffleRepository) GetByIDForUpdate(ctx context.Context, id uint) (*raffle.Raffle, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRaffleRepository) List(ctx context.Context, filter raffle.RaffleFilter) ([]*raffle.Raffle, int64, error) {
	return nil, 0, nil
}

func (m *mockRaffleRepository) IncrementTicketsSold(ctx context.Context, id uint, n int) (bool, error) {
	if m.IncrementTicketsSoldFunc != nil {
		return m.IncrementTicketsSoldFunc(ctx, id, n)
	}
	return true, nil
}

func (m *mockRaffleRepository) DecrementTicketsSold(ctx context.Context, id uint, n int) error {
	return nil
}

func (m *mockRaffleRepository) SetTicketsSold(ctx context.Context, id uint, n int) error { return nil }

func (m *mockRaffleRepository) TicketsSoldCounters(ctx context.Context) (map[uint]int, error) {
	return nil, nil
}

type mockPool struct {
	CountByStatesFunc    func(ctx context.Context, raffleID uint, states ...vo.TicketState) (int64, error)
	ListAvailableIDsFunc func(ctx context.Context, raffleID uint) ([]uint, error)
	ClaimFunc            func(ctx context.Context, raffleID uint, ids []uint, paymentID uint) (int64, error)
	ReleaseFunc          func(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error)
	NumbersByIDsFunc     func(ctx context.Context, ids []uint) ([]string, error)
}

func (m *mockPool) Initialize(ctx context.Context, raffleID uint, from, to, width int) error {
	return nil
}

func (m *mockPool) Claim(ctx context.Context, raffleID uint, ids []uint, paymentID uint, owner sharedvo.Buyer, at time.Time) (int64, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, raffleID, ids, paymentID)
	}
	return int64(len(ids)), nil
}

func (m *mockPool) MarkPaid(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error) {
	return int64(len(numbers)), nil
}

func (m *mockPool) Release(ctx context.Context, raffleID uint, numbers []string, paymentID uint) (int64, error) {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, raffleID, numbers, paymentID)
	}
	return int64(len(numbers)), nil
}

func (m *mockPool) TransitionState(ctx context.Context, ticketID uint, from, to vo.TicketState) (bool, error) {
	return true, nil
}

func (m *mockPool) CountByStates(ctx context.Context, raffleID uint, states ...vo.TicketState) (int64, error) {
	if m.CountByStatesFunc != nil {
		return m.CountByStatesFunc(ctx, raffleID, states...)
	}
	return 0, nil
}

func (m *mockPool) CountClaimedByRaffle(ctx context.Context) (map[uint]int64, error) {
	return nil, nil
}

func (m *mockPool) ListAvailableIDs(ctx context.Context, raffleID uint) ([]uint, error) {
	if m.ListAvailableIDsFunc != nil {
		return m.ListAvailableIDsFunc(ctx, raffleID)
	}
	return nil, nil
}

func (m *mockPool) NumbersByIDs(ctx context.Context, ids []uint) ([]string, error) {
	if m.NumbersByIDsFunc != nil {
		return m.NumbersByIDsFunc(ctx, ids)
	}
	numbers := make([]string, len(ids))
	for i, id := range ids {
		numbers[i] = ticket.FormatNumber(int(id), 2)
	}
	return numbers, nil
}

func (m *mockPool) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockPool) GetByNumber(ctx context.Context, raffleID uint, number string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockPool) ListByBuyerEmail(ctx context.Context, email string, raffleID *uint) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockPool) ListPaid(ctx context.Context, raffleID uint) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockPool) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockPool) DeleteByRaffle(ctx context.Context, raffleID uint) error { return nil }
