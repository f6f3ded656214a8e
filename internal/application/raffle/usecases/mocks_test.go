package usecases

import (
	"context"
	"io"
	"sync"

	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/events"
)

type mockNotifier struct {
	mu    sync.Mutex
	drawn map[uint][]raffle.Winner
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{drawn: make(map[uint][]raffle.Winner)}
}

func (m *mockNotifier) PaymentSubmitted(p *payment.Payment) {}

func (m *mockNotifier) TicketsConfirmed(p *payment.Payment, rf *raffle.Raffle) {}

func (m *mockNotifier) PaymentReleased(p *payment.Payment, eventType string, released int64) {}

func (m *mockNotifier) RaffleDrawn(rf *raffle.Raffle, winners []raffle.Winner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawn[rf.ID()] = winners
}

func (m *mockNotifier) Publish(event events.DomainEvent) {}

type mockProofStore struct {
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockProofStore) Save(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	return "proofs/" + filename, nil
}

func (m *mockProofStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *mockProofStore) URL(key string) string {
	return "https://files.example.com/" + key
}

func (m *mockProofStore) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
