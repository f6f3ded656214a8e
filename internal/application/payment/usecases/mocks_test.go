package usecases

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/domain/payment"
	"github.com/modorifa/rifas/internal/domain/raffle"
	"github.com/modorifa/rifas/internal/domain/shared/events"
)

type mockNotifier struct {
	mu        sync.Mutex
	submitted []string
	confirmed []string
	released  map[string]int64
	events    []events.DomainEvent
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{released: make(map[string]int64)}
}

func (m *mockNotifier) PaymentSubmitted(p *payment.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, p.PaymentNo())
}

func (m *mockNotifier) TicketsConfirmed(p *payment.Payment, rf *raffle.Raffle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmed = append(m.confirmed, p.PaymentNo())
}

func (m *mockNotifier) PaymentReleased(p *payment.Payment, eventType string, released int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released[eventType+":"+p.PaymentNo()] = released
}

func (m *mockNotifier) RaffleDrawn(rf *raffle.Raffle, winners []raffle.Winner) {}

func (m *mockNotifier) Publish(event events.DomainEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

type mockProofStore struct {
	SaveFunc   func(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)
	DeleteFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockProofStore) Save(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, filename, contentType, body, size)
	}
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

type seqPaymentNos struct {
	n atomic.Int64
}

func (s *seqPaymentNos) Generate(prefix string) string {
	return fmt.Sprintf("%s%06d", prefix, s.n.Add(1))
}

type fixedRate float64

func (r fixedRate) Resolve(ctx context.Context, preferred float64) (float64, error) {
	if preferred > 0 {
		return preferred, nil
	}
	return float64(r), nil
}

type mockReserver struct {
	ReserveFunc func(ctx context.Context, req reservation.Request) (*reservation.Claim, error)
}

func (m *mockReserver) Reserve(ctx context.Context, req reservation.Request) (*reservation.Claim, error) {
	return m.ReserveFunc(ctx, req)
}

// countingLocker wraps a RaffleLocker and tracks how many locks are held.
type countingLocker struct {
	inner RaffleLocker
	held  atomic.Int32
}

func (l *countingLocker) LockID(id uint) func() {
	unlock := l.inner.LockID(id)
	l.held.Add(1)
	return func() {
		l.held.Add(-1)
		unlock()
	}
}
