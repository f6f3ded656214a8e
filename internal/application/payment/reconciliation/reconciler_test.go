package reconciliation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/domain/payment"
	paymentvo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	vo "github.com/modorifa/rifas/internal/domain/ticket/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/migration"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/errors"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type fixture struct {
	raffles    *repository.RaffleRepository
	pool       *repository.TicketRepository
	payments   *repository.PaymentRepository
	tx         *db.TransactionManager
	engine     *reservation.Engine
	reconciler *Reconciler
	seq        int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(migration.AutoMigrateModels()...))

	f := &fixture{
		raffles:  repository.NewRaffleRepository(gdb),
		pool:     repository.NewTicketRepository(gdb),
		payments: repository.NewPaymentRepository(gdb),
		tx:       db.NewTransactionManager(gdb),
	}
	f.engine = reservation.NewEngine(f.raffles, f.pool, reservation.DefaultMaxAttempts, logger.NewNopLogger())
	f.reconciler = NewReconciler(f.raffles, f.pool, f.payments, logger.NewNopLogger())
	return f
}

func (f *fixture) raffle(t *testing.T, total int) *raffle.Raffle {
	t.Helper()
	ctx := context.Background()
	rf, err := raffle.NewRaffle(raffle.NewRaffleParams{
		ProductName:  "Moto",
		UnitPrice:    sharedvo.NewMoney(100, sharedvo.CurrencyUSD),
		ExchangeRate: 40,
		TotalTickets: total,
	})
	require.NoError(t, err)
	require.NoError(t, f.raffles.Create(ctx, rf))
	require.NoError(t, f.pool.Initialize(ctx, rf.ID(), 0, total, rf.NumberWidth()))
	return rf
}

// submit creates a pending payment holding qty claimed tickets.
func (f *fixture) submit(t *testing.T, rf *raffle.Raffle, qty int) *payment.Payment {
	t.Helper()
	f.seq++
	owner := sharedvo.Buyer{Name: "Ana", Email: "ana@example.com", Phone: "0412"}
	p, err := payment.NewPayment(payment.NewPaymentParams{
		PaymentNo:    fmt.Sprintf("PAY-%d", f.seq),
		RaffleID:     rf.ID(),
		Buyer:        owner,
		Quantity:     qty,
		Amount:       payment.TotalFor(rf.UnitPrice(), qty),
		ExchangeRate: rf.ExchangeRate(),
		Method:       paymentvo.PaymentMethodZelle,
		Reference:    fmt.Sprintf("REF-%d", f.seq),
	})
	require.NoError(t, err)

	err = f.tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := f.payments.Create(ctx, p); err != nil {
			return err
		}
		claim, err := f.engine.Reserve(ctx, reservation.Request{
			RaffleID:  rf.ID(),
			Quantity:  qty,
			Owner:     owner,
			PaymentID: p.ID(),
		})
		if err != nil {
			return err
		}
		if err := p.AssignNumbers(claim.Numbers); err != nil {
			return err
		}
		return f.payments.Update(ctx, p)
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) apply(id uint, action Action) (*Outcome, error) {
	var out *Outcome
	err := f.tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		p, err := f.payments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out, err = f.reconciler.Apply(ctx, p, action, "checked")
		return err
	})
	return out, err
}

func (f *fixture) sold(t *testing.T, raffleID uint) int {
	t.Helper()
	rf, err := f.raffles.GetByID(context.Background(), raffleID)
	require.NoError(t, err)
	return rf.TicketsSold()
}

func (f *fixture) states(t *testing.T, raffleID uint, numbers []string) []vo.TicketState {
	t.Helper()
	out := make([]vo.TicketState, 0, len(numbers))
	for _, n := range numbers {
		tk, err := f.pool.GetByNumber(context.Background(), raffleID, n)
		require.NoError(t, err)
		out = append(out, tk.State())
	}
	return out
}

func TestReconciler_VerifyRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rf := f.raffle(t, 50)
	p := f.submit(t, rf, 4)

	out, err := f.apply(p.ID(), ActionVerify)
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Marked)
	assert.Equal(t, paymentvo.PaymentStatusVerified, out.Payment.Status())

	stored, err := f.payments.GetByID(ctx, p.ID())
	require.NoError(t, err)
	assert.Equal(t, paymentvo.PaymentStatusVerified, stored.Status())
	assert.Equal(t, "checked", stored.AdminNotes())
	assert.NotNil(t, stored.ReviewedAt())

	for _, n := range p.AssignedNumbers() {
		tk, err := f.pool.GetByNumber(ctx, rf.ID(), n)
		require.NoError(t, err)
		assert.Equal(t, vo.StatePaid, tk.State())
		require.NotNil(t, tk.PaymentID())
		assert.Equal(t, p.ID(), *tk.PaymentID())
	}
	assert.Equal(t, 4, f.sold(t, rf.ID()))
}

func TestReconciler_RejectTwice(t *testing.T) {
	f := newFixture(t)
	rf := f.raffle(t, 50)
	p := f.submit(t, rf, 3)
	other := f.submit(t, rf, 2)
	require.Equal(t, 5, f.sold(t, rf.ID()))

	out, err := f.apply(p.ID(), ActionReject)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Released)
	assert.Equal(t, 2, f.sold(t, rf.ID()))
	for _, s := range f.states(t, rf.ID(), p.AssignedNumbers()) {
		assert.Equal(t, vo.StateAvailable, s)
	}

	_, err = f.apply(p.ID(), ActionReject)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidStateTransitionError(err))
	assert.Equal(t, 2, f.sold(t, rf.ID()))
	for _, s := range f.states(t, rf.ID(), other.AssignedNumbers()) {
		assert.Equal(t, vo.StatePending, s)
	}
}

func TestReconciler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		before       Action
		wantReleased int64
		wantSold     int
	}{
		{"pending", "", 3, 0},
		{"verified", ActionVerify, 3, 0},
		{"rejected", ActionReject, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rf := f.raffle(t, 20)
			p := f.submit(t, rf, 3)
			if tt.before != "" {
				_, err := f.apply(p.ID(), tt.before)
				require.NoError(t, err)
			}

			out, err := f.apply(p.ID(), ActionDelete)
			require.NoError(t, err)
			assert.True(t, out.Deleted)
			assert.Equal(t, tt.wantReleased, out.Released)
			assert.Equal(t, tt.wantSold, f.sold(t, rf.ID()))

			_, err = f.payments.GetByID(context.Background(), p.ID())
			assert.True(t, errors.IsNotFoundError(err))

			available, err := f.pool.CountByStates(context.Background(), rf.ID(), vo.StateAvailable)
			require.NoError(t, err)
			assert.Equal(t, int64(20), available)
		})
	}
}

func TestReconciler_VerifyAfterReject(t *testing.T) {
	f := newFixture(t)
	rf := f.raffle(t, 20)
	p := f.submit(t, rf, 2)

	_, err := f.apply(p.ID(), ActionReject)
	require.NoError(t, err)

	_, err = f.apply(p.ID(), ActionVerify)
	assert.True(t, errors.IsInvalidStateTransitionError(err))
	for _, s := range f.states(t, rf.ID(), p.AssignedNumbers()) {
		assert.Equal(t, vo.StateAvailable, s)
	}
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		action Action
		status paymentvo.PaymentStatus
		want   bool
	}{
		{ActionVerify, paymentvo.PaymentStatusPending, true},
		{ActionVerify, paymentvo.PaymentStatusVerified, false},
		{ActionVerify, paymentvo.PaymentStatusRejected, false},
		{ActionReject, paymentvo.PaymentStatusPending, true},
		{ActionReject, paymentvo.PaymentStatusVerified, false},
		{ActionReject, paymentvo.PaymentStatusRejected, false},
		{ActionDelete, paymentvo.PaymentStatusPending, true},
		{ActionDelete, paymentvo.PaymentStatusVerified, true},
		{ActionDelete, paymentvo.PaymentStatusRejected, true},
		{Action("refund"), paymentvo.PaymentStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.action, tt.status))
		})
	}
}
