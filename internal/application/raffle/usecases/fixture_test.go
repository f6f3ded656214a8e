package usecases

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/application/raffle/draw"
	"github.com/modorifa/rifas/internal/domain/payment"
	paymentvo "github.com/modorifa/rifas/internal/domain/payment/valueobjects"
	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/migration"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/keylock"
	"github.com/modorifa/rifas/internal/shared/logger"
)

type fixture struct {
	gdb        *gorm.DB
	raffles    *repository.RaffleRepository
	winners    *repository.WinnerRepository
	payments   *repository.PaymentRepository
	pool       *repository.TicketRepository
	tx         *db.TransactionManager
	locks      *keylock.Locker
	engine     *reservation.Engine
	reconciler *reconciliation.Reconciler
	notifier   *mockNotifier
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

	log := logger.NewNopLogger()
	f := &fixture{
		gdb:      gdb,
		raffles:  repository.NewRaffleRepository(gdb),
		winners:  repository.NewWinnerRepository(gdb),
		payments: repository.NewPaymentRepository(gdb),
		pool:     repository.NewTicketRepository(gdb),
		tx:       db.NewTransactionManager(gdb),
		locks:    keylock.New(),
		notifier: newMockNotifier(),
	}
	f.engine = reservation.NewEngine(f.raffles, f.pool, reservation.DefaultMaxAttempts, log)
	f.reconciler = reconciliation.NewReconciler(f.raffles, f.pool, f.payments, log)
	return f
}

func (f *fixture) createUseCase() *CreateRaffleUseCase {
	return NewCreateRaffleUseCase(f.raffles, f.pool, f.tx, logger.NewNopLogger())
}

func (f *fixture) drawUseCase(seed uint64) *DrawRaffleUseCase {
	selector := draw.NewSelector().WithSource(rand.NewPCG(seed, seed))
	return NewDrawRaffleUseCase(f.raffles, f.winners, f.pool, selector, f.locks, f.tx, f.notifier, logger.NewNopLogger())
}

func (f *fixture) raffle(t *testing.T, total int) *raffle.Raffle {
	t.Helper()
	res, err := f.createUseCase().Execute(context.Background(), CreateRaffleCommand{
		ProductName:  "Moto",
		UnitPrice:    5,
		ExchangeRate: 40,
		TotalTickets: total,
	})
	require.NoError(t, err)
	return res.Raffle
}

// sell submits a payment for qty tickets and verifies it when paid is set.
func (f *fixture) sell(t *testing.T, raffleID uint, qty int, paid bool) *payment.Payment {
	t.Helper()
	return f.sellWithProof(t, raffleID, qty, paid, "")
}

// sellWithProof is sell with a stored proof of payment attached.
func (f *fixture) sellWithProof(t *testing.T, raffleID uint, qty int, paid bool, proofKey string) *payment.Payment {
	t.Helper()
	f.seq++
	buyer := sharedvo.Buyer{Name: fmt.Sprintf("Buyer %d", f.seq), Email: "buyer@example.com", Phone: "0412"}
	p, err := payment.NewPayment(payment.NewPaymentParams{
		PaymentNo:    fmt.Sprintf("PAY-%d", f.seq),
		RaffleID:     raffleID,
		Buyer:        buyer,
		Quantity:     qty,
		Amount:       sharedvo.NewMoney(int64(qty)*500, sharedvo.CurrencyUSD),
		ExchangeRate: 40,
		Method:       paymentvo.PaymentMethodPagoMovil,
		Reference:    fmt.Sprintf("REF-%d", f.seq),
		ProofKey:     proofKey,
	})
	require.NoError(t, err)

	err = f.tx.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := f.payments.Create(ctx, p); err != nil {
			return err
		}
		claim, err := f.engine.Reserve(ctx, reservation.Request{RaffleID: raffleID, Quantity: qty, Owner: buyer, PaymentID: p.ID()})
		if err != nil {
			return err
		}
		if err := p.AssignNumbers(claim.Numbers); err != nil {
			return err
		}
		if err := f.payments.Update(ctx, p); err != nil {
			return err
		}
		if paid {
			_, err = f.reconciler.Apply(ctx, p, reconciliation.ActionVerify, "")
		}
		return err
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) reload(t *testing.T, id uint) *raffle.Raffle {
	t.Helper()
	rf, err := f.raffles.GetByID(context.Background(), id)
	require.NoError(t, err)
	return rf
}
