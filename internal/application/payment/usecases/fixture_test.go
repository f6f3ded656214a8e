package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/modorifa/rifas/internal/application/payment/reconciliation"
	"github.com/modorifa/rifas/internal/application/payment/reservation"
	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/migration"
	"github.com/modorifa/rifas/internal/infrastructure/repository"
	"github.com/modorifa/rifas/internal/shared/db"
	"github.com/modorifa/rifas/internal/shared/keylock"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/textutil"
)

type fixture struct {
	raffles  *repository.RaffleRepository
	pool     *repository.TicketRepository
	payments *repository.PaymentRepository
	notifier *mockNotifier
	proofs   *mockProofStore
	locks    RaffleLocker
	tx       *db.TransactionManager

	submit *SubmitPaymentUseCase
	verify *VerifyPaymentUseCase
	reject *RejectPaymentUseCase
	remove *DeletePaymentUseCase
	get    *GetPaymentUseCase
	list   *ListPaymentsUseCase
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
		raffles:  repository.NewRaffleRepository(gdb),
		pool:     repository.NewTicketRepository(gdb),
		payments: repository.NewPaymentRepository(gdb),
		notifier: newMockNotifier(),
		proofs:   &mockProofStore{},
	}
	tx := db.NewTransactionManager(gdb)
	locks := keylock.New()
	f.locks, f.tx = locks, tx
	engine := reservation.NewEngine(f.raffles, f.pool, reservation.DefaultMaxAttempts, log)
	reconciler := reconciliation.NewReconciler(f.raffles, f.pool, f.payments, log)
	sanitizer := textutil.NewRenderer()

	f.submit = NewSubmitPaymentUseCase(f.raffles, f.payments, engine, fixedRate(40), f.proofs,
		&seqPaymentNos{}, locks, tx, f.notifier,
		ProofPolicy{MaxSizeBytes: 1024, AllowedMIME: []string{"image/png", "application/pdf"}}, log)
	f.verify = NewVerifyPaymentUseCase(f.payments, f.raffles, reconciler, locks, tx, f.notifier, sanitizer, log)
	f.reject = NewRejectPaymentUseCase(f.payments, reconciler, f.proofs, locks, tx, f.notifier, sanitizer, log)
	f.remove = NewDeletePaymentUseCase(f.payments, reconciler, f.proofs, locks, tx, f.notifier, log)
	f.get = NewGetPaymentUseCase(f.payments, log)
	f.list = NewListPaymentsUseCase(f.payments, log)
	return f
}

func (f *fixture) raffle(t *testing.T, total int) *raffle.Raffle {
	t.Helper()
	ctx := context.Background()
	rf, err := raffle.NewRaffle(raffle.NewRaffleParams{
		ProductName:  "Moto",
		UnitPrice:    sharedvo.NewMoney(500, sharedvo.CurrencyUSD),
		ExchangeRate: 40,
		TotalTickets: total,
	})
	require.NoError(t, err)
	require.NoError(t, f.raffles.Create(ctx, rf))
	require.NoError(t, f.pool.Initialize(ctx, rf.ID(), 0, total, rf.NumberWidth()))
	return rf
}

func (f *fixture) sold(t *testing.T, raffleID uint) int {
	t.Helper()
	rf, err := f.raffles.GetByID(context.Background(), raffleID)
	require.NoError(t, err)
	return rf.TicketsSold()
}

func submitCmd(raffleID uint, qty int, reference string) SubmitPaymentCommand {
	return SubmitPaymentCommand{
		RaffleID:  raffleID,
		Quantity:  qty,
		Amount:    float64(qty) * 5,
		Currency:  "usd",
		Method:    "zelle",
		Reference: reference,
		Buyer: BuyerInput{
			Name:     "Ana Perez",
			Email:    "Ana@Example.com",
			Phone:    "04121234567",
			IDType:   "v",
			IDNumber: "12345678",
		},
	}
}
