package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/modorifa/rifas/internal/domain/raffle"
	sharedvo "github.com/modorifa/rifas/internal/domain/shared/valueobjects"
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection so every statement sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.RaffleModel{},
		&models.TicketModel{},
		&models.PaymentModel{},
		&models.RaffleWinnerModel{},
		&models.ExchangeRateModel{},
	))
	return db
}

func createTestRaffle(t *testing.T, db *gorm.DB, total int) *raffle.Raffle {
	t.Helper()
	rf, err := raffle.NewRaffle(raffle.NewRaffleParams{
		ProductName:  "Moto",
		UnitPrice:    sharedvo.NewMoney(500, sharedvo.CurrencyUSD),
		ExchangeRate: 36.5,
		TotalTickets: total,
	})
	require.NoError(t, err)
	require.NoError(t, NewRaffleRepository(db).Create(context.Background(), rf))
	require.NoError(t, NewTicketRepository(db).Initialize(context.Background(), rf.ID(), 0, total, rf.NumberWidth()))
	return rf
}

func testBuyer() sharedvo.Buyer {
	return sharedvo.Buyer{Name: "Ana Perez", Email: "ana@example.com", Phone: "04121234567", IDType: "V", IDNumber: "12345678"}
}
