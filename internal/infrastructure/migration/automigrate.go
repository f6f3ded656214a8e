package migration

import (
	"github.com/modorifa/rifas/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.RaffleModel{},
		&models.TicketModel{},
		&models.PaymentModel{},
		&models.RaffleWinnerModel{},
		&models.ExchangeRateModel{},
	}
}
