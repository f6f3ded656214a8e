package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentModel struct {
	ID               uint    `gorm:"primaryKey"`
	PaymentNo        string  `gorm:"uniqueIndex;size:32;not null"`
	RaffleID         uint    `gorm:"index:idx_payments_raffle_status,priority:1;not null"`
	BuyerName        string  `gorm:"size:120;not null"`
	BuyerEmail       string  `gorm:"size:190;index;not null"`
	BuyerPhone       string  `gorm:"size:40;not null"`
	BuyerIDType      string  `gorm:"size:1"`
	BuyerIDNumber    string  `gorm:"size:30"`
	Quantity         int     `gorm:"not null"`
	Amount           int64   `gorm:"not null"`
	Currency         string  `gorm:"size:3;not null"`
	AmountUSD        int64   `gorm:"column:amount_usd;not null"`
	AmountVES        int64   `gorm:"column:amount_ves;not null"`
	ExchangeRateUsed float64 `gorm:"not null"`
	Method           string  `gorm:"size:20;not null"`
	// NULL references do not collide, so the unique index only binds real ones.
	Reference       *string        `gorm:"uniqueIndex;size:120"`
	ProofKey        *string        `gorm:"size:255"`
	AssignedNumbers datatypes.JSON `gorm:"type:json"`
	Status          string         `gorm:"size:20;not null;index:idx_payments_raffle_status,priority:2"`
	AdminNotes      string         `gorm:"type:text"`
	PaidAt          time.Time      `gorm:"not null"`
	ReviewedAt      *time.Time
	Version         int `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
