package models

import (
	"time"

	"gorm.io/datatypes"
)

type RaffleModel struct {
	ID                uint   `gorm:"primaryKey"`
	ProductName       string `gorm:"size:200;not null"`
	Description       string `gorm:"type:text"`
	ImageURL          string `gorm:"size:500"`
	UnitPriceCents    int64  `gorm:"not null"`
	ExchangeRate      float64
	TotalTickets      int    `gorm:"not null"`
	TicketsSold       int    `gorm:"not null"`
	NumberWidth       int    `gorm:"not null"`
	Status            string `gorm:"size:16;not null;index"`
	ManualOpenForSale bool   `gorm:"not null"`
	StartsAt          *time.Time
	EndsAt            *time.Time
	DrawAt            *time.Time
	DrawnAt           *time.Time
	Version           int `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (RaffleModel) TableName() string {
	return "raffles"
}

type RaffleWinnerModel struct {
	ID           uint   `gorm:"primaryKey"`
	RaffleID     uint   `gorm:"not null;index"`
	Tier         string `gorm:"size:32;not null"`
	Position     int    `gorm:"not null"`
	TicketID     uint   `gorm:"not null"`
	TicketNumber string `gorm:"size:8;not null"`
	// Owner is a JSON snapshot of the ticket owner at draw time.
	Owner     datatypes.JSON `gorm:"type:json"`
	DrawnAt   time.Time
	CreatedAt time.Time
}

func (RaffleWinnerModel) TableName() string {
	return "raffle_winners"
}

type ExchangeRateModel struct {
	ID         uint      `gorm:"primaryKey"`
	Value      float64   `gorm:"not null"`
	Source     string    `gorm:"size:64"`
	RecordedAt time.Time `gorm:"not null;index"`
}

func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}
