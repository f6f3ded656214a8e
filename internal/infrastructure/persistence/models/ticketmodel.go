package models

import "time"

// TicketModel is one row per numbered ticket. Owner columns are blank while
// the ticket is available and are written in the same UPDATE as state and
// payment_id.
type TicketModel struct {
	ID            uint   `gorm:"primaryKey"`
	RaffleID      uint   `gorm:"not null;uniqueIndex:idx_tickets_raffle_number,priority:1;index:idx_tickets_raffle_state,priority:1"`
	Number        string `gorm:"size:8;not null;uniqueIndex:idx_tickets_raffle_number,priority:2"`
	State         string `gorm:"size:16;not null;index:idx_tickets_raffle_state,priority:2"`
	PaymentID     *uint  `gorm:"index"`
	OwnerName     string `gorm:"size:120"`
	OwnerEmail    string `gorm:"size:190;index"`
	OwnerPhone    string `gorm:"size:40"`
	OwnerIDType   string `gorm:"size:1"`
	OwnerIDNumber string `gorm:"size:30"`
	PurchasedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TicketModel) TableName() string {
	return "tickets"
}
