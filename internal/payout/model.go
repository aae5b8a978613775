package payout

import (
	"time"

	"gorm.io/gorm"
)

// Payout types.
const (
	TypeHourly = "HOURLY"
	TypeProfit = "PROFIT"
)

// Payout statuses. Normal flow is PENDING -> EXECUTED (or
// DEFERRED_TO_EQUITY); reversals are not engine-enforced.
const (
	StatusPending          = "PENDING"
	StatusExecuted         = "EXECUTED"
	StatusDeferredToEquity = "DEFERRED_TO_EQUITY"
	StatusCancelled        = "CANCELLED"
)

// Payout is one compensation disbursement record. The amount is immutable
// once created.
type Payout struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        string    `gorm:"size:10;not null" json:"type"`
	Status      string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	PeriodStart time.Time `gorm:"not null" json:"periodStart"`
	PeriodEnd   time.Time `gorm:"not null" json:"periodEnd"`
	Date        time.Time `gorm:"not null" json:"date"`
	Notes       string    `json:"notes"`
}

// Migrate creates the payouts table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payout{})
}
