package revenue

import (
	"time"

	"gorm.io/gorm"
)

// Revenue entry types.
const (
	TypeMonthlyRevenue = "MONTHLY_REVENUE"
	TypeOneTimeRevenue = "ONE_TIME_REVENUE"
	TypeExpense        = "EXPENSE"
)

// ProjectRevenueEntry is one revenue/expense ledger line for a project.
type ProjectRevenueEntry struct {
	gorm.Model
	ProjectID   uint      `gorm:"not null;index" json:"projectId"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PeriodMonth *string   `gorm:"size:7" json:"periodMonth"` // YYYY-MM
	EntryDate   time.Time `gorm:"not null" json:"entryDate"`
	Notes       string    `json:"notes"`
}

// Migrate creates the revenue entries table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ProjectRevenueEntry{})
}
