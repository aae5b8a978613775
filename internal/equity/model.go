package equity

import (
	"time"

	"gorm.io/gorm"
)

// EquityAllocation is a point-in-time snapshot of one user's proportional
// share. Rows are append-only: recalculating appends, never overwrites, and
// the newest row per (user, scope) is the current one.
type EquityAllocation struct {
	gorm.Model
	UserID          uint      `gorm:"not null;index" json:"userId"`
	Points          float64   `gorm:"not null" json:"points"`
	TotalPoints     float64   `gorm:"not null" json:"totalPoints"`
	SharesAllocated float64   `gorm:"not null" json:"sharesAllocated"` // percent, 4 decimals
	VestingStart    time.Time `gorm:"not null" json:"vestingStart"`
	CliffMonths     int       `gorm:"not null;default:0" json:"cliffMonths"`
	VestingMonths   int       `gorm:"not null;default:0" json:"vestingMonths"`
	ProjectID       *uint     `gorm:"index" json:"projectId"` // nil: company-wide
}

// Migrate creates the equity allocations table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&EquityAllocation{})
}
