package sales

import (
	"time"

	"gorm.io/gorm"
)

// SalesEntry is a recorded sale against a project. Allocations split the
// sale's commission across founders and must sum to 100%.
type SalesEntry struct {
	gorm.Model
	ProjectID   uint              `gorm:"not null;index" json:"projectId"`
	EntryDate   time.Time         `gorm:"not null" json:"entryDate"`
	SalesAmount float64           `gorm:"not null" json:"salesAmount"`
	PeriodMonth *string           `gorm:"size:7" json:"periodMonth"` // YYYY-MM
	Notes       string            `json:"notes"`
	Allocations []SalesAllocation `gorm:"foreignKey:SalesEntryID;constraint:OnDelete:CASCADE" json:"allocations"`
}

// SalesAllocation attributes a percentage of one sale to one founder.
type SalesAllocation struct {
	gorm.Model
	SalesEntryID        uint    `gorm:"not null;index" json:"salesEntryId"`
	UserID              uint    `gorm:"not null;index" json:"userId"`
	ContributionPercent float64 `gorm:"not null" json:"contributionPercent"`
}

// Migrate creates the sales tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SalesEntry{}, &SalesAllocation{})
}
