package phase

import "gorm.io/gorm"

// CompanyPhase is one ordered lifecycle stage of the company. The phase with
// the smallest sort order is "current"; phases are never advanced
// automatically from revenue.
type CompanyPhase struct {
	gorm.Model
	Name                     string   `gorm:"size:50;not null" json:"name"`
	EquityPoolPercent        *float64 `json:"equityPoolPercent"`
	EquityPoolQty            int      `gorm:"not null;default:1500" json:"equityPoolQty"`
	MonthlySalesTargetLabel  string   `json:"monthlySalesTargetLabel"`
	SalesWeightageMultiplier *float64 `json:"salesWeightageMultiplier"` // nil: no multiplier, use judgment
	NotionalSalaryNotes      string   `json:"notionalSalaryNotes"`
	SortOrder                int      `gorm:"not null;index" json:"sortOrder"`
}

// Current returns the phase with the smallest sort order, or nil for an
// empty list. Callers must pass the list already sorted ascending.
func Current(phases []CompanyPhase) *CompanyPhase {
	if len(phases) == 0 {
		return nil
	}
	return &phases[0]
}

// Migrate creates the company phases table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CompanyPhase{})
}
