package sales

import (
	"math"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/project"
	"gorm.io/gorm"
)

// NotionalRatePerHour converts notional income to notional hours. Shared
// with the dashboard's notional salary math.
const NotionalRatePerHour = 1500.0

// Commission rates: 12% while the project is in its first 12 calendar
// months, 5% from the second year on.
const (
	FirstYearPercent  = 12.0
	LaterYearsPercent = 5.0
	FirstYearMonths   = 12
)

// Tolerance accepted when allocation percentages are summed against 100.
const AllocationSumTolerance = 0.01

// EffectiveSalesAmount is the commission-rate-adjusted portion of a sale.
// The year boundary uses whole calendar months between the project start and
// the entry date, not elapsed days: month 0-11 is first year.
func EffectiveSalesAmount(salesAmount float64, entryDate, projectStart time.Time) float64 {
	monthsDiff := (entryDate.Year()-projectStart.Year())*12 + int(entryDate.Month()) - int(projectStart.Month())
	percent := LaterYearsPercent
	if monthsDiff < FirstYearMonths {
		percent = FirstYearPercent
	}
	return salesAmount * percent / 100
}

// ValidateAllocations rejects splits whose percentages do not sum to 100
// within tolerance. Invalid splits are never normalized.
func ValidateAllocations(allocations []AllocationDTO) error {
	sum := 0.0
	for _, a := range allocations {
		sum += a.ContributionPercent
	}
	if math.Abs(sum-100) > AllocationSumTolerance {
		return apperrors.Validation("sum of contribution percentages must equal 100")
	}
	return nil
}

// UserDerived is one founder's sales-derived notional income and hours.
type UserDerived struct {
	Notional float64 `json:"notional"`
	Hours    float64 `json:"hours"`
}

// DerivedTotals aggregates sales-derived notional and hours per founder.
type DerivedTotals struct {
	ByUser        map[uint]UserDerived `json:"byUser"`
	TotalNotional float64              `json:"totalNotional"`
	TotalHours    float64              `json:"totalHours"`
}

// Service computes sales attribution over persisted entries.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// DerivedTotals distributes every entry's effective amount across its
// allocations: notional = effective * pct/100 * phaseMultiplier, hours =
// notional / NotionalRatePerHour. A phase without a multiplier uses 1.
func (s *Service) DerivedTotals(phaseMultiplier float64) (DerivedTotals, error) {
	multiplier := phaseMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	var entries []SalesEntry
	if err := s.DB.Preload("Allocations").Find(&entries).Error; err != nil {
		return DerivedTotals{}, err
	}
	startDates := map[uint]time.Time{}
	for _, e := range entries {
		if _, ok := startDates[e.ProjectID]; ok {
			continue
		}
		var p project.Project
		if err := s.DB.Select("id", "start_date").First(&p, e.ProjectID).Error; err != nil {
			return DerivedTotals{}, err
		}
		startDates[e.ProjectID] = p.StartDate
	}
	totals := DerivedTotals{ByUser: map[uint]UserDerived{}}
	for _, e := range entries {
		effective := EffectiveSalesAmount(e.SalesAmount, e.EntryDate, startDates[e.ProjectID])
		for _, a := range e.Allocations {
			notional := effective * (a.ContributionPercent / 100) * multiplier
			hours := notional / NotionalRatePerHour
			cur := totals.ByUser[a.UserID]
			cur.Notional += notional
			cur.Hours += hours
			totals.ByUser[a.UserID] = cur
			totals.TotalNotional += notional
			totals.TotalHours += hours
		}
	}
	return totals, nil
}
