package sales_test

import (
	"testing"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/sales"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, user.Migrate(db))
	assert.NoError(t, project.Migrate(db))
	assert.NoError(t, sales.Migrate(db))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveSalesAmountYearBoundary(t *testing.T) {
	start := date(2024, time.January, 15)

	// month 0 and month 11 are still the first year: 12%
	assert.Equal(t, 12000.0, sales.EffectiveSalesAmount(100000, date(2024, time.January, 20), start))
	assert.Equal(t, 12000.0, sales.EffectiveSalesAmount(100000, date(2024, time.December, 10), start))

	// month 12 onward: 5%
	assert.Equal(t, 5000.0, sales.EffectiveSalesAmount(100000, date(2025, time.January, 5), start))
	assert.Equal(t, 5000.0, sales.EffectiveSalesAmount(100000, date(2026, time.June, 1), start))
}

func TestEffectiveSalesAmountUsesCalendarMonthsNotDays(t *testing.T) {
	start := date(2024, time.January, 31)

	// 2025-01-01 is 12 calendar months after 2024-01, despite being
	// less than 365 days after the start date
	assert.Equal(t, 5000.0, sales.EffectiveSalesAmount(100000, date(2025, time.January, 1), start))
}

func TestValidateAllocations(t *testing.T) {
	assert.NoError(t, sales.ValidateAllocations([]sales.AllocationDTO{
		{UserID: 1, ContributionPercent: 100},
	}))
	assert.NoError(t, sales.ValidateAllocations([]sales.AllocationDTO{
		{UserID: 1, ContributionPercent: 50},
		{UserID: 2, ContributionPercent: 50.005},
	}))

	err := sales.ValidateAllocations([]sales.AllocationDTO{
		{UserID: 1, ContributionPercent: 50},
		{UserID: 2, ContributionPercent: 49.5},
	})
	assert.True(t, apperrors.IsValidation(err))

	err = sales.ValidateAllocations([]sales.AllocationDTO{
		{UserID: 1, ContributionPercent: 90},
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestDerivedTotalsSplitsByAllocation(t *testing.T) {
	db := setupDB(t)
	service := sales.NewService(db)

	p := project.Project{Name: "Solar", OwnerID: 1, StartDate: date(2024, time.January, 1)}
	assert.NoError(t, db.Create(&p).Error)
	entry := sales.SalesEntry{
		ProjectID:   p.ID,
		EntryDate:   date(2024, time.March, 1),
		SalesAmount: 100000,
		Allocations: []sales.SalesAllocation{
			{UserID: 1, ContributionPercent: 60},
			{UserID: 2, ContributionPercent: 40},
		},
	}
	assert.NoError(t, db.Create(&entry).Error)

	totals, err := service.DerivedTotals(2)
	assert.NoError(t, err)

	// effective = 100000 * 12% = 12000, doubled by the phase multiplier
	assert.Equal(t, 14400.0, totals.ByUser[1].Notional)
	assert.Equal(t, 9.6, totals.ByUser[1].Hours)
	assert.Equal(t, 9600.0, totals.ByUser[2].Notional)
	assert.Equal(t, 6.4, totals.ByUser[2].Hours)
	assert.Equal(t, 24000.0, totals.TotalNotional)
	assert.Equal(t, 16.0, totals.TotalHours)
}

func TestDerivedTotalsZeroMultiplierMeansOne(t *testing.T) {
	db := setupDB(t)
	service := sales.NewService(db)

	p := project.Project{Name: "Wind", OwnerID: 1, StartDate: date(2024, time.January, 1)}
	assert.NoError(t, db.Create(&p).Error)
	entry := sales.SalesEntry{
		ProjectID:   p.ID,
		EntryDate:   date(2024, time.February, 1),
		SalesAmount: 50000,
		Allocations: []sales.SalesAllocation{{UserID: 1, ContributionPercent: 100}},
	}
	assert.NoError(t, db.Create(&entry).Error)

	totals, err := service.DerivedTotals(0)
	assert.NoError(t, err)
	assert.Equal(t, 6000.0, totals.TotalNotional)
	assert.Equal(t, 4.0, totals.TotalHours)
}

func TestDerivedTotalsEmpty(t *testing.T) {
	service := sales.NewService(setupDB(t))

	totals, err := service.DerivedTotals(1)
	assert.NoError(t, err)
	assert.Empty(t, totals.ByUser)
	assert.Equal(t, 0.0, totals.TotalNotional)
}
