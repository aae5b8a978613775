package equity_test

import (
	"testing"
	"time"

	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
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
	assert.NoError(t, contribution.Migrate(db))
	assert.NoError(t, equity.Migrate(db))
	return db
}

func seedContribution(t *testing.T, db *gorm.DB, userID, projectID uint, points float64) {
	t.Helper()
	assert.NoError(t, db.Create(&contribution.Contribution{
		UserID:    userID,
		ProjectID: projectID,
		Type:      contribution.TypeOther,
		Points:    points,
		Date:      time.Now(),
	}).Error)
}

func TestCalculateAndAllocateProportionalShares(t *testing.T) {
	db := setupDB(t)
	service := equity.NewService(db)

	seedContribution(t, db, 1, 1, 1)
	seedContribution(t, db, 2, 1, 2)

	allocations, err := service.CalculateAndAllocate(nil, time.Now(), 12, 48)
	assert.NoError(t, err)
	assert.Len(t, allocations, 2)

	assert.Equal(t, uint(1), allocations[0].UserID)
	assert.Equal(t, 33.3333, allocations[0].SharesAllocated)
	assert.Equal(t, 3.0, allocations[0].TotalPoints)
	assert.Equal(t, uint(2), allocations[1].UserID)
	assert.Equal(t, 66.6667, allocations[1].SharesAllocated)
	assert.Equal(t, 12, allocations[0].CliffMonths)
	assert.Equal(t, 48, allocations[0].VestingMonths)
}

func TestCalculateAndAllocateZeroTotalYieldsEmpty(t *testing.T) {
	service := equity.NewService(setupDB(t))

	allocations, err := service.CalculateAndAllocate(nil, time.Now(), 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, allocations)
}

func TestAllocationsAreAppendOnly(t *testing.T) {
	db := setupDB(t)
	service := equity.NewService(db)

	seedContribution(t, db, 1, 1, 10)
	_, err := service.CalculateAndAllocate(nil, time.Now(), 0, 0)
	assert.NoError(t, err)

	seedContribution(t, db, 2, 1, 30)
	_, err = service.CalculateAndAllocate(nil, time.Now(), 0, 0)
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, db.Model(&equity.EquityAllocation{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	timeline, err := service.VestingTimeline(1)
	assert.NoError(t, err)
	assert.Len(t, timeline, 2)

	// the newest snapshot per user wins
	shares, err := service.LatestCompanyShares()
	assert.NoError(t, err)
	assert.Equal(t, 25.0, shares[1])
	assert.Equal(t, 75.0, shares[2])
}

func TestCapTableScopesNeverMix(t *testing.T) {
	db := setupDB(t)
	service := equity.NewService(db)

	users := []user.User{
		{Name: "Asha", Email: "asha@abenka.com"},
		{Name: "Ravi", Email: "ravi@abenka.com"},
	}
	for i := range users {
		assert.NoError(t, db.Create(&users[i]).Error)
	}

	seedContribution(t, db, users[0].ID, 1, 20)
	seedContribution(t, db, users[1].ID, 1, 80)
	_, err := service.CalculateAndAllocate(nil, time.Now(), 0, 0)
	assert.NoError(t, err)

	pid := uint(1)
	_, err = service.CalculateAndAllocate(&pid, time.Now(), 0, 0)
	assert.NoError(t, err)

	rows, err := service.CapTable(nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	// ordered by share descending
	assert.Equal(t, "Ravi", rows[0].Name)
	assert.Equal(t, 80.0, rows[0].EquityPercent)
	assert.Equal(t, "Asha", rows[1].Name)
	assert.Equal(t, 20.0, rows[1].EquityPercent)

	projectRows, err := service.CapTable(&pid)
	assert.NoError(t, err)
	assert.Len(t, projectRows, 2)
}

func TestLivePoolMetrics(t *testing.T) {
	assert.Equal(t, 375.0, equity.LivePoolUnits(10, 40, 1500))
	assert.Equal(t, 1125.0, equity.LivePoolUnits(30, 40, 1500))
	assert.Equal(t, 0.0, equity.LivePoolUnits(10, 0, 1500))

	assert.Equal(t, 25.0, equity.LivePercent(10, 40))
	assert.Equal(t, 0.0, equity.LivePercent(10, 0))
}
