package payout_test

import (
	"testing"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/payout"
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
	assert.NoError(t, payout.Migrate(db))
	return db
}

func ptr(v float64) *float64 { return &v }

func seedTimeEntry(t *testing.T, db *gorm.DB, userID uint, hours float64, date time.Time, deferred bool) {
	t.Helper()
	assert.NoError(t, db.Create(&contribution.Contribution{
		UserID:        userID,
		ProjectID:     1,
		Type:          contribution.TypeTime,
		Hours:         ptr(hours),
		Date:          date,
		DeferToEquity: deferred,
	}).Error)
}

func TestPrepareHourlyPayouts(t *testing.T) {
	db := setupDB(t)
	service := payout.NewService(db)

	alice := user.User{Name: "Alice", Email: "alice@abenka.com", HourlyRate: 500}
	bob := user.User{Name: "Bob", Email: "bob@abenka.com", HourlyRate: 800}
	noRate := user.User{Name: "Chitra", Email: "chitra@abenka.com"}
	assert.NoError(t, db.Create(&alice).Error)
	assert.NoError(t, db.Create(&bob).Error)
	assert.NoError(t, db.Create(&noRate).Error)

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 30, 23, 59, 59, 0, time.UTC)
	inRange := start.AddDate(0, 0, 10)

	seedTimeEntry(t, db, alice.ID, 10, inRange, false)
	seedTimeEntry(t, db, alice.ID, 5, inRange, false)
	seedTimeEntry(t, db, bob.ID, 8, inRange, false)
	seedTimeEntry(t, db, bob.ID, 4, inRange, true) // deferred to equity
	seedTimeEntry(t, db, bob.ID, 100, start.AddDate(0, 1, 5), false) // outside the period
	seedTimeEntry(t, db, noRate.ID, 20, inRange, false) // rate 0, skipped

	prepared, err := service.PrepareHourlyPayouts(start, end)
	assert.NoError(t, err)
	assert.Len(t, prepared, 2)

	assert.Equal(t, alice.ID, prepared[0].UserID)
	assert.Equal(t, 7500.0, prepared[0].Amount)
	assert.Equal(t, payout.TypeHourly, prepared[0].Type)
	assert.Equal(t, payout.StatusPending, prepared[0].Status)

	assert.Equal(t, bob.ID, prepared[1].UserID)
	assert.Equal(t, 6400.0, prepared[1].Amount)
}

func TestExecuteAndDeferTransitions(t *testing.T) {
	db := setupDB(t)
	service := payout.NewService(db)

	p := payout.Payout{UserID: 1, Amount: 100, Type: payout.TypeHourly, Status: payout.StatusPending, Date: time.Now()}
	assert.NoError(t, db.Create(&p).Error)

	executed, err := service.Execute(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, payout.StatusExecuted, executed.Status)

	var stored payout.Payout
	assert.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, payout.StatusExecuted, stored.Status)

	q := payout.Payout{UserID: 1, Amount: 50, Type: payout.TypeHourly, Status: payout.StatusPending, Date: time.Now()}
	assert.NoError(t, db.Create(&q).Error)
	deferred, err := service.DeferToEquity(q.ID)
	assert.NoError(t, err)
	assert.Equal(t, payout.StatusDeferredToEquity, deferred.Status)
}

func TestTransitionUnknownPayout(t *testing.T) {
	service := payout.NewService(setupDB(t))

	_, err := service.Execute(999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAllocateProfitShareUsesLatestShares(t *testing.T) {
	db := setupDB(t)
	service := payout.NewService(db)
	now := time.Now()

	// stale snapshot, superseded by the later one
	assert.NoError(t, db.Create(&equity.EquityAllocation{
		UserID: 1, Points: 1, TotalPoints: 1, SharesAllocated: 100, VestingStart: now,
	}).Error)
	assert.NoError(t, db.Create(&equity.EquityAllocation{
		UserID: 1, Points: 1, TotalPoints: 4, SharesAllocated: 25, VestingStart: now,
	}).Error)
	assert.NoError(t, db.Create(&equity.EquityAllocation{
		UserID: 2, Points: 3, TotalPoints: 4, SharesAllocated: 75, VestingStart: now,
	}).Error)

	created, err := service.AllocateProfitShare(now.AddDate(0, -1, 0), now, 1000)
	assert.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, 250.0, created[0].Amount)
	assert.Equal(t, payout.TypeProfit, created[0].Type)
	assert.Equal(t, 750.0, created[1].Amount)
}

func TestWithdrawnByUserCountsOnlyExecuted(t *testing.T) {
	db := setupDB(t)
	service := payout.NewService(db)
	now := time.Now()

	rows := []payout.Payout{
		{UserID: 1, Amount: 100, Type: payout.TypeHourly, Status: payout.StatusExecuted, Date: now},
		{UserID: 1, Amount: 40, Type: payout.TypeProfit, Status: payout.StatusExecuted, Date: now},
		{UserID: 1, Amount: 999, Type: payout.TypeHourly, Status: payout.StatusPending, Date: now},
		{UserID: 2, Amount: 55, Type: payout.TypeHourly, Status: payout.StatusDeferredToEquity, Date: now},
	}
	for i := range rows {
		assert.NoError(t, db.Create(&rows[i]).Error)
	}

	withdrawn, err := service.WithdrawnByUser()
	assert.NoError(t, err)
	assert.Equal(t, 140.0, withdrawn[1])
	assert.Equal(t, 0.0, withdrawn[2])
}
