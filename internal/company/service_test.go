package company_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Abenka/equity-api/internal/company"
	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/payout"
	"github.com/Abenka/equity-api/internal/phase"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/revenue"
	"github.com/Abenka/equity-api/internal/sales"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/Abenka/equity-api/internal/weights"
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
	assert.NoError(t, contribution.Migrate(db))
	assert.NoError(t, weights.Migrate(db))
	assert.NoError(t, sales.Migrate(db))
	assert.NoError(t, phase.Migrate(db))
	assert.NoError(t, equity.Migrate(db))
	assert.NoError(t, payout.Migrate(db))
	assert.NoError(t, revenue.Migrate(db))
	return db
}

func ptr(v float64) *float64 { return &v }

func seedHours(t *testing.T, db *gorm.DB, userID, projectID uint, hours float64) {
	t.Helper()
	assert.NoError(t, db.Create(&contribution.Contribution{
		UserID:    userID,
		ProjectID: projectID,
		Type:      contribution.TypeTime,
		Hours:     ptr(hours),
		Points:    hours,
		Date:      time.Now(),
	}).Error)
}

type failingRevenue struct{}

func (failingRevenue) CompanySummary() (revenue.Summary, error) {
	return revenue.Summary{}, errors.New("revenue store down")
}

type failingSales struct{}

func (failingSales) DerivedTotals(float64) (sales.DerivedTotals, error) {
	return sales.DerivedTotals{}, errors.New("sales store down")
}

func TestFounderDashboardBalance(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)

	u := user.User{Name: "Asha", Email: "asha@abenka.com"}
	assert.NoError(t, db.Create(&u).Error)
	p := project.Project{Name: "Solar", OwnerID: u.ID, StartDate: time.Now()}
	assert.NoError(t, db.Create(&p).Error)

	seedHours(t, db, u.ID, p.ID, 20)
	assert.NoError(t, db.Create(&payout.Payout{
		UserID: u.ID, Amount: 10000, Type: payout.TypeHourly,
		Status: payout.StatusExecuted, Date: time.Now(),
	}).Error)

	dash, err := service.FounderDashboard(u.ID)
	assert.NoError(t, err)

	assert.Equal(t, "founder", dash.View)
	assert.Equal(t, 30000.0, dash.NotionalIncome) // 20h * 1500
	assert.Equal(t, 10000.0, dash.WithdrawnIncome)
	assert.Equal(t, 20000.0, dash.Balance)
	assert.Equal(t, 20.0, dash.MyContribution.TotalHours)
	assert.Equal(t, 1, dash.MyContribution.ContributionCount)
}

func TestFounderDashboardWithoutPhasesUsesDefaults(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)

	u := user.User{Name: "Asha", Email: "asha@abenka.com"}
	assert.NoError(t, db.Create(&u).Error)

	dash, err := service.FounderDashboard(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Sprout", dash.CurrentPhaseName)
	assert.Equal(t, 1500, dash.TotalEquityInPool)
	assert.Equal(t, 0.0, dash.AllocatedEquityUnits)
}

func TestFounderDashboardDegradedDependencies(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)
	service.Revenue = failingRevenue{}
	service.Sales = failingSales{}

	u := user.User{Name: "Asha", Email: "asha@abenka.com"}
	assert.NoError(t, db.Create(&u).Error)
	p := project.Project{Name: "Solar", OwnerID: u.ID, StartDate: time.Now()}
	assert.NoError(t, db.Create(&p).Error)
	seedHours(t, db, u.ID, p.ID, 10)

	dash, err := service.FounderDashboard(u.ID)
	assert.NoError(t, err)

	assert.Equal(t, revenue.EmptySummary(), dash.RevenueSummary)
	// sales-derived hours fall away, TIME hours stay
	assert.Equal(t, 10.0, dash.TotalCompanyHours)
	assert.Equal(t, 15000.0, dash.NotionalIncome)
}

func TestLivePoolSplitAcrossTwoFounders(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)

	asha := user.User{Name: "Asha", Email: "asha@abenka.com"}
	ravi := user.User{Name: "Ravi", Email: "ravi@abenka.com"}
	assert.NoError(t, db.Create(&asha).Error)
	assert.NoError(t, db.Create(&ravi).Error)
	p := project.Project{Name: "Solar", OwnerID: asha.ID, StartDate: time.Now()}
	assert.NoError(t, db.Create(&p).Error)

	seedHours(t, db, asha.ID, p.ID, 10)
	seedHours(t, db, ravi.ID, p.ID, 30)

	dash, err := service.FounderDashboard(asha.ID)
	assert.NoError(t, err)
	assert.Equal(t, 40.0, dash.TotalCompanyHours)
	assert.Equal(t, 375.0, dash.AllocatedEquityUnits)
	assert.Equal(t, 25.0, dash.EquityPercent)

	admin, err := service.AdminDashboard()
	assert.NoError(t, err)
	assert.Equal(t, "admin", admin.View)
	assert.Equal(t, 2, admin.Users)
	assert.Len(t, admin.FounderSummary, 2)

	var raviRow *company.FounderSummary
	for i := range admin.FounderSummary {
		if admin.FounderSummary[i].UserID == ravi.ID {
			raviRow = &admin.FounderSummary[i]
		}
	}
	assert.NotNil(t, raviRow)
	assert.Equal(t, 1125.0, raviRow.AllocatedEquityUnits)
	assert.Equal(t, 75.0, raviRow.EquityPercent)
}

func TestSalesDerivedHoursJoinTimeHours(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)

	u := user.User{Name: "Asha", Email: "asha@abenka.com"}
	assert.NoError(t, db.Create(&u).Error)
	p := project.Project{Name: "Solar", OwnerID: u.ID, StartDate: time.Now().AddDate(0, -2, 0)}
	assert.NoError(t, db.Create(&p).Error)

	seedHours(t, db, u.ID, p.ID, 10)

	// first-year sale: effective = 50000 * 12% = 6000 notional, 4 hours
	assert.NoError(t, db.Create(&sales.SalesEntry{
		ProjectID:   p.ID,
		EntryDate:   time.Now(),
		SalesAmount: 50000,
		Allocations: []sales.SalesAllocation{{UserID: u.ID, ContributionPercent: 100}},
	}).Error)

	dash, err := service.FounderDashboard(u.ID)
	assert.NoError(t, err)
	assert.Equal(t, 14.0, dash.TotalCompanyHours)
	assert.Equal(t, 21000.0, dash.NotionalIncome) // 10*1500 + 6000
}

func TestAdminDashboardTopContributors(t *testing.T) {
	db := setupDB(t)
	service := company.NewService(db)

	asha := user.User{Name: "Asha", Email: "asha@abenka.com"}
	ravi := user.User{Name: "Ravi", Email: "ravi@abenka.com"}
	assert.NoError(t, db.Create(&asha).Error)
	assert.NoError(t, db.Create(&ravi).Error)
	p := project.Project{Name: "Solar", OwnerID: asha.ID, StartDate: time.Now()}
	assert.NoError(t, db.Create(&p).Error)

	seedHours(t, db, asha.ID, p.ID, 5)
	seedHours(t, db, ravi.ID, p.ID, 12)

	admin, err := service.AdminDashboard()
	assert.NoError(t, err)
	assert.Len(t, admin.TopContributors, 2)
	assert.Equal(t, ravi.ID, admin.TopContributors[0].UserID)
	assert.Equal(t, 12.0, admin.TopContributors[0].TotalPoints)

	assert.Len(t, admin.HoursByProject, 1)
	assert.Equal(t, 17.0, admin.HoursByProject[0].TotalHours)
	assert.Equal(t, 17.0, admin.AllProjectHours)
}
