package equity

import (
	"sort"
	"time"

	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/numeric"
	"github.com/Abenka/equity-api/internal/user"
	"gorm.io/gorm"
)

// CapTableRow joins an allocation snapshot with user display fields.
type CapTableRow struct {
	UserID        uint      `json:"userId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Points        float64   `json:"points"`
	TotalPoints   float64   `json:"totalPoints"`
	EquityPercent float64   `json:"equityPercent"`
	VestingStart  time.Time `json:"vestingStart"`
	CliffMonths   int       `json:"cliffMonths"`
	VestingMonths int       `json:"vestingMonths"`
}

// Service computes and persists proportional equity allocations.
type Service struct {
	DB            *gorm.DB
	Contributions *contribution.Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Contributions: contribution.NewRepository(db)}
}

// CalculateAndAllocate sums points per contributor in scope (company-wide
// when projectID is nil) and appends one snapshot row per contributor:
// share = round4(points/total*100). A zero total yields an empty list, not
// an error. Not idempotent: every call appends a fresh set of rows.
func (s *Service) CalculateAndAllocate(projectID *uint, vestingStart time.Time, cliffMonths, vestingMonths int) ([]EquityAllocation, error) {
	var (
		contributions []contribution.Contribution
		err           error
	)
	if projectID != nil {
		contributions, err = s.Contributions.FindByProject(*projectID)
	} else {
		contributions, err = s.Contributions.FindAll()
	}
	if err != nil {
		return nil, err
	}

	totalPoints := 0.0
	byUser := map[uint]float64{}
	for _, c := range contributions {
		totalPoints += c.Points
		byUser[c.UserID] += c.Points
	}
	if totalPoints == 0 {
		return []EquityAllocation{}, nil
	}

	userIDs := make([]uint, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	allocations := make([]EquityAllocation, 0, len(userIDs))
	for _, userID := range userIDs {
		points := byUser[userID]
		alloc := EquityAllocation{
			UserID:          userID,
			Points:          points,
			TotalPoints:     totalPoints,
			SharesAllocated: numeric.Round4(points / totalPoints * 100),
			VestingStart:    vestingStart,
			CliffMonths:     cliffMonths,
			VestingMonths:   vestingMonths,
			ProjectID:       projectID,
		}
		if err := s.DB.Create(&alloc).Error; err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}
	return allocations, nil
}

// CapTable lists allocations of exactly one scope ordered by share
// descending. Company scope (nil projectID) only returns rows with a null
// project id; scopes are never mixed.
func (s *Service) CapTable(projectID *uint) ([]CapTableRow, error) {
	q := s.DB.Model(&EquityAllocation{})
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	} else {
		q = q.Where("project_id IS NULL")
	}
	var allocations []EquityAllocation
	if err := q.Order("shares_allocated desc").Find(&allocations).Error; err != nil {
		return nil, err
	}
	rows := make([]CapTableRow, 0, len(allocations))
	for _, a := range allocations {
		var u user.User
		if err := s.DB.Select("id", "name", "email").First(&u, a.UserID).Error; err != nil {
			return nil, err
		}
		rows = append(rows, CapTableRow{
			UserID:        a.UserID,
			Name:          u.Name,
			Email:         u.Email,
			Points:        a.Points,
			TotalPoints:   a.TotalPoints,
			EquityPercent: a.SharesAllocated,
			VestingStart:  a.VestingStart,
			CliffMonths:   a.CliffMonths,
			VestingMonths: a.VestingMonths,
		})
	}
	return rows, nil
}

// VestingTimeline lists one user's allocations across all scopes, newest
// first.
func (s *Service) VestingTimeline(userID uint) ([]EquityAllocation, error) {
	var allocations []EquityAllocation
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&allocations).Error
	return allocations, err
}

// LatestCompanyShares returns the most recent company-wide share percent per
// user (used for profit distribution).
func (s *Service) LatestCompanyShares() (map[uint]float64, error) {
	var allocations []EquityAllocation
	err := s.DB.Where("project_id IS NULL").
		Order("created_at asc, id asc").
		Find(&allocations).Error
	if err != nil {
		return nil, err
	}
	latest := map[uint]float64{}
	for _, a := range allocations {
		latest[a.UserID] = a.SharesAllocated // later rows overwrite earlier
	}
	return latest, nil
}

// LivePoolUnits is the real-time proportional pool metric used by
// dashboards: (userHours/companyHours) * poolQty. It is distinct from the
// persisted snapshot allocation. Zero company hours yields zero units.
func LivePoolUnits(userHours, companyHours float64, poolQty int) float64 {
	if companyHours <= 0 {
		return 0
	}
	return userHours / companyHours * float64(poolQty)
}

// LivePercent is the real-time hour share of the company, in percent.
func LivePercent(userHours, companyHours float64) float64 {
	if companyHours <= 0 {
		return 0
	}
	return userHours / companyHours * 100
}
