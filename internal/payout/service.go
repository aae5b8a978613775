package payout

import (
	"errors"
	"sort"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/user"
	"gorm.io/gorm"
)

// Service prepares and settles payouts.
type Service struct {
	DB            *gorm.DB
	Contributions *contribution.Repository
	Users         *user.Repository
	Equity        *equity.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:            db,
		Contributions: contribution.NewRepository(db),
		Users:         user.NewRepository(db),
		Equity:        equity.NewService(db),
	}
}

// PrepareHourlyPayouts groups TIME contributions in the period (excluding
// those deferred to equity) by user and creates one PENDING HOURLY payout of
// totalHours * hourlyRate per user. Zero or negative amounts are skipped.
// Each user's payout is created independently; one failure does not roll
// back the others.
func (s *Service) PrepareHourlyPayouts(periodStart, periodEnd time.Time) ([]Payout, error) {
	contributions, err := s.Contributions.FindTimeInRange(periodStart, periodEnd, true)
	if err != nil {
		return nil, err
	}
	hoursByUser := map[uint]float64{}
	for _, c := range contributions {
		if c.Hours != nil {
			hoursByUser[c.UserID] += *c.Hours
		}
	}
	userIDs := make([]uint, 0, len(hoursByUser))
	for id := range hoursByUser {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	prepared := make([]Payout, 0, len(userIDs))
	for _, userID := range userIDs {
		u, err := s.Users.FindByID(userID)
		if err != nil {
			continue
		}
		amount := hoursByUser[userID] * u.HourlyRate
		if amount <= 0 {
			continue
		}
		p := Payout{
			UserID:      userID,
			Amount:      amount,
			Type:        TypeHourly,
			Status:      StatusPending,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Date:        time.Now(),
		}
		if err := s.DB.Create(&p).Error; err != nil {
			continue
		}
		prepared = append(prepared, p)
	}
	return prepared, nil
}

// AllocateProfitShare splits totalAmount by each user's latest company-wide
// equity share and creates one PENDING PROFIT payout per user.
func (s *Service) AllocateProfitShare(periodStart, periodEnd time.Time, totalAmount float64) ([]Payout, error) {
	shares, err := s.Equity.LatestCompanyShares()
	if err != nil {
		return nil, err
	}
	userIDs := make([]uint, 0, len(shares))
	for id := range shares {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	created := make([]Payout, 0, len(userIDs))
	for _, userID := range userIDs {
		p := Payout{
			UserID:      userID,
			Amount:      totalAmount * shares[userID] / 100,
			Type:        TypeProfit,
			Status:      StatusPending,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Date:        time.Now(),
		}
		if err := s.DB.Create(&p).Error; err != nil {
			continue
		}
		created = append(created, p)
	}
	return created, nil
}

// Execute transitions a payout to EXECUTED in a single-row update.
func (s *Service) Execute(id uint) (*Payout, error) {
	return s.transition(id, StatusExecuted)
}

// DeferToEquity transitions a payout to DEFERRED_TO_EQUITY.
func (s *Service) DeferToEquity(id uint) (*Payout, error) {
	return s.transition(id, StatusDeferredToEquity)
}

func (s *Service) transition(id uint, status string) (*Payout, error) {
	var p Payout
	err := s.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("payout not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&p).Update("status", status).Error; err != nil {
		return nil, err
	}
	p.Status = status
	return &p, nil
}

// FindByUser lists a user's payouts, newest first.
func (s *Service) FindByUser(userID uint) ([]Payout, error) {
	var list []Payout
	err := s.DB.Where("user_id = ?", userID).Order("date desc").Find(&list).Error
	return list, err
}

// FindPending lists all PENDING payouts for the admin dashboard.
func (s *Service) FindPending() ([]Payout, error) {
	var list []Payout
	err := s.DB.Where("status = ?", StatusPending).Order("date desc").Find(&list).Error
	return list, err
}

// WithdrawnByUser sums EXECUTED payout amounts per user.
func (s *Service) WithdrawnByUser() (map[uint]float64, error) {
	var list []Payout
	if err := s.DB.Where("status = ?", StatusExecuted).Find(&list).Error; err != nil {
		return nil, err
	}
	byUser := map[uint]float64{}
	for _, p := range list {
		byUser[p.UserID] += p.Amount
	}
	return byUser, nil
}
