package points

import (
	"sort"

	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/numeric"
	"github.com/Abenka/equity-api/internal/weights"
	"gorm.io/gorm"
)

// UserTotal is the per-user sum produced by a recalculation.
type UserTotal struct {
	UserID      uint    `json:"userId"`
	TotalPoints float64 `json:"totalPoints"`
}

// Service turns contribution records into normalized points.
type Service struct {
	DB            *gorm.DB
	Weights       *weights.Repository
	Contributions *contribution.Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:            db,
		Weights:       weights.NewRepository(db),
		Contributions: contribution.NewRepository(db),
	}
}

// Compute applies the weighted formula over whatever fields are present:
// hours*time + amount*cash + otherPoints*other, rounded to 2 decimals.
// The formula is additive, not gated by contribution type.
func Compute(hours, amount, otherPoints *float64, w weights.Weights) float64 {
	p := 0.0
	if hours != nil {
		p += *hours * w.Time
	}
	if amount != nil {
		p += *amount * w.Cash
	}
	if otherPoints != nil {
		p += *otherPoints * w.Other
	}
	return numeric.Round2(p)
}

// ComputeForEntry resolves the project's weights and computes the points for
// one entry. Weights are read fresh on every call.
func (s *Service) ComputeForEntry(projectID uint, hours, amount, otherPoints *float64) (float64, error) {
	pid := projectID
	w, err := s.Weights.Resolve(&pid)
	if err != nil {
		return 0, err
	}
	return Compute(hours, amount, otherPoints, w), nil
}

// RecalculateProject recomputes and persists points for every contribution of
// a project using the project's current weights.
func (s *Service) RecalculateProject(projectID uint) ([]UserTotal, error) {
	w, err := s.Weights.Resolve(&projectID)
	if err != nil {
		return nil, err
	}
	list, err := s.Contributions.FindByProject(projectID)
	if err != nil {
		return nil, err
	}
	return s.recalculate(list, w)
}

// RecalculateCompany recomputes every contribution in the company using the
// company-wide weights.
func (s *Service) RecalculateCompany() ([]UserTotal, error) {
	w, err := s.Weights.Resolve(nil)
	if err != nil {
		return nil, err
	}
	list, err := s.Contributions.FindAll()
	if err != nil {
		return nil, err
	}
	return s.recalculate(list, w)
}

func (s *Service) recalculate(list []contribution.Contribution, w weights.Weights) ([]UserTotal, error) {
	byUser := map[uint]float64{}
	for i := range list {
		c := &list[i]
		p := Compute(c.Hours, c.Amount, c.OtherPoints, w)
		if err := s.DB.Model(c).Update("points", p).Error; err != nil {
			return nil, err
		}
		byUser[c.UserID] += p
	}
	totals := make([]UserTotal, 0, len(byUser))
	for userID, total := range byUser {
		totals = append(totals, UserTotal{UserID: userID, TotalPoints: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].UserID < totals[j].UserID })
	return totals, nil
}
