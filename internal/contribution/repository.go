package contribution

import (
	"errors"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"gorm.io/gorm"
)

// Repository wraps database access for contributions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Contribution) error {
	return r.DB.Create(c).Error
}

func (r *Repository) FindByID(id uint) (*Contribution, error) {
	var c Contribution
	err := r.DB.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("contribution not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByProject(projectID uint) ([]Contribution, error) {
	var list []Contribution
	err := r.DB.Where("project_id = ?", projectID).Order("date desc").Find(&list).Error
	return list, err
}

func (r *Repository) FindByUser(userID uint) ([]Contribution, error) {
	var list []Contribution
	err := r.DB.Where("user_id = ?", userID).Order("date desc").Find(&list).Error
	return list, err
}

func (r *Repository) FindAll() ([]Contribution, error) {
	var list []Contribution
	err := r.DB.Find(&list).Error
	return list, err
}

// FindTimeInRange lists TIME contributions inside [start, end], optionally
// only those not deferred to equity (used by hourly payout preparation).
func (r *Repository) FindTimeInRange(start, end time.Time, excludeDeferred bool) ([]Contribution, error) {
	q := r.DB.Where("type = ? AND date >= ? AND date <= ?", TypeTime, start, end)
	if excludeDeferred {
		q = q.Where("defer_to_equity = ?", false)
	}
	var list []Contribution
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) Update(c *Contribution) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(c *Contribution) error {
	return r.DB.Delete(c).Error
}
