package phase

import (
	"errors"

	"github.com/Abenka/equity-api/internal/apperrors"
	"gorm.io/gorm"
)

// Repository wraps database access for company phases.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindAll lists phases ascending by sort order, so index 0 is current.
func (r *Repository) FindAll() ([]CompanyPhase, error) {
	var phases []CompanyPhase
	err := r.DB.Order("sort_order asc").Find(&phases).Error
	return phases, err
}

func (r *Repository) FindByID(id uint) (*CompanyPhase, error) {
	var p CompanyPhase
	err := r.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("phase not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *CompanyPhase) error {
	return r.DB.Save(p).Error
}
