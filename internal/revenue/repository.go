package revenue

import (
	"errors"

	"github.com/Abenka/equity-api/internal/apperrors"
	"gorm.io/gorm"
)

// Repository wraps database access for revenue entries.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(e *ProjectRevenueEntry) error {
	return r.DB.Create(e).Error
}

func (r *Repository) FindByID(id uint) (*ProjectRevenueEntry, error) {
	var e ProjectRevenueEntry
	err := r.DB.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("revenue entry not found")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) FindAll() ([]ProjectRevenueEntry, error) {
	var list []ProjectRevenueEntry
	err := r.DB.Order("entry_date desc, created_at desc").Find(&list).Error
	return list, err
}

func (r *Repository) FindByProject(projectID uint) ([]ProjectRevenueEntry, error) {
	var list []ProjectRevenueEntry
	err := r.DB.Where("project_id = ?", projectID).
		Order("entry_date desc, created_at desc").
		Find(&list).Error
	return list, err
}

func (r *Repository) Update(e *ProjectRevenueEntry) error {
	return r.DB.Save(e).Error
}

func (r *Repository) Delete(e *ProjectRevenueEntry) error {
	return r.DB.Delete(e).Error
}
