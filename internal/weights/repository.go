package weights

import (
	"errors"

	"gorm.io/gorm"
)

// Repository wraps database access for weight configs.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Resolve returns the weights in effect for a scope. Project scope when
// projectID is non-nil, else the company-wide row. Weights are read fresh on
// every call so a change takes effect immediately; no caching.
func (r *Repository) Resolve(projectID *uint) (Weights, error) {
	var config WeightsConfig
	q := r.DB
	if projectID != nil {
		q = q.Where("scope = ? AND project_id = ?", ScopeProject, *projectID)
	} else {
		q = q.Where("scope = ? AND project_id IS NULL", ScopeCompany)
	}
	err := q.First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Defaults, nil
	}
	if err != nil {
		return Weights{}, err
	}
	return Weights{Time: config.TimeWeight, Cash: config.CashWeight, Other: config.OtherWeight}, nil
}

// Set upserts the config keyed by (scope, projectId). Last write wins.
func (r *Repository) Set(projectID *uint, timeWeight, cashWeight, otherWeight float64) (*WeightsConfig, error) {
	scope := ScopeCompany
	if projectID != nil {
		scope = ScopeProject
	}
	var config WeightsConfig
	q := r.DB.Where("scope = ?", scope)
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	} else {
		q = q.Where("project_id IS NULL")
	}
	err := q.First(&config).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		config = WeightsConfig{
			Scope:       scope,
			ProjectID:   projectID,
			TimeWeight:  timeWeight,
			CashWeight:  cashWeight,
			OtherWeight: otherWeight,
		}
		if err := r.DB.Create(&config).Error; err != nil {
			return nil, err
		}
		return &config, nil
	}
	if err != nil {
		return nil, err
	}
	config.TimeWeight = timeWeight
	config.CashWeight = cashWeight
	config.OtherWeight = otherWeight
	if err := r.DB.Save(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}
