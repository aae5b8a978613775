package project

import (
	"errors"

	"github.com/Abenka/equity-api/internal/apperrors"
	"gorm.io/gorm"
)

// Repository wraps database access for projects and memberships.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Project) error {
	return r.DB.Create(p).Error
}

func (r *Repository) FindByID(id uint) (*Project, error) {
	var p Project
	err := r.DB.Preload("Members").Preload("Members.User").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("project not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindAll() ([]Project, error) {
	var projects []Project
	err := r.DB.Preload("Members").Preload("Members.User").Order("name asc").Find(&projects).Error
	return projects, err
}

// FindForUser lists projects the user owns or is a member of.
func (r *Repository) FindForUser(userID uint) ([]Project, error) {
	var projects []Project
	err := r.DB.Preload("Members").Preload("Members.User").
		Joins("LEFT JOIN project_members ON project_members.project_id = projects.id AND project_members.deleted_at IS NULL").
		Where("projects.owner_id = ? OR project_members.user_id = ?", userID, userID).
		Distinct().
		Find(&projects).Error
	return projects, err
}

func (r *Repository) Update(p *Project) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Project{}, id).Error
}

// AddMember is idempotent for an existing (project, user) pair.
func (r *Repository) AddMember(projectID, userID uint) error {
	var existing ProjectMember
	err := r.DB.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(&ProjectMember{ProjectID: projectID, UserID: userID}).Error
}

func (r *Repository) RemoveMember(projectID, userID uint) error {
	return r.DB.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&ProjectMember{}).Error
}
