package project

import (
	"time"

	"github.com/Abenka/equity-api/internal/user"
	"gorm.io/gorm"
)

// Project is a unit of work founders log contributions and sales against.
type Project struct {
	gorm.Model
	Name                   string          `gorm:"size:255;not null" json:"name"`
	Description            string          `json:"description"`
	OwnerID                uint            `gorm:"not null;index" json:"ownerId"`
	StartDate              time.Time       `gorm:"not null" json:"startDate"`
	MonthlyRevenuePipeline float64         `gorm:"not null;default:0" json:"monthlyRevenuePipeline"`
	Members                []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"members"`
}

// ProjectMember links a user to a project. One row per (project, user).
type ProjectMember struct {
	gorm.Model
	ProjectID uint       `gorm:"not null;uniqueIndex:idx_project_user" json:"projectId"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_project_user" json:"userId"`
	User      *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CanAccess reports whether the caller may read/write this project.
// Staff always can; founders must own it or be a member.
func (p *Project) CanAccess(userID uint, role string) bool {
	if user.IsStaff(role) {
		return true
	}
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// Migrate creates the project tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Project{}, &ProjectMember{})
}
