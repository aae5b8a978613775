package user

import (
	"gorm.io/gorm"
)

// Roles understood by the API. Admin and Accountant manage company data;
// Founders only see their own and their projects'.
const (
	RoleAdmin      = "ADMIN"
	RoleAccountant = "ACCOUNTANT"
	RoleFounder    = "FOUNDER"
)

// IsStaff reports whether the role may manage company-wide data.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleAccountant
}

type User struct {
	gorm.Model
	Name         string  `json:"name"`
	Email        string  `json:"email" gorm:"unique"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role" gorm:"size:20;not null;default:'FOUNDER'"`
	HourlyRate   float64 `json:"hourlyRate" gorm:"not null;default:0"`
}

// Migrate creates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
