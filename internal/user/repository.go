package user

import (
	"gorm.io/gorm"
)

// Repository wraps database access for users.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(u *User) error {
	return r.DB.Create(u).Error
}

func (r *Repository) FindByID(id uint) (*User, error) {
	var u User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindAll() ([]User, error) {
	var users []User
	err := r.DB.Order("created_at asc").Find(&users).Error
	return users, err
}

func (r *Repository) UpdateHourlyRate(id uint, rate float64) error {
	return r.DB.Model(&User{}).Where("id = ?", id).Update("hourly_rate", rate).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&User{}, id).Error
}
