package user

import "time"

type CreateUserDTO struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourlyRate"`
}

type UpdateHourlyRateDTO struct {
	HourlyRate float64 `json:"hourlyRate"`
}

// UserDTO is the public shape of a user (no password hash).
type UserDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HourlyRate float64   `json:"hourlyRate"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToDTO(u *User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		HourlyRate: u.HourlyRate,
		CreatedAt:  u.CreatedAt,
	}
}
