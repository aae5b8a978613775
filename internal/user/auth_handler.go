package user

import (
	"encoding/json"
	"net/http"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/utils"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	u, err := h.Repo.FindByEmail(dto.Email)
	if err != nil || !utils.CheckPassword(u.PasswordHash, dto.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token, User: ToDTO(u)})
}

// Signup handles POST /auth/signup. New accounts always start as founders.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Email == "" || dto.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	hash, err := utils.HashPassword(dto.Password)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	u := User{Name: dto.Name, Email: dto.Email, PasswordHash: hash, Role: RoleFounder}
	if err := h.Repo.Create(&u); err != nil {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(LoginResponse{Token: token, User: ToDTO(&u)})
}
