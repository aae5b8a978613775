package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/utils"
	"github.com/gorilla/mux"
)

// Handler serves user management and authentication routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Create handles POST /users (staff only, enforced at the router).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Email == "" || dto.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}
	role := dto.Role
	if role == "" {
		role = RoleFounder
	}
	if role != RoleAdmin && role != RoleAccountant && role != RoleFounder {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}
	hash, err := utils.HashPassword(dto.Password)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	u := User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		HourlyRate:   dto.HourlyRate,
	}
	if err := h.Repo.Create(&u); err != nil {
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ToDTO(&u))
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list users", http.StatusInternalServerError)
		return
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, ToDTO(&users[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Get handles GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	u, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ToDTO(u))
}

// Me handles GET /me for the authenticated caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}
	u, err := h.Repo.FindByID(id)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ToDTO(u))
}

// UpdateHourlyRate handles PATCH /users/{id}/hourly-rate (staff only).
func (h *Handler) UpdateHourlyRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	var dto UpdateHourlyRateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.HourlyRate < 0 {
		http.Error(w, "hourly rate cannot be negative", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.UpdateHourlyRate(uint(id), dto.HourlyRate); err != nil {
		http.Error(w, "could not update hourly rate", http.StatusInternalServerError)
		return
	}
	u, _ := h.Repo.FindByID(uint(id))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ToDTO(u))
}

// Delete handles DELETE /users/{id} (staff only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
