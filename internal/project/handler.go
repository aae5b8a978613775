package project

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/gorilla/mux"
)

type CreateProjectDTO struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	StartDate              string  `json:"startDate"` // YYYY-MM-DD
	MonthlyRevenuePipeline float64 `json:"monthlyRevenuePipeline"`
}

type MemberDTO struct {
	UserID uint `json:"userId"`
}

// Handler serves project and membership routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create handles POST /projects. The caller becomes the owner.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	startDate := time.Now()
	if dto.StartDate != "" {
		t, err := parseDate(dto.StartDate)
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		startDate = t
	}
	p := Project{
		Name:                   dto.Name,
		Description:            dto.Description,
		OwnerID:                userID,
		StartDate:              startDate,
		MonthlyRevenuePipeline: dto.MonthlyRevenuePipeline,
	}
	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "could not create project", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// List handles GET /projects. Staff see all, founders their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	var (
		projects []Project
		err      error
	)
	if user.IsStaff(role) {
		projects, err = h.Repo.FindAll()
	} else {
		projects, err = h.Repo.FindForUser(userID)
	}
	if err != nil {
		http.Error(w, "could not list projects", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

// Get handles GET /projects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(w, r)
	if err != nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Update handles PUT /projects/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(w, r)
	if err != nil {
		return
	}
	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Name != "" {
		p.Name = dto.Name
	}
	p.Description = dto.Description
	p.MonthlyRevenuePipeline = dto.MonthlyRevenuePipeline
	if dto.StartDate != "" {
		t, err := parseDate(dto.StartDate)
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		p.StartDate = t
	}
	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "could not update project", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// Delete handles DELETE /projects/{id} (staff only, enforced at the router).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if _, err := h.Repo.FindByID(uint(id)); err != nil {
		apperrors.Write(w, err)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "could not delete project", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles POST /projects/{id}/members.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(w, r)
	if err != nil {
		return
	}
	var dto MemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.Repo.AddMember(p.ID, dto.UserID); err != nil {
		http.Error(w, "could not add member", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /projects/{id}/members/{userId}.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	p, err := h.load(w, r)
	if err != nil {
		return
	}
	memberID, err := strconv.Atoi(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.RemoveMember(p.ID, uint(memberID)); err != nil {
		http.Error(w, "could not remove member", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// load fetches the project from the route and applies the access rule.
// On failure it writes the response and returns a non-nil error.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Project, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return nil, err
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return nil, err
	}
	userID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if !p.CanAccess(userID, role) {
		err := apperrors.Forbidden("you do not have access to this project")
		apperrors.Write(w, err)
		return nil, err
	}
	return p, nil
}
