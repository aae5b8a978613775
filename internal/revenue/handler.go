package revenue

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/gorilla/mux"
)

type CreateRevenueDTO struct {
	ProjectID   uint    `json:"projectId"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	PeriodMonth *string `json:"periodMonth"`
	EntryDate   string  `json:"entryDate"` // YYYY-MM-DD
	Notes       string  `json:"notes"`
}

type UpdateRevenueDTO struct {
	Type        *string  `json:"type"`
	Amount      *float64 `json:"amount"`
	PeriodMonth *string  `json:"periodMonth"`
	EntryDate   *string  `json:"entryDate"`
	Notes       *string  `json:"notes"`
}

// Handler serves revenue ledger routes (staff only, enforced at the router).
type Handler struct {
	Repo     *Repository
	Service  *Service
	Projects *project.Repository
}

func NewHandler(repo *Repository, service *Service, projects *project.Repository) *Handler {
	return &Handler{Repo: repo, Service: service, Projects: projects}
}

func validType(t string) bool {
	return t == TypeMonthlyRevenue || t == TypeOneTimeRevenue || t == TypeExpense
}

// Create handles POST /revenue.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateRevenueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !validType(dto.Type) {
		http.Error(w, "type must be MONTHLY_REVENUE, ONE_TIME_REVENUE or EXPENSE", http.StatusBadRequest)
		return
	}
	if _, err := h.Projects.FindByID(dto.ProjectID); err != nil {
		apperrors.Write(w, err)
		return
	}
	entryDate, err := time.Parse("2006-01-02", dto.EntryDate)
	if err != nil {
		http.Error(w, "invalid entry date", http.StatusBadRequest)
		return
	}
	e := ProjectRevenueEntry{
		ProjectID:   dto.ProjectID,
		Type:        dto.Type,
		Amount:      dto.Amount,
		PeriodMonth: dto.PeriodMonth,
		EntryDate:   entryDate,
		Notes:       dto.Notes,
	}
	if err := h.Repo.Create(&e); err != nil {
		http.Error(w, "could not create revenue entry", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// List handles GET /revenue.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list revenue entries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// ListByProject handles GET /projects/{id}/revenue.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if _, err := h.Projects.FindByID(uint(projectID)); err != nil {
		apperrors.Write(w, err)
		return
	}
	entries, err := h.Repo.FindByProject(uint(projectID))
	if err != nil {
		http.Error(w, "could not list revenue entries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Summary handles GET /revenue/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.CompanySummary()
	if err != nil {
		http.Error(w, "could not build revenue summary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Update handles PUT /revenue/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid revenue entry id", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	var dto UpdateRevenueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Type != nil {
		if !validType(*dto.Type) {
			http.Error(w, "type must be MONTHLY_REVENUE, ONE_TIME_REVENUE or EXPENSE", http.StatusBadRequest)
			return
		}
		e.Type = *dto.Type
	}
	if dto.Amount != nil {
		e.Amount = *dto.Amount
	}
	if dto.PeriodMonth != nil {
		e.PeriodMonth = dto.PeriodMonth
	}
	if dto.EntryDate != nil {
		t, err := time.Parse("2006-01-02", *dto.EntryDate)
		if err != nil {
			http.Error(w, "invalid entry date", http.StatusBadRequest)
			return
		}
		e.EntryDate = t
	}
	if dto.Notes != nil {
		e.Notes = *dto.Notes
	}
	if err := h.Repo.Update(e); err != nil {
		http.Error(w, "could not update revenue entry", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// Delete handles DELETE /revenue/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid revenue entry id", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if err := h.Repo.Delete(e); err != nil {
		http.Error(w, "could not delete revenue entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
