package sales

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/gorilla/mux"
)

// Handler serves sales entry routes. Mutations are staff only (enforced at
// the router); reads additionally require project access.
type Handler struct {
	Repo     *Repository
	Projects *project.Repository
}

func NewHandler(repo *Repository, projects *project.Repository) *Handler {
	return &Handler{Repo: repo, Projects: projects}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) projectAccess(w http.ResponseWriter, r *http.Request, projectID uint) bool {
	p, err := h.Projects.FindByID(projectID)
	if err != nil {
		apperrors.Write(w, err)
		return false
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if !p.CanAccess(callerID, role) {
		apperrors.Write(w, apperrors.Forbidden("you do not have access to this project"))
		return false
	}
	return true
}

// Create handles POST /projects/{id}/sales.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.projectAccess(w, r, uint(projectID)) {
		return
	}
	var dto CreateSalesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if len(dto.Allocations) == 0 {
		http.Error(w, "at least one allocation is required", http.StatusBadRequest)
		return
	}
	if err := ValidateAllocations(dto.Allocations); err != nil {
		apperrors.Write(w, err)
		return
	}
	entryDate, err := parseDate(dto.EntryDate)
	if err != nil {
		http.Error(w, "invalid entry date", http.StatusBadRequest)
		return
	}
	entry := SalesEntry{
		ProjectID:   uint(projectID),
		EntryDate:   entryDate,
		SalesAmount: dto.SalesAmount,
		PeriodMonth: dto.PeriodMonth,
		Notes:       dto.Notes,
	}
	for _, a := range dto.Allocations {
		entry.Allocations = append(entry.Allocations, SalesAllocation{
			UserID:              a.UserID,
			ContributionPercent: a.ContributionPercent,
		})
	}
	if err := h.Repo.Create(&entry); err != nil {
		http.Error(w, "could not create sales entry", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// ListByProject handles GET /projects/{id}/sales.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	if !h.projectAccess(w, r, uint(projectID)) {
		return
	}
	list, err := h.Repo.FindByProject(uint(projectID))
	if err != nil {
		http.Error(w, "could not list sales entries", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /sales/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid sales entry id", http.StatusBadRequest)
		return
	}
	entry, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if !h.projectAccess(w, r, entry.ProjectID) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// Update handles PUT /sales/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid sales entry id", http.StatusBadRequest)
		return
	}
	entry, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if !h.projectAccess(w, r, entry.ProjectID) {
		return
	}
	var dto UpdateSalesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Allocations != nil {
		if err := ValidateAllocations(dto.Allocations); err != nil {
			apperrors.Write(w, err)
			return
		}
	}
	if dto.EntryDate != nil {
		t, err := parseDate(*dto.EntryDate)
		if err != nil {
			http.Error(w, "invalid entry date", http.StatusBadRequest)
			return
		}
		entry.EntryDate = t
	}
	if dto.SalesAmount != nil {
		entry.SalesAmount = *dto.SalesAmount
	}
	if dto.PeriodMonth != nil {
		entry.PeriodMonth = dto.PeriodMonth
	}
	if dto.Notes != nil {
		entry.Notes = *dto.Notes
	}
	entry.Allocations = nil
	if err := h.Repo.Update(entry); err != nil {
		http.Error(w, "could not update sales entry", http.StatusInternalServerError)
		return
	}
	if dto.Allocations != nil {
		allocations := make([]SalesAllocation, 0, len(dto.Allocations))
		for _, a := range dto.Allocations {
			allocations = append(allocations, SalesAllocation{
				UserID:              a.UserID,
				ContributionPercent: a.ContributionPercent,
			})
		}
		if err := h.Repo.ReplaceAllocations(entry.ID, allocations); err != nil {
			http.Error(w, "could not update allocations", http.StatusInternalServerError)
			return
		}
	}
	updated, err := h.Repo.FindByID(entry.ID)
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /sales/{id}. Allocations are removed with the entry.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid sales entry id", http.StatusBadRequest)
		return
	}
	entry, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if !h.projectAccess(w, r, entry.ProjectID) {
		return
	}
	if err := h.Repo.Delete(entry); err != nil {
		http.Error(w, "could not delete sales entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
