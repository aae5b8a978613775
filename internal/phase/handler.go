package phase

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/gorilla/mux"
)

// Handler serves company phase routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// List handles GET /phases.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	phases, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list phases", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(phases)
}

// Update handles PUT /phases/{id} (staff only, enforced at the router).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid phase id", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	var payload CompanyPhase
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if payload.Name != "" {
		p.Name = payload.Name
	}
	p.EquityPoolPercent = payload.EquityPoolPercent
	if payload.EquityPoolQty > 0 {
		p.EquityPoolQty = payload.EquityPoolQty
	}
	p.MonthlySalesTargetLabel = payload.MonthlySalesTargetLabel
	p.SalesWeightageMultiplier = payload.SalesWeightageMultiplier
	p.NotionalSalaryNotes = payload.NotionalSalaryNotes
	if payload.SortOrder > 0 {
		p.SortOrder = payload.SortOrder
	}
	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "could not update phase", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
