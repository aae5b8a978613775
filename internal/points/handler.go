package points

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Handler serves point recalculation routes (staff only, enforced at the
// router).
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RecalculateProject handles POST /projects/{id}/points/recalculate.
func (h *Handler) RecalculateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	totals, err := h.Service.RecalculateProject(uint(projectID))
	if err != nil {
		http.Error(w, "could not recalculate points", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(totals)
}

// RecalculateCompany handles POST /points/recalculate.
func (h *Handler) RecalculateCompany(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Service.RecalculateCompany()
	if err != nil {
		http.Error(w, "could not recalculate points", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(totals)
}
