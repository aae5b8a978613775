package weights

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type SetWeightsDTO struct {
	ProjectID   *uint   `json:"projectId"`
	TimeWeight  float64 `json:"timeWeight"`
	CashWeight  float64 `json:"cashWeight"`
	OtherWeight float64 `json:"otherWeight"`
}

// Handler serves weight config routes (staff only, enforced at the router).
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Get handles GET /weights?projectId=N, resolving defaults when unset.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	var projectID *uint
	if s := r.URL.Query().Get("projectId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid project id", http.StatusBadRequest)
			return
		}
		v := uint(id)
		projectID = &v
	}
	resolved, err := h.Repo.Resolve(projectID)
	if err != nil {
		http.Error(w, "could not resolve weights", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resolved)
}

// Set handles PUT /weights.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var dto SetWeightsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	config, err := h.Repo.Set(dto.ProjectID, dto.TimeWeight, dto.CashWeight, dto.OtherWeight)
	if err != nil {
		http.Error(w, "could not save weights", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}
