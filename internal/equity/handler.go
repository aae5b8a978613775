package equity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/gorilla/mux"
)

type CalculateDTO struct {
	ProjectID     *uint  `json:"projectId"`
	VestingStart  string `json:"vestingStart"` // YYYY-MM-DD
	CliffMonths   int    `json:"cliffMonths"`
	VestingMonths int    `json:"vestingMonths"`
}

// Handler serves equity allocation routes.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Calculate handles POST /equity/calculate (staff only, enforced at the
// router). Each call appends a new allocation snapshot.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var dto CalculateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	vestingStart, err := time.Parse("2006-01-02", dto.VestingStart)
	if err != nil {
		http.Error(w, "invalid vesting start date", http.StatusBadRequest)
		return
	}
	if dto.CliffMonths < 0 || dto.VestingMonths < 0 {
		http.Error(w, "cliff and vesting months cannot be negative", http.StatusBadRequest)
		return
	}
	allocations, err := h.Service.CalculateAndAllocate(dto.ProjectID, vestingStart, dto.CliffMonths, dto.VestingMonths)
	if err != nil {
		http.Error(w, "could not calculate allocations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"allocations": allocations})
}

// CapTable handles GET /equity/cap-table?projectId=N.
func (h *Handler) CapTable(w http.ResponseWriter, r *http.Request) {
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
	rows, err := h.Service.CapTable(projectID)
	if err != nil {
		http.Error(w, "could not load cap table", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

// VestingTimeline handles GET /users/{id}/vesting. Founders may only view
// their own timeline.
func (h *Handler) VestingTimeline(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if !user.IsStaff(role) && callerID != uint(userID) {
		http.Error(w, "you can only view your own vesting timeline", http.StatusForbidden)
		return
	}
	timeline, err := h.Service.VestingTimeline(uint(userID))
	if err != nil {
		http.Error(w, "could not load vesting timeline", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(timeline)
}
