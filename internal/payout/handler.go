package payout

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

type PreparePayoutsDTO struct {
	PeriodStart string `json:"periodStart"` // YYYY-MM-DD
	PeriodEnd   string `json:"periodEnd"`
}

type ProfitShareDTO struct {
	PeriodStart string  `json:"periodStart"`
	PeriodEnd   string  `json:"periodEnd"`
	TotalAmount float64 `json:"totalAmount"`
}

// Handler serves payout routes. Batch operations and transitions are staff
// only (enforced at the router).
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// PrepareHourly handles POST /payouts/prepare-hourly.
func (h *Handler) PrepareHourly(w http.ResponseWriter, r *http.Request) {
	var dto PreparePayoutsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	start, end, err := parsePeriod(dto.PeriodStart, dto.PeriodEnd)
	if err != nil {
		http.Error(w, "invalid period dates", http.StatusBadRequest)
		return
	}
	prepared, err := h.Service.PrepareHourlyPayouts(start, end)
	if err != nil {
		http.Error(w, "could not prepare payouts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(prepared)
}

// AllocateProfit handles POST /payouts/profit-share.
func (h *Handler) AllocateProfit(w http.ResponseWriter, r *http.Request) {
	var dto ProfitShareDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.TotalAmount <= 0 {
		http.Error(w, "total amount must be positive", http.StatusBadRequest)
		return
	}
	start, end, err := parsePeriod(dto.PeriodStart, dto.PeriodEnd)
	if err != nil {
		http.Error(w, "invalid period dates", http.StatusBadRequest)
		return
	}
	created, err := h.Service.AllocateProfitShare(start, end, dto.TotalAmount)
	if err != nil {
		http.Error(w, "could not allocate profit share", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Execute handles POST /payouts/{id}/execute.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid payout id", http.StatusBadRequest)
		return
	}
	p, err := h.Service.Execute(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// DeferToEquity handles POST /payouts/{id}/defer.
func (h *Handler) DeferToEquity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid payout id", http.StatusBadRequest)
		return
	}
	p, err := h.Service.DeferToEquity(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// ListByUser handles GET /users/{id}/payouts. Founders may only list their
// own.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if !user.IsStaff(role) && callerID != uint(userID) {
		http.Error(w, "you can only view your own payouts", http.StatusForbidden)
		return
	}
	list, err := h.Service.FindByUser(uint(userID))
	if err != nil {
		http.Error(w, "could not list payouts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}
