package company

import (
	"encoding/json"
	"net/http"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/user"
)

// Handler serves the dashboard route.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Dashboard handles GET /dashboard. Staff get the company-wide view,
// founders their own.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}
	role := auth.RoleFrom(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if user.IsStaff(role) {
		dashboard, err := h.Service.AdminDashboard()
		if err != nil {
			http.Error(w, "could not build dashboard", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(dashboard)
		return
	}
	dashboard, err := h.Service.FounderDashboard(userID)
	if err != nil {
		http.Error(w, "could not build dashboard", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(dashboard)
}
