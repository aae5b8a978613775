package contribution

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/gorilla/mux"
)

// PointsComputer derives the point value for an entry. Implemented by the
// points engine; an interface here keeps the dependency one-directional.
type PointsComputer interface {
	ComputeForEntry(projectID uint, hours, amount, otherPoints *float64) (float64, error)
}

// Handler serves contribution routes.
type Handler struct {
	Repo     *Repository
	Projects *project.Repository
	Points   PointsComputer
}

func NewHandler(repo *Repository, projects *project.Repository, points PointsComputer) *Handler {
	return &Handler{Repo: repo, Projects: projects, Points: points}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create handles POST /projects/{id}/contributions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())

	p, err := h.Projects.FindByID(uint(projectID))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if !p.CanAccess(callerID, role) {
		apperrors.Write(w, apperrors.Forbidden("you do not have access to this project"))
		return
	}

	var dto CreateContributionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Type != TypeTime && dto.Type != TypeCash && dto.Type != TypeOther {
		http.Error(w, "type must be TIME, CASH or OTHER", http.StatusBadRequest)
		return
	}
	date := time.Now()
	if dto.Date != "" {
		t, err := parseDate(dto.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		date = t
	}
	// Staff may log on another founder's behalf.
	ownerID := callerID
	if dto.UserID != nil && user.IsStaff(role) {
		ownerID = *dto.UserID
	}

	points, err := h.Points.ComputeForEntry(p.ID, dto.Hours, dto.Amount, dto.OtherPoints)
	if err != nil {
		http.Error(w, "could not compute points", http.StatusInternalServerError)
		return
	}
	c := Contribution{
		UserID:         ownerID,
		ProjectID:      p.ID,
		Type:           dto.Type,
		Hours:          dto.Hours,
		Amount:         dto.Amount,
		OtherPoints:    dto.OtherPoints,
		Points:         points,
		Date:           date,
		ConversionRate: dto.ConversionRate,
		Notes:          dto.Notes,
		AttachmentURL:  dto.AttachmentURL,
	}
	if dto.DeferToEquity != nil {
		c.DeferToEquity = *dto.DeferToEquity
	}
	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "could not create contribution", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ListByProject handles GET /projects/{id}/contributions.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	p, err := h.Projects.FindByID(uint(projectID))
	if err != nil {
		apperrors.Write(w, err)
		return
	}
	if !p.CanAccess(callerID, role) {
		apperrors.Write(w, apperrors.Forbidden("you do not have access to this project"))
		return
	}
	list, err := h.Repo.FindByProject(p.ID)
	if err != nil {
		http.Error(w, "could not list contributions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListByUser handles GET /users/{id}/contributions. Founders may only list
// their own.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if !user.IsStaff(role) && callerID != uint(userID) {
		apperrors.Write(w, apperrors.Forbidden("you can only view your own contributions"))
		return
	}
	list, err := h.Repo.FindByUser(uint(userID))
	if err != nil {
		http.Error(w, "could not list contributions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Update handles PUT /contributions/{id}. Points are recomputed whenever a
// source field changes; they are never taken from the payload.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadForMutation(w, r)
	if !ok {
		return
	}
	var dto UpdateContributionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Type != nil {
		if *dto.Type != TypeTime && *dto.Type != TypeCash && *dto.Type != TypeOther {
			http.Error(w, "type must be TIME, CASH or OTHER", http.StatusBadRequest)
			return
		}
		c.Type = *dto.Type
	}
	sourceChanged := dto.Type != nil || dto.Hours != nil || dto.Amount != nil || dto.OtherPoints != nil
	if dto.Hours != nil {
		c.Hours = dto.Hours
	}
	if dto.Amount != nil {
		c.Amount = dto.Amount
	}
	if dto.OtherPoints != nil {
		c.OtherPoints = dto.OtherPoints
	}
	if dto.Date != nil {
		t, err := parseDate(*dto.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		c.Date = t
	}
	if dto.DeferToEquity != nil {
		c.DeferToEquity = *dto.DeferToEquity
	}
	if dto.ConversionRate != nil {
		c.ConversionRate = dto.ConversionRate
	}
	if dto.Notes != nil {
		c.Notes = *dto.Notes
	}
	if dto.AttachmentURL != nil {
		c.AttachmentURL = *dto.AttachmentURL
	}
	if sourceChanged {
		points, err := h.Points.ComputeForEntry(c.ProjectID, c.Hours, c.Amount, c.OtherPoints)
		if err != nil {
			http.Error(w, "could not compute points", http.StatusInternalServerError)
			return
		}
		c.Points = points
	}
	if err := h.Repo.Update(c); err != nil {
		http.Error(w, "could not update contribution", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Delete handles DELETE /contributions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadForMutation(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Delete(c); err != nil {
		http.Error(w, "could not delete contribution", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadForMutation fetches the contribution and applies the mutation rule:
// staff always; founders only for their own entries or entries on projects
// they own or belong to.
func (h *Handler) loadForMutation(w http.ResponseWriter, r *http.Request) (*Contribution, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid contribution id", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repo.FindByID(uint(id))
	if err != nil {
		apperrors.Write(w, err)
		return nil, false
	}
	callerID, _ := auth.UserIDFrom(r.Context())
	role := auth.RoleFrom(r.Context())
	if user.IsStaff(role) {
		return c, true
	}
	if c.UserID == callerID {
		return c, true
	}
	p, err := h.Projects.FindByID(c.ProjectID)
	if err == nil && p.CanAccess(callerID, role) {
		return c, true
	}
	apperrors.Write(w, apperrors.Forbidden("you cannot edit this contribution"))
	return nil, false
}
