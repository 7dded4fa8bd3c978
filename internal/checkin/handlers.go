// internal/checkin/handlers.go

package checkin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
)

// Handlers exposes check-in endpoints over HTTP
type Handlers struct {
	service Service
}

// NewHandlers creates check-in handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// Create handles POST /checkins
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrLocationNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Location not found")
		case errors.Is(err, ErrActivityNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create check-in")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, detail)
}

// ListActive handles GET /checkins with an optional locationId filter
func (h *Handlers) ListActive(w http.ResponseWriter, r *http.Request) {
	var locationID *int64
	if raw := r.URL.Query().Get("locationId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid locationId")
			return
		}
		locationID = &id
	}

	details, err := h.service.ListActive(r.Context(), locationID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load check-ins")
		return
	}

	utils.RespondWithData(w, http.StatusOK, details)
}

// Deactivate handles POST /checkins/{id}/deactivate
func (h *Handlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid check-in ID")
		return
	}

	detail, err := h.service.Deactivate(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrCheckinNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Check-in not found")
		case errors.Is(err, ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Only the owner can deactivate a check-in")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to deactivate check-in")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, detail)
}

// ListUserCheckins handles GET /users/{id}/checkins
func (h *Handlers) ListUserCheckins(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	details, err := h.service.ListUserCheckins(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load check-ins")
		return
	}

	utils.RespondWithData(w, http.StatusOK, details)
}
