// internal/catalog/handlers.go
// Read-only listings for locations, interests and activities.

package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Handlers serves the catalog endpoints.
type Handlers struct {
	store store.Store
}

// NewHandlers creates catalog handlers
func NewHandlers(st store.Store) *Handlers {
	return &Handlers{store: st}
}

// ListLocations handles GET /locations
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.GetAllLocations(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load locations")
		return
	}
	utils.RespondWithData(w, http.StatusOK, locations)
}

// GetLocation handles GET /locations/{id}
func (h *Handlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid location ID")
		return
	}

	location, err := h.store.GetLocation(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Location not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load location")
		return
	}
	utils.RespondWithData(w, http.StatusOK, location)
}

// ListInterests handles GET /interests
func (h *Handlers) ListInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := h.store.GetAllInterests(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load interests")
		return
	}
	utils.RespondWithData(w, http.StatusOK, interests)
}

// ListActivities handles GET /activities
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.GetAllActivities(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load activities")
		return
	}
	utils.RespondWithData(w, http.StatusOK, activities)
}
