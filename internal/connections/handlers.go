// internal/connections/handlers.go

package connections

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
)

// Handlers exposes wave endpoints over HTTP
type Handlers struct {
	service Service
}

// NewHandlers creates connections handlers
func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// SendWave handles POST /waves
func (h *Handlers) SendWave(w http.ResponseWriter, r *http.Request) {
	senderID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req WaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	wave, err := h.service.SendWave(r.Context(), senderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotWaveSelf):
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot wave at yourself")
		case errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrDuplicatePending):
			utils.RespondWithError(w, http.StatusConflict, "A pending wave to this user already exists")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send wave")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, wave)
}

// Respond handles POST /waves/{id}/respond
func (h *Handlers) Respond(w http.ResponseWriter, r *http.Request) {
	receiverID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	waveID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid wave ID")
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	wave, err := h.service.Respond(r.Context(), waveID, receiverID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, ErrWaveNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Wave not found")
		case errors.Is(err, ErrNotReceiver):
			utils.RespondWithError(w, http.StatusForbidden, "Only the receiver can respond to this wave")
		case errors.Is(err, ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Wave has already been resolved")
		case errors.Is(err, ErrInvalidAction):
			utils.RespondWithError(w, http.StatusBadRequest, "Action must be accepted or declined")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to respond to wave")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, wave)
}

// ListSent handles GET /waves/sent
func (h *Handlers) ListSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	waves, err := h.service.ListSent(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load waves")
		return
	}

	utils.RespondWithData(w, http.StatusOK, waves)
}

// ListReceived handles GET /waves/received
func (h *Handlers) ListReceived(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	waves, err := h.service.ListReceived(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load waves")
		return
	}

	utils.RespondWithData(w, http.StatusOK, waves)
}
