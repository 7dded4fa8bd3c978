// internal/profile/handlers.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
)

// Handlers exposes profile endpoints over HTTP
type Handlers struct {
	service       Service
	uploadService UploadService
	maxUploadSize int64
}

// NewHandlers creates profile handlers
func NewHandlers(service Service, uploadService UploadService, maxUploadSize int64) *Handlers {
	return &Handlers{
		service:       service,
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
	}
}

// GetProfile handles GET /users/{id}
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// UpdateProfile handles PATCH /users/me
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, user)
}

// UploadAvatar handles POST /users/me/avatar
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	url, err := h.uploadService.UploadFile(r.Context(), file, header, "avatars")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	user, err := h.service.UpdateAvatar(r.Context(), userID, url)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	utils.RespondWithData(w, http.StatusOK, user)
}

// AddInterest handles POST /users/me/interests
func (h *Handlers) AddInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	interests, err := h.service.AddInterest(r.Context(), userID, req.InterestID)
	if err != nil {
		if errors.Is(err, ErrInterestNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Interest not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add interest")
		return
	}

	utils.RespondWithData(w, http.StatusOK, interests)
}

// RemoveInterest handles DELETE /users/me/interests/{interestId}
func (h *Handlers) RemoveInterest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	interestID, err := parseID(mux.Vars(r)["interestId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid interest ID")
		return
	}

	interests, err := h.service.RemoveInterest(r.Context(), userID, interestID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove interest")
		return
	}

	utils.RespondWithData(w, http.StatusOK, interests)
}

// AddActivity handles POST /users/me/activities
func (h *Handlers) AddActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	activities, err := h.service.AddActivity(r.Context(), userID, req.ActivityID)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add activity")
		return
	}

	utils.RespondWithData(w, http.StatusOK, activities)
}

// RemoveActivity handles DELETE /users/me/activities/{activityId}
func (h *Handlers) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	activityID, err := parseID(mux.Vars(r)["activityId"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	activities, err := h.service.RemoveActivity(r.Context(), userID, activityID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove activity")
		return
	}

	utils.RespondWithData(w, http.StatusOK, activities)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
