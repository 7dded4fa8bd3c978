// internal/auth/handlers.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Handlers exposes auth endpoints over HTTP
type Handlers struct {
	service Service
	store   store.Store
}

// NewHandlers creates auth handlers
func NewHandlers(service Service, st store.Store) *Handlers {
	return &Handlers{
		service: service,
		store:   st,
	}
}

// Register handles POST /auth/register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			utils.RespondWithError(w, http.StatusConflict, "Username already taken")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	utils.RespondWithData(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing authorization header")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Logged out")
}

// Me handles GET /auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	interests, err := h.store.GetUserInterests(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load interests")
		return
	}

	activities, err := h.store.GetUserActivities(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load activities")
		return
	}

	utils.RespondWithData(w, http.StatusOK, &MeResponse{
		User:       user.Info(),
		Interests:  interests,
		Activities: activities,
	})
}
