// internal/discovery/handlers.go

package discovery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
)

// Handlers exposes recommendation endpoints over HTTP
type Handlers struct {
	engine *Engine
}

// NewHandlers creates discovery handlers
func NewHandlers(engine *Engine) *Handlers {
	return &Handlers{engine: engine}
}

// Recommendations handles GET /users/{id}/recommendations
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	candidates, err := h.engine.Recommend(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, candidates)
}
