// internal/messaging/handlers.go

package messaging

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
	"github.com/imadgeboyega/spotlink-backend/internal/common/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handlers exposes messaging endpoints over HTTP
type Handlers struct {
	service     Service
	hub         *Hub
	authService auth.Service
}

// NewHandlers creates messaging handlers
func NewHandlers(service Service, hub *Hub, authService auth.Service) *Handlers {
	return &Handlers{
		service:     service,
		hub:         hub,
		authService: authService,
	}
}

// Send handles POST /messages
func (h *Handlers) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.Send(r.Context(), senderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent):
			utils.RespondWithError(w, http.StatusBadRequest, "Message content is empty")
		case errors.Is(err, ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, message)
}

// MarkRead handles POST /messages/{id}/read
func (h *Handlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.service.MarkRead(r.Context(), messageID)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Message not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark message read")
		return
	}

	utils.RespondWithData(w, http.StatusOK, message)
}

// ListConversations handles GET /conversations
func (h *Handlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := h.service.ListConversationSummaries(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load conversations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, summaries)
}

// GetConversation handles GET /conversations/{partnerId}
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid partner ID")
		return
	}

	messages, err := h.service.ListConversation(r.Context(), userID, partnerID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load conversation")
		return
	}

	utils.RespondWithData(w, http.StatusOK, messages)
}

// ServeWS handles GET /ws. Browsers cannot set headers on websocket
// upgrades, so the token rides in the query string.
func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	claims, err := h.authService.ValidateToken(r.Context(), token)
	if err != nil || claims.Type != "access" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, claims.UserID)
	h.hub.register <- client
	client.Start()
}
