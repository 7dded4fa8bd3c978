// internal/messaging/models.go

package messaging

import (
	"encoding/json"
	"time"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// SendRequest sends a direct message.
type SendRequest struct {
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=2000"`
}

// ConversationSummary is one inbox row: the partner, the latest message in
// either direction and how many of their messages remain unread.
type ConversationSummary struct {
	Partner     *store.UserInfo `json:"partner"`
	LastMessage *store.Message  `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

// Websocket event types pushed to connected clients. The REST API stays the
// source of truth; events are fire-and-forget.
const (
	WSTypeMessage = "message"
	WSTypeRead    = "read"
)

// WSMessage is the envelope for every websocket event.
type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}
