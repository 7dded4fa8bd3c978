// internal/connections/models.go

package connections

import (
	"time"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// WaveRequest sends a connection request to another user.
type WaveRequest struct {
	ReceiverID int64   `json:"receiver_id" validate:"required,gt=0"`
	Message    *string `json:"message,omitempty" validate:"omitempty,max=280"`
}

// RespondRequest resolves a pending wave.
type RespondRequest struct {
	Action string `json:"action" validate:"required,oneof=accepted declined"`
}

// Wave is a connection request with both parties redacted for the client.
type Wave struct {
	ID        int64           `json:"id"`
	Sender    *store.UserInfo `json:"sender"`
	Receiver  *store.UserInfo `json:"receiver"`
	Message   *string         `json:"message,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
