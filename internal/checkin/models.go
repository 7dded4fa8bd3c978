// internal/checkin/models.go

package checkin

import (
	"time"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// CreateRequest starts a new check-in for the authenticated user.
// DurationHours outside 1..4 is clamped, not rejected.
type CreateRequest struct {
	LocationID    int64   `json:"location_id" validate:"required,gt=0"`
	ActivityID    int64   `json:"activity_id" validate:"required,gt=0"`
	DurationHours int     `json:"duration_hours"`
	Note          *string `json:"note,omitempty" validate:"omitempty,max=280"`
	InterestIDs   []int64 `json:"interest_ids,omitempty"`
}

// Detail is the denormalized check-in view used by the live feed and
// history listings.
type Detail struct {
	ID        int64             `json:"id"`
	User      *store.UserInfo   `json:"user"`
	Location  *store.Location   `json:"location"`
	Activity  *store.Activity   `json:"activity"`
	Note      *string           `json:"note,omitempty"`
	Interests []*store.Interest `json:"interests"`
	CreatedAt time.Time         `json:"created_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	IsActive  bool              `json:"is_active"`
}
