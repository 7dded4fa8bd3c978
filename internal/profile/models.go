// internal/profile/models.go

package profile

import "github.com/imadgeboyega/spotlink-backend/internal/store"

// UpdateProfileRequest patches the caller's own profile. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// AddInterestRequest attaches a catalog interest to the caller.
type AddInterestRequest struct {
	InterestID int64 `json:"interest_id" validate:"required,gt=0"`
}

// AddActivityRequest attaches a catalog activity to the caller.
type AddActivityRequest struct {
	ActivityID int64 `json:"activity_id" validate:"required,gt=0"`
}

// ProfileResponse is the public view of a user.
type ProfileResponse struct {
	User       *store.UserInfo   `json:"user"`
	Interests  []*store.Interest `json:"interests"`
	Activities []*store.Activity `json:"activities"`
}
