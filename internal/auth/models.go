// internal/auth/models.go

package auth

import "github.com/imadgeboyega/spotlink-backend/internal/store"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=30,alphanum"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse carries a redacted user and a fresh token pair.
type AuthResponse struct {
	User         *store.UserInfo `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"` // access token lifetime in seconds
}

// MeResponse is the authenticated user's own view.
type MeResponse struct {
	User       *store.UserInfo   `json:"user"`
	Interests  []*store.Interest `json:"interests"`
	Activities []*store.Activity `json:"activities"`
}
