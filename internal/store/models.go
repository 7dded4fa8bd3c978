// internal/store/models.go

package store

import (
	"time"
)

// Connection request statuses. Requests start pending and move to exactly
// one terminal state.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// User is the full account record, including credentials. It must never be
// serialized to a client directly; use Info() at every boundary.
type User struct {
	ID              int64     `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	FirstName       *string   `json:"first_name,omitempty" db:"first_name"`
	LastName        *string   `json:"last_name,omitempty" db:"last_name"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	Bio             *string   `json:"bio,omitempty" db:"bio"`
	Location        *string   `json:"location,omitempty" db:"location"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// UserInfo is the redacted view of a user that crosses the API boundary.
type UserInfo struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`
}

// Info strips credential fields from a user.
func (u *User) Info() *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Bio:             u.Bio,
		Location:        u.Location,
	}
}

// Location is a physical place users can check in at.
type Location struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Address string  `json:"address" db:"address"`
	Type    string  `json:"type" db:"type"`
	Icon    *string `json:"icon,omitempty" db:"icon"`
}

// Interest is a named topic users declare and check-ins get tagged with.
type Interest struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Activity is what a user is doing at a location (networking, studying...).
type Activity struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Icon *string `json:"icon,omitempty" db:"icon"`
}

type UserInterest struct {
	ID         int64 `json:"id" db:"id"`
	UserID     int64 `json:"user_id" db:"user_id"`
	InterestID int64 `json:"interest_id" db:"interest_id"`
}

type UserActivity struct {
	ID         int64 `json:"id" db:"id"`
	UserID     int64 `json:"user_id" db:"user_id"`
	ActivityID int64 `json:"activity_id" db:"activity_id"`
}

// Checkin is a time-bounded presence record. IsActive only tracks explicit
// deactivation; whether a check-in is discoverable also depends on ExpiresAt
// at read time.
type Checkin struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	LocationID int64     `json:"location_id" db:"location_id"`
	ActivityID int64     `json:"activity_id" db:"activity_id"`
	Note       *string   `json:"note,omitempty" db:"note"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	IsActive   bool      `json:"is_active" db:"is_active"`
}

type CheckinInterest struct {
	ID         int64 `json:"id" db:"id"`
	CheckinID  int64 `json:"checkin_id" db:"checkin_id"`
	InterestID int64 `json:"interest_id" db:"interest_id"`
}

// ConnectionRequest is a "wave" from one user to another.
type ConnectionRequest struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	Message    *string   `json:"message,omitempty" db:"message"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Message is a direct message. Content is immutable once created; IsRead
// flips false→true only.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	IsRead     bool      `json:"is_read" db:"is_read"`
}
