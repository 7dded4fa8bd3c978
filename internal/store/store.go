// internal/store/store.go

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// decide whether that is a request error (entity looked up by ID) or
// expected sparse data (opportunistic join) to be skipped.
var ErrNotFound = errors.New("record not found")

// Store owns every entity lifetime. Business components hold no state of
// their own and re-read through this interface on every operation, so any
// backend with per-call atomicity can sit behind it.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAllUsers(ctx context.Context) ([]*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error

	// Locations
	GetLocation(ctx context.Context, id int64) (*Location, error)
	GetAllLocations(ctx context.Context) ([]*Location, error)
	CreateLocation(ctx context.Context, location *Location) error

	// Interests
	GetInterest(ctx context.Context, id int64) (*Interest, error)
	GetAllInterests(ctx context.Context) ([]*Interest, error)
	CreateInterest(ctx context.Context, interest *Interest) error

	// User interests
	GetUserInterests(ctx context.Context, userID int64) ([]*Interest, error)
	AddUserInterest(ctx context.Context, userID, interestID int64) error
	RemoveUserInterest(ctx context.Context, userID, interestID int64) error

	// Activities
	GetActivity(ctx context.Context, id int64) (*Activity, error)
	GetAllActivities(ctx context.Context) ([]*Activity, error)
	CreateActivity(ctx context.Context, activity *Activity) error

	// User activities
	GetUserActivities(ctx context.Context, userID int64) ([]*Activity, error)
	AddUserActivity(ctx context.Context, userID, activityID int64) error
	RemoveUserActivity(ctx context.Context, userID, activityID int64) error

	// Check-ins. CreateCheckin writes the check-in row and its interest
	// tags as one logical transaction: no reader may observe the row
	// without its tags.
	GetCheckin(ctx context.Context, id int64) (*Checkin, error)
	GetUserCheckins(ctx context.Context, userID int64) ([]*Checkin, error)
	GetAllCheckins(ctx context.Context) ([]*Checkin, error)
	GetCheckinsByLocation(ctx context.Context, locationID int64) ([]*Checkin, error)
	CreateCheckin(ctx context.Context, checkin *Checkin, interestIDs []int64) error
	DeactivateCheckin(ctx context.Context, id int64) (*Checkin, error)
	GetCheckinInterests(ctx context.Context, checkinID int64) ([]*Interest, error)

	// Messages
	GetMessage(ctx context.Context, id int64) (*Message, error)
	GetUserMessages(ctx context.Context, userID int64) ([]*Message, error)
	CreateMessage(ctx context.Context, message *Message) error
	MarkMessageRead(ctx context.Context, id int64) (*Message, error)

	// Connection requests
	GetConnectionRequest(ctx context.Context, id int64) (*ConnectionRequest, error)
	GetSentConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error)
	GetReceivedConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error)
	HasPendingConnectionRequest(ctx context.Context, senderID, receiverID int64) (bool, error)
	CreateConnectionRequest(ctx context.Context, request *ConnectionRequest) error
	UpdateConnectionRequestStatus(ctx context.Context, id int64, status string) (*ConnectionRequest, error)
}
