// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInterestNotFound = errors.New("interest not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// Service interface
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*store.UserInfo, error)
	UpdateAvatar(ctx context.Context, userID int64, imageURL string) (*store.UserInfo, error)

	AddInterest(ctx context.Context, userID, interestID int64) ([]*store.Interest, error)
	RemoveInterest(ctx context.Context, userID, interestID int64) ([]*store.Interest, error)
	AddActivity(ctx context.Context, userID, activityID int64) ([]*store.Activity, error)
	RemoveActivity(ctx context.Context, userID, activityID int64) ([]*store.Activity, error)
}

type service struct {
	store store.Store
}

// NewService creates a new profile service
func NewService(st store.Store) Service {
	return &service{store: st}
}

// GetProfile returns the redacted user with interests and activities.
func (s *service) GetProfile(ctx context.Context, userID int64) (*ProfileResponse, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	interests, err := s.store.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}

	activities, err := s.store.GetUserActivities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	return &ProfileResponse{
		User:       user.Info(),
		Interests:  interests,
		Activities: activities,
	}, nil
}

// UpdateProfile applies non-nil fields to the caller's profile.
func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*store.UserInfo, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user.Info(), nil
}

// UpdateAvatar records a newly uploaded profile image URL.
func (s *service) UpdateAvatar(ctx context.Context, userID int64, imageURL string) (*store.UserInfo, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.ProfileImageURL = &imageURL
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user.Info(), nil
}

// AddInterest attaches an interest and returns the full list.
func (s *service) AddInterest(ctx context.Context, userID, interestID int64) ([]*store.Interest, error) {
	if _, err := s.store.GetInterest(ctx, interestID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInterestNotFound
		}
		return nil, fmt.Errorf("failed to load interest: %w", err)
	}

	if err := s.store.AddUserInterest(ctx, userID, interestID); err != nil {
		return nil, fmt.Errorf("failed to add interest: %w", err)
	}
	return s.store.GetUserInterests(ctx, userID)
}

// RemoveInterest detaches an interest and returns the full list. Removing an
// interest the user never had is a no-op.
func (s *service) RemoveInterest(ctx context.Context, userID, interestID int64) ([]*store.Interest, error) {
	if err := s.store.RemoveUserInterest(ctx, userID, interestID); err != nil {
		return nil, fmt.Errorf("failed to remove interest: %w", err)
	}
	return s.store.GetUserInterests(ctx, userID)
}

// AddActivity attaches an activity and returns the full list.
func (s *service) AddActivity(ctx context.Context, userID, activityID int64) ([]*store.Activity, error) {
	if _, err := s.store.GetActivity(ctx, activityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	if err := s.store.AddUserActivity(ctx, userID, activityID); err != nil {
		return nil, fmt.Errorf("failed to add activity: %w", err)
	}
	return s.store.GetUserActivities(ctx, userID)
}

// RemoveActivity detaches an activity and returns the full list.
func (s *service) RemoveActivity(ctx context.Context, userID, activityID int64) ([]*store.Activity, error) {
	if err := s.store.RemoveUserActivity(ctx, userID, activityID); err != nil {
		return nil, fmt.Errorf("failed to remove activity: %w", err)
	}
	return s.store.GetUserActivities(ctx, userID)
}
