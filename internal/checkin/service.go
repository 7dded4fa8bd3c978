// internal/checkin/service.go
// Check-in lifecycle: creation with a bounded duration, lazy expiry and
// explicit deactivation.

package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrCheckinNotFound  = errors.New("check-in not found")
	ErrNotOwner         = errors.New("check-in belongs to another user")
)

const (
	minDurationHours = 1
	maxDurationHours = 4
)

// Service interface
type Service interface {
	Create(ctx context.Context, userID int64, req *CreateRequest) (*Detail, error)
	Deactivate(ctx context.Context, userID, id int64) (*Detail, error)
	ListActive(ctx context.Context, locationID *int64) ([]*Detail, error)
	ListUserCheckins(ctx context.Context, userID int64) ([]*Detail, error)
}

type service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a new check-in service
func NewService(st store.Store) Service {
	return &service{
		store: st,
		now:   time.Now,
	}
}

// IsLive reports whether a check-in is discoverable at the given instant.
// Expiry is evaluated lazily at read time; a check-in expiring exactly at
// now is no longer live.
func IsLive(c *store.Checkin, now time.Time) bool {
	return c.IsActive && c.ExpiresAt.After(now)
}

// clampDuration forces the requested duration into the allowed window
// instead of rejecting the request.
func clampDuration(hours int) int {
	if hours < minDurationHours {
		return minDurationHours
	}
	if hours > maxDurationHours {
		return maxDurationHours
	}
	return hours
}

// Create validates the referenced entities, clamps the duration and writes
// the check-in with its interest tags in one store transaction.
func (s *service) Create(ctx context.Context, userID int64, req *CreateRequest) (*Detail, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if _, err := s.store.GetLocation(ctx, req.LocationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	if _, err := s.store.GetActivity(ctx, req.ActivityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	// Unresolvable interest IDs are dropped rather than failing the check-in.
	var interestIDs []int64
	for _, interestID := range req.InterestIDs {
		if _, err := s.store.GetInterest(ctx, interestID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load interest: %w", err)
		}
		interestIDs = append(interestIDs, interestID)
	}

	now := s.now()
	duration := clampDuration(req.DurationHours)

	checkin := &store.Checkin{
		UserID:     userID,
		LocationID: req.LocationID,
		ActivityID: req.ActivityID,
		Note:       req.Note,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(duration) * time.Hour),
		IsActive:   true,
	}
	if err := s.store.CreateCheckin(ctx, checkin, interestIDs); err != nil {
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	recordCheckinCreated()
	return s.toDetail(ctx, checkin)
}

// Deactivate turns a check-in off. Only the owner may deactivate;
// deactivating an already-inactive or already-expired check-in succeeds
// without further effect.
func (s *service) Deactivate(ctx context.Context, userID, id int64) (*Detail, error) {
	existing, err := s.store.GetCheckin(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("failed to load check-in: %w", err)
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	checkin, err := s.store.DeactivateCheckin(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("failed to deactivate check-in: %w", err)
	}

	recordCheckinDeactivated()
	return s.toDetail(ctx, checkin)
}

// ListActive returns live check-ins, optionally restricted to one location.
func (s *service) ListActive(ctx context.Context, locationID *int64) ([]*Detail, error) {
	var checkins []*store.Checkin
	var err error
	if locationID != nil {
		checkins, err = s.store.GetCheckinsByLocation(ctx, *locationID)
	} else {
		checkins, err = s.store.GetAllCheckins(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}

	now := s.now()
	details := make([]*Detail, 0, len(checkins))
	for _, c := range checkins {
		if !IsLive(c, now) {
			continue
		}
		detail, err := s.toDetail(ctx, c)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// ListUserCheckins returns a user's full check-in history, live or not.
func (s *service) ListUserCheckins(ctx context.Context, userID int64) ([]*Detail, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	checkins, err := s.store.GetUserCheckins(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-ins: %w", err)
	}

	details := make([]*Detail, 0, len(checkins))
	for _, c := range checkins {
		detail, err := s.toDetail(ctx, c)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *service) toDetail(ctx context.Context, c *store.Checkin) (*Detail, error) {
	user, err := s.store.GetUser(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	location, err := s.store.GetLocation(ctx, c.LocationID)
	if err != nil {
		return nil, err
	}
	activity, err := s.store.GetActivity(ctx, c.ActivityID)
	if err != nil {
		return nil, err
	}
	interests, err := s.store.GetCheckinInterests(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if interests == nil {
		interests = []*store.Interest{}
	}

	return &Detail{
		ID:        c.ID,
		User:      user.Info(),
		Location:  location,
		Activity:  activity,
		Note:      c.Note,
		Interests: interests,
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
		IsActive:  c.IsActive,
	}, nil
}
