package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

type fixture struct {
	store    *store.MemStore
	service  *service
	user     *store.User
	location *store.Location
	activity *store.Activity
	coffee   *store.Interest
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()

	user := &store.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(ctx, user))

	location := &store.Location{Name: "Cafe", Address: "1 Main St", Type: "cafe"}
	require.NoError(t, st.CreateLocation(ctx, location))

	activity := &store.Activity{Name: "Working"}
	require.NoError(t, st.CreateActivity(ctx, activity))

	coffee := &store.Interest{Name: "Coffee"}
	require.NoError(t, st.CreateInterest(ctx, coffee))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &service{store: st, now: func() time.Time { return now }}

	return &fixture{store: st, service: svc, user: user, location: location, activity: activity, coffee: coffee, now: now}
}

func TestCreateClampsDuration(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		wantHours int
	}{
		{"zero becomes minimum", 0, 1},
		{"negative becomes minimum", -3, 1},
		{"in range untouched", 2, 2},
		{"above maximum capped", 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			detail, err := f.service.Create(context.Background(), f.user.ID, &CreateRequest{
				LocationID:    f.location.ID,
				ActivityID:    f.activity.ID,
				DurationHours: tt.requested,
			})
			require.NoError(t, err)
			assert.Equal(t, f.now.Add(time.Duration(tt.wantHours)*time.Hour), detail.ExpiresAt)
			assert.Equal(t, f.now, detail.CreatedAt)
		})
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, 999, &CreateRequest{LocationID: f.location.ID, ActivityID: f.activity.ID})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.service.Create(ctx, f.user.ID, &CreateRequest{LocationID: 999, ActivityID: f.activity.ID})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = f.service.Create(ctx, f.user.ID, &CreateRequest{LocationID: f.location.ID, ActivityID: 999})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestCreateSkipsUnresolvableInterests(t *testing.T) {
	f := newFixture(t)

	detail, err := f.service.Create(context.Background(), f.user.ID, &CreateRequest{
		LocationID:  f.location.ID,
		ActivityID:  f.activity.ID,
		InterestIDs: []int64{f.coffee.ID, 999},
	})
	require.NoError(t, err)
	require.Len(t, detail.Interests, 1)
	assert.Equal(t, f.coffee.ID, detail.Interests[0].ID)
}

func TestIsLiveBoundaries(t *testing.T) {
	f := newFixture(t)

	detail, err := f.service.Create(context.Background(), f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 1,
	})
	require.NoError(t, err)

	c, err := f.store.GetCheckin(context.Background(), detail.ID)
	require.NoError(t, err)

	assert.True(t, IsLive(c, f.now.Add(59*time.Minute)))
	assert.False(t, IsLive(c, f.now.Add(60*time.Minute)), "expiry instant is not live")
	assert.False(t, IsLive(c, f.now.Add(61*time.Minute)))
}

func TestIsLiveRespectsDeactivation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	detail, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 4,
	})
	require.NoError(t, err)

	_, err = f.service.Deactivate(ctx, f.user.ID, detail.ID)
	require.NoError(t, err)

	c, err := f.store.GetCheckin(ctx, detail.ID)
	require.NoError(t, err)
	assert.False(t, IsLive(c, f.now), "deactivated check-in is not live even before expiry")
}

func TestDeactivateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	detail, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 1,
	})
	require.NoError(t, err)

	first, err := f.service.Deactivate(ctx, f.user.ID, detail.ID)
	require.NoError(t, err)
	assert.False(t, first.IsActive)

	second, err := f.service.Deactivate(ctx, f.user.ID, detail.ID)
	require.NoError(t, err)
	assert.False(t, second.IsActive)

	_, err = f.service.Deactivate(ctx, f.user.ID, 999)
	assert.ErrorIs(t, err, ErrCheckinNotFound)
}

func TestDeactivateRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &store.User{Username: "mallory", PasswordHash: "hash"}
	require.NoError(t, f.store.CreateUser(ctx, other))

	detail, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 2,
	})
	require.NoError(t, err)

	_, err = f.service.Deactivate(ctx, other.ID, detail.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The check-in is untouched.
	c, err := f.store.GetCheckin(ctx, detail.ID)
	require.NoError(t, err)
	assert.True(t, c.IsActive)
}

func TestListActiveFiltersExpiredAndInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 4,
	})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 1,
	})
	require.NoError(t, err)

	deactivated, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 4,
	})
	require.NoError(t, err)
	_, err = f.service.Deactivate(ctx, f.user.ID, deactivated.ID)
	require.NoError(t, err)

	// Move the clock past the short check-in's expiry.
	f.service.now = func() time.Time { return f.now.Add(2 * time.Hour) }

	details, err := f.service.ListActive(ctx, nil)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, live.ID, details[0].ID)
}

func TestListActiveLocationFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &store.Location{Name: "Library", Address: "2 Oak Ave", Type: "library"}
	require.NoError(t, f.store.CreateLocation(ctx, other))

	_, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 2,
	})
	require.NoError(t, err)

	atOther, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    other.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 2,
	})
	require.NoError(t, err)

	details, err := f.service.ListActive(ctx, &other.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, atOther.ID, details[0].ID)
	assert.Equal(t, "Library", details[0].Location.Name)
}

func TestDetailRedactsUser(t *testing.T) {
	f := newFixture(t)

	detail, err := f.service.Create(context.Background(), f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, detail.User)
	assert.Equal(t, "alice", detail.User.Username)
}

func TestListUserCheckinsIncludesExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.user.ID, &CreateRequest{
		LocationID:    f.location.ID,
		ActivityID:    f.activity.ID,
		DurationHours: 1,
	})
	require.NoError(t, err)

	f.service.now = func() time.Time { return f.now.Add(3 * time.Hour) }

	history, err := f.service.ListUserCheckins(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = f.service.ListUserCheckins(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
