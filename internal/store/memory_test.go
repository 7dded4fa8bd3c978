package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *MemStore, username string) *User {
	t.Helper()
	user := &User{Username: username, PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestMemStoreUserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	user := seedUser(t, s, "alice")
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	byName, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	user := seedUser(t, s, "alice")

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	got.Username = "mutated"

	again, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
}

func TestMemStoreGetAllUsersSortedByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	seedUser(t, s, "c")
	seedUser(t, s, "a")
	seedUser(t, s, "b")

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
	assert.Equal(t, int64(3), users[2].ID)
}

func TestMemStoreUserInterests(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	user := seedUser(t, s, "alice")

	coffee := &Interest{Name: "Coffee"}
	design := &Interest{Name: "Design"}
	require.NoError(t, s.CreateInterest(ctx, coffee))
	require.NoError(t, s.CreateInterest(ctx, design))

	require.NoError(t, s.AddUserInterest(ctx, user.ID, design.ID))
	require.NoError(t, s.AddUserInterest(ctx, user.ID, coffee.ID))

	interests, err := s.GetUserInterests(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, interests, 2)
	assert.Equal(t, "Coffee", interests[0].Name)
	assert.Equal(t, "Design", interests[1].Name)

	require.NoError(t, s.RemoveUserInterest(ctx, user.ID, coffee.ID))
	interests, err = s.GetUserInterests(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, "Design", interests[0].Name)

	// Removing an interest the user never had is a no-op.
	require.NoError(t, s.RemoveUserInterest(ctx, user.ID, 999))
}

func TestMemStoreJoinAddsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	user := seedUser(t, s, "alice")

	coffee := &Interest{Name: "Coffee"}
	require.NoError(t, s.CreateInterest(ctx, coffee))
	require.NoError(t, s.AddUserInterest(ctx, user.ID, coffee.ID))
	require.NoError(t, s.AddUserInterest(ctx, user.ID, coffee.ID))

	interests, err := s.GetUserInterests(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 1)

	running := &Activity{Name: "Running"}
	require.NoError(t, s.CreateActivity(ctx, running))
	require.NoError(t, s.AddUserActivity(ctx, user.ID, running.ID))
	require.NoError(t, s.AddUserActivity(ctx, user.ID, running.ID))

	activities, err := s.GetUserActivities(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

func TestMemStoreCreateCheckinWritesTagsAtomically(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	user := seedUser(t, s, "alice")

	location := &Location{Name: "Cafe", Address: "1 Main St", Type: "cafe"}
	require.NoError(t, s.CreateLocation(ctx, location))
	activity := &Activity{Name: "Working"}
	require.NoError(t, s.CreateActivity(ctx, activity))

	coffee := &Interest{Name: "Coffee"}
	tech := &Interest{Name: "Technology"}
	require.NoError(t, s.CreateInterest(ctx, coffee))
	require.NoError(t, s.CreateInterest(ctx, tech))

	checkin := &Checkin{
		UserID:     user.ID,
		LocationID: location.ID,
		ActivityID: activity.ID,
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	require.NoError(t, s.CreateCheckin(ctx, checkin, []int64{coffee.ID, tech.ID}))
	assert.True(t, checkin.IsActive)
	assert.False(t, checkin.CreatedAt.IsZero())

	tags, err := s.GetCheckinInterests(ctx, checkin.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, coffee.ID, tags[0].ID)
	assert.Equal(t, tech.ID, tags[1].ID)
}

func TestMemStoreDeactivateCheckin(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	user := seedUser(t, s, "alice")

	location := &Location{Name: "Cafe", Address: "1 Main St", Type: "cafe"}
	require.NoError(t, s.CreateLocation(ctx, location))
	activity := &Activity{Name: "Working"}
	require.NoError(t, s.CreateActivity(ctx, activity))

	checkin := &Checkin{UserID: user.ID, LocationID: location.ID, ActivityID: activity.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.CreateCheckin(ctx, checkin, nil))

	got, err := s.DeactivateCheckin(ctx, checkin.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// Deactivating again succeeds and stays inactive.
	got, err = s.DeactivateCheckin(ctx, checkin.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = s.DeactivateCheckin(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreConnectionRequests(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	request := &ConnectionRequest{SenderID: alice.ID, ReceiverID: bob.ID, Status: RequestPending}
	require.NoError(t, s.CreateConnectionRequest(ctx, request))

	pending, err := s.HasPendingConnectionRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, pending)

	// The reverse direction is a different ordered pair.
	pending, err = s.HasPendingConnectionRequest(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, pending)

	updated, err := s.UpdateConnectionRequestStatus(ctx, request.ID, RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, RequestAccepted, updated.Status)

	pending, err = s.HasPendingConnectionRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestMemStoreMessages(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	message := &Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "hello"}
	require.NoError(t, s.CreateMessage(ctx, message))
	assert.False(t, message.IsRead)

	read, err := s.MarkMessageRead(ctx, message.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	messages, err := s.GetUserMessages(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)

	_, err = s.MarkMessageRead(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserInfoRedactsCredentials(t *testing.T) {
	user := &User{ID: 1, Username: "alice", PasswordHash: "secret"}
	info := user.Info()
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, int64(1), info.ID)

	var nilUser *User
	assert.Nil(t, nilUser.Info())
}
