package connections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

func seedUser(t *testing.T, st *store.MemStore, username string) *store.User {
	t.Helper()
	user := &store.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func TestSendWaveCreatesPending(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st)
	msg := "hey!"
	wave, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID, Message: &msg})
	require.NoError(t, err)

	assert.Equal(t, store.RequestPending, wave.Status)
	assert.Equal(t, alice.ID, wave.Sender.ID)
	assert.Equal(t, bob.ID, wave.Receiver.ID)
	require.NotNil(t, wave.Message)
	assert.Equal(t, "hey!", *wave.Message)
}

func TestSendWaveGuards(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st)

	_, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: alice.ID})
	assert.ErrorIs(t, err, ErrCannotWaveSelf)

	_, err = svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: 999})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	require.NoError(t, err)

	// Second wave in the same direction while the first is pending.
	_, err = svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	assert.ErrorIs(t, err, ErrDuplicatePending)

	// The reverse direction is allowed independently.
	_, err = svc.SendWave(ctx, bob.ID, &WaveRequest{ReceiverID: alice.ID})
	assert.NoError(t, err)
}

func TestRespondTransitions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st)
	wave, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	require.NoError(t, err)

	accepted, err := svc.Respond(ctx, wave.ID, bob.ID, store.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, store.RequestAccepted, accepted.Status)

	// Terminal states cannot transition again, not even to themselves.
	_, err = svc.Respond(ctx, wave.ID, bob.ID, store.RequestDeclined)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Respond(ctx, wave.ID, bob.ID, store.RequestAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRespondGuards(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st)
	wave, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	require.NoError(t, err)

	_, err = svc.Respond(ctx, 999, bob.ID, store.RequestAccepted)
	assert.ErrorIs(t, err, ErrWaveNotFound)

	// The sender cannot resolve their own wave.
	_, err = svc.Respond(ctx, wave.ID, alice.ID, store.RequestAccepted)
	assert.ErrorIs(t, err, ErrNotReceiver)

	// Arbitrary status strings never reach the store.
	_, err = svc.Respond(ctx, wave.ID, bob.ID, "blocked")
	assert.ErrorIs(t, err, ErrInvalidAction)
	_, err = svc.Respond(ctx, wave.ID, bob.ID, store.RequestPending)
	assert.ErrorIs(t, err, ErrInvalidAction)

	got, err := st.GetConnectionRequest(ctx, wave.ID)
	require.NoError(t, err)
	assert.Equal(t, store.RequestPending, got.Status)
}

func TestResolvedWaveAllowsNewWave(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st)
	wave, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	require.NoError(t, err)

	_, err = svc.Respond(ctx, wave.ID, bob.ID, store.RequestDeclined)
	require.NoError(t, err)

	// Only pending waves block duplicates.
	_, err = svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	assert.NoError(t, err)
}

func TestListSentAndReceived(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	svc := NewService(st)
	_, err := svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: bob.ID})
	require.NoError(t, err)
	_, err = svc.SendWave(ctx, alice.ID, &WaveRequest{ReceiverID: carol.ID})
	require.NoError(t, err)
	_, err = svc.SendWave(ctx, carol.ID, &WaveRequest{ReceiverID: alice.ID})
	require.NoError(t, err)

	sent, err := svc.ListSent(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 2)
	// Newest first.
	assert.Equal(t, carol.ID, sent[0].Receiver.ID)
	assert.Equal(t, bob.ID, sent[1].Receiver.ID)

	received, err := svc.ListReceived(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, carol.ID, received[0].Sender.ID)
}
