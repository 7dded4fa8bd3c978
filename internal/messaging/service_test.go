package messaging

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

func TestSendRejectsBlankContent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st, nil)

	_, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: ""})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: "   \n\t "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestSendStoresContentVerbatim(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st, nil)
	message, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: "  hello  "})
	require.NoError(t, err)

	assert.Equal(t, "  hello  ", message.Content)
	assert.False(t, message.IsRead)
}

func TestSendValidatesUsers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")

	svc := NewService(st, nil)

	_, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: 999, Content: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Send(ctx, 999, &SendRequest{ReceiverID: alice.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st, nil)
	message, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: "hi"})
	require.NoError(t, err)

	first, err := svc.MarkRead(ctx, message.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRead)

	second, err := svc.MarkRead(ctx, message.ID)
	require.NoError(t, err)
	assert.True(t, second.IsRead)

	_, err = svc.MarkRead(ctx, 999)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestConversationOrderingAndPairing(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	svc := NewService(st, nil)

	_, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: "hello"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, bob.ID, &SendRequest{ReceiverID: alice.ID, Content: "hi"})
	require.NoError(t, err)
	// Noise from a different pair must not leak into the thread.
	_, err = svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: carol.ID, Content: "hey carol"})
	require.NoError(t, err)

	thread, err := svc.ListConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hello", thread[0].Content)
	assert.Equal(t, "hi", thread[1].Content)

	// The thread is the same regardless of which side asks.
	mirrored, err := svc.ListConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, mirrored, 2)
	assert.Equal(t, thread[0].ID, mirrored[0].ID)
	assert.Equal(t, thread[1].ID, mirrored[1].ID)
}

func TestConversationSummaries(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	svc := NewService(st, nil)

	_, err := svc.Send(ctx, bob.ID, &SendRequest{ReceiverID: alice.ID, Content: "from bob"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, carol.ID, &SendRequest{ReceiverID: alice.ID, Content: "from carol 1"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, carol.ID, &SendRequest{ReceiverID: alice.ID, Content: "from carol 2"})
	require.NoError(t, err)

	summaries, err := svc.ListConversationSummaries(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Carol's conversation has the newest message and sorts first.
	assert.Equal(t, carol.ID, summaries[0].Partner.ID)
	assert.Equal(t, "from carol 2", summaries[0].LastMessage.Content)
	assert.Equal(t, 2, summaries[0].UnreadCount)

	assert.Equal(t, bob.ID, summaries[1].Partner.ID)
	assert.Equal(t, 1, summaries[1].UnreadCount)
}

func TestSummariesCountOnlyInboundUnread(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	svc := NewService(st, nil)

	// Alice's own unread outbound message must not count against her.
	_, err := svc.Send(ctx, alice.ID, &SendRequest{ReceiverID: bob.ID, Content: "sent by alice"})
	require.NoError(t, err)
	inbound, err := svc.Send(ctx, bob.ID, &SendRequest{ReceiverID: alice.ID, Content: "sent by bob"})
	require.NoError(t, err)

	summaries, err := svc.ListConversationSummaries(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].UnreadCount)

	_, err = svc.MarkRead(ctx, inbound.ID)
	require.NoError(t, err)

	summaries, err = svc.ListConversationSummaries(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summaries[0].UnreadCount)
}
