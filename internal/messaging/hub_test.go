// internal/messaging/hub_test.go

package messaging

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.clientsMux.RLock()
		defer hub.clientsMux.RUnlock()
		return hub.clients[client.userID] == client
	}, time.Second, time.Millisecond)
}

func TestHubReplacesExistingConnection(t *testing.T) {
	hub := startHub(t)

	first := NewClient(hub, nil, 1)
	second := NewClient(hub, nil, 1)

	registerAndWait(t, hub, first)
	registerAndWait(t, hub, second)

	assert.Equal(t, 1, hub.GetActiveConnections())
	assert.True(t, hub.IsUserOnline(1))

	// The replaced client was told to shut down.
	select {
	case <-first.done:
	default:
		t.Fatal("replaced client was not closed")
	}
}

func TestHubUnregisterIgnoresStaleClient(t *testing.T) {
	hub := startHub(t)

	stale := NewClient(hub, nil, 1)
	current := NewClient(hub, nil, 1)

	registerAndWait(t, hub, stale)
	registerAndWait(t, hub, current)

	// The stale client's read pump exiting must not evict its replacement.
	hub.unregisterClient(stale)
	assert.True(t, hub.IsUserOnline(1))

	hub.unregisterClient(current)
	assert.False(t, hub.IsUserOnline(1))
}

func TestHubNotifyDuringReplacementDoesNotPanic(t *testing.T) {
	hub := startHub(t)

	const userID = int64(7)
	message := &store.Message{ID: 1, SenderID: 2, ReceiverID: userID, Content: "hi"}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.NotifyMessage(message)
			}
		}
	}()

	// Each registration closes the previous connection while pushes are in
	// flight. The send channel is never closed, so no push can panic. The
	// register channel is unbuffered, so every handoff reaches the run loop
	// before the next one is queued.
	for i := 0; i < 200; i++ {
		hub.register <- NewClient(hub, nil, userID)
	}

	close(stop)
	wg.Wait()
}

func TestClientCloseIsIdempotent(t *testing.T) {
	client := NewClient(nil, nil, 1)
	client.close()
	client.close()

	select {
	case <-client.done:
	default:
		t.Fatal("done channel not closed")
	}
}
