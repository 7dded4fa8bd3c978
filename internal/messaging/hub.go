// internal/messaging/hub.go
// Websocket hub pushing message and read events to connected users.

package messaging

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Hub maintains active websocket connections. One connection per user; a
// new connection replaces the old one.
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. Call Run in a goroutine before registering clients.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes client registration until Shutdown.
func (h *Hub) Run() {
	defer h.cleanup()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if oldClient, exists := h.clients[client.userID]; exists {
		oldClient.close()
	}
	h.clients[client.userID] = client
	activeConnections.Set(float64(len(h.clients)))

	log.Printf("User %d connected. Total clients: %d", client.userID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if current, exists := h.clients[client.userID]; exists && current == client {
		client.close()
		delete(h.clients, client.userID)
		activeConnections.Set(float64(len(h.clients)))

		log.Printf("User %d disconnected. Total clients: %d", client.userID, len(h.clients))
	}
}

// NotifyMessage pushes a new-message event to the receiver if connected.
func (h *Hub) NotifyMessage(message *store.Message) {
	h.sendToUser(message.ReceiverID, WSMessage{
		Type:      WSTypeMessage,
		Data:      mustMarshalJSON(message),
		Timestamp: time.Now(),
	})
}

// NotifyRead tells the sender their message was read.
func (h *Hub) NotifyRead(message *store.Message) {
	h.sendToUser(message.SenderID, WSMessage{
		Type:      WSTypeRead,
		Data:      mustMarshalJSON(message),
		Timestamp: time.Now(),
	})
}

func (h *Hub) sendToUser(userID int64, message WSMessage) {
	h.clientsMux.RLock()
	client, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	select {
	case client.send <- data:
	default:
		// Slow consumer, drop the connection.
		go h.unregisterClient(client)
	}
}

// IsUserOnline reports whether a user has a live connection.
func (h *Hub) IsUserOnline(userID int64) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

// GetActiveConnections returns the connected client count.
func (h *Hub) GetActiveConnections() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

// Shutdown stops the run loop and closes every connection.
func (h *Hub) Shutdown() {
	h.cancel()
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[int64]*Client)
	activeConnections.Set(0)
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling: %v", err)
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(data)
}
