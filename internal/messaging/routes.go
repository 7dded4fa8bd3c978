// internal/messaging/routes.go

package messaging

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts messaging endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("/messages", handlers.Send).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id:[0-9]+}/read", handlers.MarkRead).Methods(http.MethodPost)
	protected.HandleFunc("/conversations", handlers.ListConversations).Methods(http.MethodGet)
	protected.HandleFunc("/conversations/{partnerId:[0-9]+}", handlers.GetConversation).Methods(http.MethodGet)

	// Websocket does its own token check.
	router.HandleFunc("/ws", handlers.ServeWS).Methods(http.MethodGet)
}
