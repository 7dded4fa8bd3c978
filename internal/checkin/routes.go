// internal/checkin/routes.go

package checkin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts check-in endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("/checkins", handlers.Create).Methods(http.MethodPost)
	protected.HandleFunc("/checkins", handlers.ListActive).Methods(http.MethodGet)
	protected.HandleFunc("/checkins/{id:[0-9]+}/deactivate", handlers.Deactivate).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id:[0-9]+}/checkins", handlers.ListUserCheckins).Methods(http.MethodGet)
}
