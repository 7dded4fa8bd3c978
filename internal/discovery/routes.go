// internal/discovery/routes.go

package discovery

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts discovery endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("/users/{id:[0-9]+}/recommendations", handlers.Recommendations).Methods(http.MethodGet)
}
