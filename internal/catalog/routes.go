// internal/catalog/routes.go

package catalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts catalog endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("/locations", handlers.ListLocations).Methods(http.MethodGet)
	protected.HandleFunc("/locations/{id:[0-9]+}", handlers.GetLocation).Methods(http.MethodGet)
	protected.HandleFunc("/interests", handlers.ListInterests).Methods(http.MethodGet)
	protected.HandleFunc("/activities", handlers.ListActivities).Methods(http.MethodGet)
}
