// internal/connections/routes.go

package connections

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts wave endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.PathPrefix("/waves").Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("", handlers.SendWave).Methods(http.MethodPost)
	protected.HandleFunc("/sent", handlers.ListSent).Methods(http.MethodGet)
	protected.HandleFunc("/received", handlers.ListReceived).Methods(http.MethodGet)
	protected.HandleFunc("/{id:[0-9]+}/respond", handlers.Respond).Methods(http.MethodPost)
}
