// internal/auth/routes.go

package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts auth endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *Middleware) {
	router.HandleFunc("/auth/register", handlers.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", handlers.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh", handlers.Refresh).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout", handlers.Logout).Methods(http.MethodPost)

	protected := router.PathPrefix("/auth").Subrouter()
	protected.Use(middleware.Authenticate)
	protected.HandleFunc("/me", handlers.Me).Methods(http.MethodGet)
}
