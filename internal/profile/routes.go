// internal/profile/routes.go

package profile

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/imadgeboyega/spotlink-backend/internal/auth"
)

// RegisterRoutes mounts profile endpoints on the API router.
func RegisterRoutes(router *mux.Router, handlers *Handlers, middleware *auth.Middleware) {
	protected := router.PathPrefix("/users").Subrouter()
	protected.Use(middleware.Authenticate)

	protected.HandleFunc("/me", handlers.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/me/avatar", handlers.UploadAvatar).Methods(http.MethodPost)
	protected.HandleFunc("/me/interests", handlers.AddInterest).Methods(http.MethodPost)
	protected.HandleFunc("/me/interests/{interestId:[0-9]+}", handlers.RemoveInterest).Methods(http.MethodDelete)
	protected.HandleFunc("/me/activities", handlers.AddActivity).Methods(http.MethodPost)
	protected.HandleFunc("/me/activities/{activityId:[0-9]+}", handlers.RemoveActivity).Methods(http.MethodDelete)
	protected.HandleFunc("/{id:[0-9]+}", handlers.GetProfile).Methods(http.MethodGet)
}
