// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
)

// Routes mounts all Event routes under the base path (typically
// "/api/events" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Get("/organization/{organizationId}/events", h.ServeOrganizationEvents)

	// Organization routes
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireKind(auth.KindOrganization))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/volunteer/accept", h.HandleVolunteerAccept)
	})

	// Volunteer routes
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireKind(auth.KindUser))
		pr.Post("/volunteer/request", h.HandleVolunteerRequest)
	})

	return r
}
