// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
)

// Routes mounts all User routes under the base path (typically
// "/api/users" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	// Self-service routes (user session required)
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireKind(auth.KindUser))
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
