// internal/app/features/chats/routes.go
package chats

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
)

// Routes mounts all Chat routes under the base path (typically
// "/api/chats" from bootstrap).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Reading a chat is open; posting requires a session and passes
	// the per-event access guard.
	r.Get("/event/{eventId}", h.ServeByEvent)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireActor)
		pr.Post("/{chatId}/message", h.HandleAppendMessage)
	})

	return r
}
