// internal/app/features/ws/handler.go
package ws

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/realtime"
	"go.uber.org/zap"
)

// Handler upgrades websocket connections onto the hub. Joining rooms
// and relaying happen inside the connection protocol; the endpoint
// itself carries no session, like the ephemeral relay path it serves.
type Handler struct {
	Hub *realtime.Hub
	Log *zap.Logger
}

// NewHandler constructs the websocket endpoint handler.
func NewHandler(hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: hub, Log: logger}
}

// Serve handles GET /ws.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	realtime.ServeWS(h.Hub, h.Log, w, r)
}

// Routes returns a subrouter serving the websocket endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
