// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	chatsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/chats"
	eventsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/events"
	healthfeature "github.com/volunteerhub/volunteerhub/internal/app/features/health"
	organizationsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/organizations"
	usersfeature "github.com/volunteerhub/volunteerhub/internal/app/features/users"
	wsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/ws"
	"github.com/volunteerhub/volunteerhub/internal/app/realtime"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. VolunteerHub mounts the JSON
// API feature routers, the websocket endpoint, and a static file
// server for chat attachments.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Local file storage for chat attachments.
	files, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		logger.Error("attachment storage init failed", zap.Error(err))
		return nil, err
	}

	// One hub shared by the websocket endpoint and the chat handler,
	// so persisted messages fan out to connected clients.
	hub := realtime.NewHub(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session actor into context if
	// signed in. Handlers read it via auth.CurrentActor(r).
	r.Use(sessionMgr.LoadSessionActor)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Stored chat attachments, served from local disk.
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Organization accounts: register, login, profile CRUD.
	orgHandler := organizationsfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/api/organizations", organizationsfeature.Routes(orgHandler, sessionMgr))

	// Volunteer accounts.
	userHandler := usersfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/api/users", usersfeature.Routes(userHandler, sessionMgr))

	// Events and the volunteer request/accept workflow.
	eventHandler := eventsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/api/events", eventsfeature.Routes(eventHandler, sessionMgr))

	// Per-event group chat.
	chatHandler := chatsfeature.NewHandler(deps.MongoDatabase, hub, files, logger)
	r.Mount("/api/chats", chatsfeature.Routes(chatHandler, sessionMgr))

	// Websocket endpoint for realtime chat delivery.
	wsHandler := wsfeature.NewHandler(hub, logger)
	r.Mount("/ws", wsfeature.Routes(wsHandler))

	return r, nil
}
