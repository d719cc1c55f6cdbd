// internal/app/features/chats/handler.go
package chats

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/microcosm-cc/bluemonday"
	"github.com/volunteerhub/volunteerhub/internal/app/realtime"
	chatstore "github.com/volunteerhub/volunteerhub/internal/app/store/chats"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	organizationstore "github.com/volunteerhub/volunteerhub/internal/app/store/organizations"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Chats. Appends are
// access-guarded, persisted, then fanned out over the realtime hub.
type Handler struct {
	Chats  *chatstore.Store
	Events *eventstore.Store
	Users  *userstore.Store
	Orgs   *organizationstore.Store
	Hub    *realtime.Hub
	Files  storage.Store
	Log    *zap.Logger

	sanitize *bluemonday.Policy
	errs     *httpjson.ErrorLogger
}

// NewHandler constructs a Chats handler. files may be nil in tests
// that never post attachments.
func NewHandler(db *mongo.Database, hub *realtime.Hub, files storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Chats:    chatstore.New(db),
		Events:   eventstore.New(db),
		Users:    userstore.New(db),
		Orgs:     organizationstore.New(db),
		Hub:      hub,
		Files:    files,
		Log:      logger,
		sanitize: bluemonday.StrictPolicy(),
		errs:     httpjson.NewErrorLogger(logger),
	}
}
