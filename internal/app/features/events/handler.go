// internal/app/features/events/handler.go
package events

import (
	chatstore "github.com/volunteerhub/volunteerhub/internal/app/store/chats"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	organizationstore "github.com/volunteerhub/volunteerhub/internal/app/store/organizations"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Events. It owns the
// volunteer workflow and the event/chat lifecycle coupling.
type Handler struct {
	Events *eventstore.Store
	Orgs   *organizationstore.Store
	Chats  *chatstore.Store
	Log    *zap.Logger

	errs *httpjson.ErrorLogger
}

// NewHandler constructs an Events handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events: eventstore.New(db),
		Orgs:   organizationstore.New(db),
		Chats:  chatstore.New(db),
		Log:    logger,
		errs:   httpjson.NewErrorLogger(logger),
	}
}
