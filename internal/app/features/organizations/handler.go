// internal/app/features/organizations/handler.go
package organizations

import (
	organizationstore "github.com/volunteerhub/volunteerhub/internal/app/store/organizations"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Organizations.
type Handler struct {
	Store    *organizationstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger

	errs *httpjson.ErrorLogger
}

// NewHandler constructs an Organizations handler bound to a DB and logger.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    organizationstore.New(db),
		Sessions: sessions,
		Log:      logger,
		errs:     httpjson.NewErrorLogger(logger),
	}
}
