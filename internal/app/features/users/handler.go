// internal/app/features/users/handler.go
package users

import (
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	Store    *userstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger

	errs *httpjson.ErrorLogger
}

// NewHandler constructs a Users handler bound to a DB and logger.
func NewHandler(db *mongo.Database, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    userstore.New(db),
		Sessions: sessions,
		Log:      logger,
		errs:     httpjson.NewErrorLogger(logger),
	}
}
