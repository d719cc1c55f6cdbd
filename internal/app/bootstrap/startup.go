// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// VolunteerHub makes sure the local attachment directory exists so the
// first upload does not fail on a missing path.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.StorageLocalPath != "" {
		if err := os.MkdirAll(appCfg.StorageLocalPath, 0o755); err != nil {
			return fmt.Errorf("create storage directory %q: %w", appCfg.StorageLocalPath, err)
		}
	}
	return nil
}
