// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/edumanage/schoolsite/internal/app/seed"
	statsstore "github.com/edumanage/schoolsite/internal/app/store/stats"
	testimonialstore "github.com/edumanage/schoolsite/internal/app/store/testimonials"
	"github.com/edumanage/schoolsite/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema setup
// are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	cur := timeouts.Current()
	logger.Info("storage timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium))

	if !appCfg.SeedOnStartup {
		return nil
	}
	return seed.Run(ctx, seed.Stores{
		Testimonials: testimonialstore.New(deps.MongoDatabase),
		Stats:        statsstore.New(deps.MongoDatabase),
	}, logger)
}
