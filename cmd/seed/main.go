// Command seed loads launch testimonials and default stats into an empty
// database. It reads the same SCHOOLSITE_* configuration as the server.
package main

import (
	"context"
	"log"

	"github.com/edumanage/schoolsite/internal/app/bootstrap"
	"github.com/edumanage/schoolsite/internal/app/seed"
	statsstore "github.com/edumanage/schoolsite/internal/app/store/stats"
	testimonialstore "github.com/edumanage/schoolsite/internal/app/store/testimonials"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	coreCfg, appCfg, err := bootstrap.LoadConfig(logger)
	if err != nil {
		return err
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, logger); err != nil {
		return err
	}

	deps, err := bootstrap.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bootstrap.Shutdown(context.Background(), coreCfg, appCfg, deps, logger) }()

	if err := bootstrap.EnsureSchema(ctx, coreCfg, appCfg, deps, logger); err != nil {
		return err
	}
	return seed.Run(ctx, seed.Stores{
		Testimonials: testimonialstore.New(deps.MongoDatabase),
		Stats:        statsstore.New(deps.MongoDatabase),
	}, logger)
}
