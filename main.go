package main

import (
	"context"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/config"
	_ "github.com/DhavalSuthar-24/crease/docs"
	"github.com/DhavalSuthar-24/crease/internal/archive"
	"github.com/DhavalSuthar-24/crease/internal/scoring"
	"github.com/DhavalSuthar-24/crease/routes"
)

// @title Crease Scoring API
// @version 1.0
// @description Ball-by-ball cricket scoring: one scorer per match, public scorecards.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	logger := config.NewLogger(*cfg)

	liveStore, closeStore, err := config.OpenStore(context.Background(), *cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open live match store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.WithError(err).Warn("Failed to close live match store")
		}
	}()
	if lister, ok := liveStore.(interface {
		List(ctx context.Context) ([]string, error)
	}); ok {
		if ids, err := lister.List(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to list stored matches")
		} else if len(ids) > 0 {
			logger.WithField("match_ids", ids).Info("Resuming live matches")
		}
	}

	// The archive stays a nil interface when the database is off.
	var arch scoring.Archive
	if cfg.DB.Enabled {
		if err := archive.AutoMigrate(config.DB); err != nil {
			logger.WithError(err).Fatal("AutoMigrate failed")
		}
		logger.Info("AutoMigrate successful")
		arch = archive.NewArchiver(archive.NewGormRepository(config.DB), logger)
	} else {
		logger.Warn("DB_ENABLED is false: completed matches will not be archived")
	}

	service := scoring.NewService(liveStore, arch, config.EngineOptions(*cfg), logger)
	r := routes.SetupRoutes(cfg, service)

	logger.WithFields(logrus.Fields{
		"port":  cfg.App.Port,
		"env":   cfg.App.Env,
		"store": cfg.Store.Driver,
	}).Info("Starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		logger.WithError(err).Fatal("Failed to run server")
	}
}
