package main

import (
	"go.uber.org/zap"

	"github.com/Ejsll03/recetas-backend/config"
	"github.com/Ejsll03/recetas-backend/internal/database"
)

// Brings the schema up to date and exits. The API server migrates on boot as
// well; this exists for deploy pipelines that migrate before rolling out.
func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatalw("migration failed", "error", err)
	}
	logger.Info("migrations applied")
}
