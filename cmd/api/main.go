package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Ejsll03/recetas-backend/config"
	"github.com/Ejsll03/recetas-backend/internal/database"
	"github.com/Ejsll03/recetas-backend/internal/middleware"
	"github.com/Ejsll03/recetas-backend/internal/server"
	"github.com/Ejsll03/recetas-backend/internal/session"
)

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
		logger.Fatalw("failed to run migrations", "error", err)
	}

	var sessions session.Store
	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Fatalw("failed to connect to redis", "error", err)
		}
		sessions = session.NewRedisStore(redisClient)
		limiter = middleware.NewLoginRateLimiter(redisClient)
	} else {
		logger.Warn("no redis configured, using in-memory session store and no rate limiting")
		sessions = session.NewMemoryStore()
	}

	srv := server.New(cfg, db, sessions, limiter, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatalw("server error", "error", err)
		}
	case sig := <-quit:
		logger.Infow("received signal", "signal", sig)
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatalw("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
