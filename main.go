// main.go
package main

import (
	"context"
	"log"
	"time"

	"library-catalog/cmd"
	"library-catalog/internal/data/repository"
	"library-catalog/internal/usecase"
	"library-catalog/internal/wire"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/database"
	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.App.Store),
		zap.Bool("debug", config.App.Debug),
	)

	repos, ping, closeStore := openStore(config, logger)
	defer closeStore()

	genreCache, closeCache := openCache(config, logger)
	defer closeCache()

	// Wire all dependencies
	app, err := wire.Wiring(repos, genreCache, ping, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

// openStore connects the configured backend and returns its repositories,
// a health ping and a close func.
func openStore(config *utils.Config, logger *zap.Logger) (*repository.Repository, wire.PingFunc, func()) {
	if config.App.Store == utils.StoreMemory {
		logger.Warn("Using in-memory store, data is lost on exit")
		ping := func(context.Context) error { return nil }
		return repository.NewMemoryStore().Repository(logger), ping, func() {}
	}

	if err := database.Migrate(config.Database.DSN(), logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	return repository.NewRepository(db, logger), db.Ping, db.Close
}

// openCache returns the Redis genre cache, or a no-op cache when Redis is not
// configured or unreachable.
func openCache(config *utils.Config, logger *zap.Logger) (usecase.GenreListCache, func()) {
	noop := func() {}
	if config.Cache.RedisURL == "" {
		return cache.Noop{}, noop
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := cache.NewRedis(ctx, config.Cache.RedisURL, config.Cache.TTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, genre cache disabled", zap.Error(err))
		return cache.Noop{}, noop
	}

	logger.Info("Redis genre cache enabled", zap.Duration("ttl", config.Cache.TTL))
	return c, func() {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
