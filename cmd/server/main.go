package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campus-housing-api/internal/api"
	"github.com/campus-housing-api/internal/config"
	"github.com/campus-housing-api/internal/database"
	"github.com/campus-housing-api/internal/repository"
	"github.com/campus-housing-api/internal/service"
	"github.com/campus-housing-api/pkg/logger"
	"github.com/campus-housing-api/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(&config.LogConfig{Level: "info"})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(&cfg.Log)
	log.Info().Str("env", cfg.Server.Env).Msg("Starting Campus Housing API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Rate limiter store is optional
	rdb := newRedis(&cfg.RateLimit, log)
	if rdb != nil {
		defer rdb.Close()
	}
	limiter := ratelimit.New(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log, api.RouterDeps{
		Limiter: limiter,
		DB:      db,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited gracefully")
}

// newRedis connects to the rate limiter store, or returns nil when it is disabled or unreachable
func newRedis(cfg *config.RateLimitConfig, log zerolog.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info().Msg("Rate limiting disabled, REDIS_ADDR not set")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, rate limiting disabled")
		rdb.Close()
		return nil
	}

	log.Info().Str("addr", cfg.RedisAddr).Int("max", cfg.Max).Dur("window", cfg.Window).Msg("Rate limiting enabled")
	return rdb
}
