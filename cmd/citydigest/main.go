package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/aggregator"
	"github.com/citydigest/citydigest/internal/api"
	"github.com/citydigest/citydigest/internal/cities"
	"github.com/citydigest/citydigest/internal/database"
	"github.com/citydigest/citydigest/internal/dispatch"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	middlewares "github.com/citydigest/citydigest/internal/middleware"
	"github.com/citydigest/citydigest/internal/ratelimit"
	"github.com/citydigest/citydigest/internal/scheduler"
	"github.com/citydigest/citydigest/internal/source"
	"github.com/citydigest/citydigest/internal/store"
	"github.com/citydigest/citydigest/internal/weather"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// logTransport writes outgoing digests to the log instead of a chat
// platform. Wire a real messenger client here when one is configured.
type logTransport struct{}

func (logTransport) SendText(_ context.Context, chatID int64, text string) error {
	logger.Info("digest delivered", "chat_id", chatID, "chars", len(text))
	return nil
}

func (logTransport) SendImage(_ context.Context, chatID int64, image []byte, caption string) error {
	logger.Info("image delivered", "chat_id", chatID, "bytes", len(image), "caption_chars", len(caption))
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting citydigest",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Initialize metrics
	if cfg.Metrics.Enabled {
		metrics.Init()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Store)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	// Initialize subscription store
	subStore, err := store.New(ctx, db, cfg.Store)
	if err != nil {
		logger.Fatal("Failed to initialize subscription store", "error", err)
	}

	// Locality registry and source clients
	registry := cities.New()
	feedClient := source.NewClient(cfg.Fetch)
	vkClient := source.NewVKClient(cfg.Fetch.VKAccessToken, cfg.Fetch.Timeout)

	// VKClient is optional; a typed nil must not reach the interface field
	var walls aggregator.WallFetcher
	if vkClient != nil {
		walls = vkClient
	}

	agg := aggregator.New(feedClient, walls, registry, cfg.Aggregate, cfg.Fetch)

	// Weather provider (optional)
	var weatherProvider weather.Provider
	if c := weather.NewAPIClient(cfg.Weather); c != nil {
		weatherProvider = c
	} else {
		logger.Info("WEATHERAPI_KEY not set; digests go out without weather")
	}

	// Dispatch and scheduler
	dispatcher := dispatch.New(logTransport{}, agg, weatherProvider, registry, cfg.Aggregate.DefaultLimit)
	sched := scheduler.New(subStore, dispatcher, cfg.Scheduler)
	go sched.Run(ctx)

	// Rate limiting: Redis-backed when configured, in-process otherwise
	var limiter *ratelimit.Manager
	if cfg.Redis.URL != "" {
		limiter, err = ratelimit.NewManager(cfg.Redis.URL, cfg.Server.RateLimitPerMinute)
		if err != nil {
			logger.Fatal("Failed to connect rate limiter", "error", err)
		}
		defer limiter.Close()
	}

	// Setup HTTP server
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Logging)
	r.Use(middlewares.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.ReadTimeout))
	r.Use(middlewares.Security)
	if limiter != nil {
		r.Use(middlewares.RedisRateLimit(limiter))
	} else {
		r.Use(middlewares.RateLimit(cfg.Server.RateLimitPerMinute))
	}

	// Initialize API handlers
	apiHandler := api.NewHandler(subStore, registry, agg, weatherProvider, Version, BuildTime, GitCommit)
	apiHandler.RegisterRoutes(r)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

func startMetricsServer(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", "address", addr, "path", path)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}
