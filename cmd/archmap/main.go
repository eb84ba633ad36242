package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authpkg "github.com/kenchiku-cloud/archmap/internal/auth"
	"github.com/kenchiku-cloud/archmap/internal/config"
	"github.com/kenchiku-cloud/archmap/internal/dataset"
	dbRedis "github.com/kenchiku-cloud/archmap/internal/db/redis"
	"github.com/kenchiku-cloud/archmap/internal/directory"
	"github.com/kenchiku-cloud/archmap/internal/domain/filter"
	logpkg "github.com/kenchiku-cloud/archmap/internal/logger"
	"github.com/kenchiku-cloud/archmap/internal/metrics"
	favoritesrepo "github.com/kenchiku-cloud/archmap/internal/repository/favorites"
	userrepo "github.com/kenchiku-cloud/archmap/internal/repository/user"
	chiTransport "github.com/kenchiku-cloud/archmap/internal/transport/chi"
	accountuc "github.com/kenchiku-cloud/archmap/internal/usecase/account"
	directoryuc "github.com/kenchiku-cloud/archmap/internal/usecase/directory"
	favoritesuc "github.com/kenchiku-cloud/archmap/internal/usecase/favorites"
	healthuc "github.com/kenchiku-cloud/archmap/internal/usecase/health"
	"github.com/kenchiku-cloud/archmap/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting archmap API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("dataset_source", cfg.Dataset.Source),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// In-memory directory + dataset loader
	dirStore := directory.NewStore()
	loader := dataset.NewLoader(time.Duration(cfg.Dataset.FetchTimeoutSec) * time.Second)

	fallback := filter.YearRange{
		Min: cfg.Facets.FallbackYearMin,
		Max: cfg.Facets.FallbackYearMax,
	}
	dirSvc := directoryuc.New(dirStore, loader, cfg.Dataset.Source, fallback, logger)

	// A failed dataset load leaves the directory empty rather than
	// blocking startup; health reports it as degraded.
	if err := dirSvc.Load(ctx); err != nil {
		logger.Warn("Dataset load failed, starting with empty directory", zap.Error(err))
	}

	// Repositories and use case services
	favRepo := favoritesrepo.New(store)
	accRepo := userrepo.New(store)

	tokens := authpkg.NewTokenService(
		[]byte(cfg.Auth.TokenSecret),
		time.Duration(cfg.Auth.TokenLifetimeHrs)*time.Hour,
	)

	favSvc := favoritesuc.New(favRepo, dirStore,
		time.Duration(cfg.Sync.RemoteTimeoutSec)*time.Second, logger)
	accSvc := accountuc.New(accRepo, tokens, cfg.Auth.MinPasswordLength, uuid.NewString, logger)
	healthSvc := healthuc.New(store, dirStore)

	server := chiTransport.NewServer(dirSvc, favSvc, accSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r, tokens)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
