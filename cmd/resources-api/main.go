package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gem5-vision/resources-api/internal/config"
	dbMongo "github.com/gem5-vision/resources-api/internal/db/mongo"
	logpkg "github.com/gem5-vision/resources-api/internal/logger"
	"github.com/gem5-vision/resources-api/internal/metrics"
	"github.com/gem5-vision/resources-api/internal/repository/filtercache"
	filtersrepo "github.com/gem5-vision/resources-api/internal/repository/filters"
	resourcerepo "github.com/gem5-vision/resources-api/internal/repository/resource"
	searchrepo "github.com/gem5-vision/resources-api/internal/repository/search"
	workloadrepo "github.com/gem5-vision/resources-api/internal/repository/workload"
	chiTransport "github.com/gem5-vision/resources-api/internal/transport/chi"
	batchuc "github.com/gem5-vision/resources-api/internal/usecase/batch"
	filtersuc "github.com/gem5-vision/resources-api/internal/usecase/filters"
	healthuc "github.com/gem5-vision/resources-api/internal/usecase/health"
	resourceuc "github.com/gem5-vision/resources-api/internal/usecase/resource"
	searchuc "github.com/gem5-vision/resources-api/internal/usecase/search"
	workloaduc "github.com/gem5-vision/resources-api/internal/usecase/workload"
	"github.com/gem5-vision/resources-api/internal/version"
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

	logger.Info("Starting resources API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("mongo_database", cfg.Mongo.Database),
		zap.String("filter_cache_driver", cfg.FilterCache.Driver),
	)

	ctx := context.Background()

	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:                  cfg.Mongo.URI,
		Database:             cfg.Mongo.Database,
		ResourcesCollection:  cfg.Mongo.ResourcesCollection,
		FilterViewCollection: cfg.Mongo.FilterViewCollection,
	})
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Mongo.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Document store not ready", zap.Error(err))
	}
	logger.Info("Connected to document store")

	// Register query metrics explicitly (no init())
	metrics.RegisterQueryMetrics()

	// Filter-options cache: precomputed mongo view by default, an external
	// redis key when an ingestion pipeline publishes there instead.
	var filterCache filtersuc.Cache
	var cachePinger healthuc.CachePinger
	switch cfg.FilterCache.Driver {
	case "mongo":
		filterCache = filtercache.NewMongoCache(store.FilterView())
	case "redis":
		redisCache, err := filtercache.NewRedisCache(filtercache.RedisConfig{
			Addrs:    cfg.FilterCache.Addrs,
			Password: cfg.FilterCache.Password,
			Key:      cfg.FilterCache.Key,
		})
		if err != nil {
			logger.Fatal("Failed to create redis filter cache", zap.Error(err))
		}
		defer redisCache.Close()
		filterCache = redisCache
		cachePinger = redisCache
	default:
		logger.Fatal("Unknown filter cache driver", zap.String("driver", cfg.FilterCache.Driver))
	}

	// Create repositories
	resourceRepo := resourcerepo.New(store.Resources())
	searchRepo := searchrepo.New(store.Resources(), cfg.Mongo.Database)
	workloadRepo := workloadrepo.New(store.Resources())
	filtersRepo := filtersrepo.New(store.Resources())

	// Create use case services
	resourceSvc := resourceuc.New(resourceRepo)
	batchSvc := batchuc.New(resourceSvc)
	searchSvc := searchuc.New(searchRepo)
	filtersSvc := filtersuc.New(filterCache, filtersRepo, logger)
	workloadSvc := workloaduc.New(workloadRepo)
	healthSvc := healthuc.New(store, cachePinger)

	// Create chi server
	server := chiTransport.NewServer(
		resourceSvc, batchSvc, searchSvc, filtersSvc, workloadSvc, healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
