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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/config"
	dbRedis "github.com/elijah-alonzo/ai-poc/internal/db/redis"
	logpkg "github.com/elijah-alonzo/ai-poc/internal/logger"
	"github.com/elijah-alonzo/ai-poc/internal/metrics"
	datasetrepo "github.com/elijah-alonzo/ai-poc/internal/repository/dataset"
	indexrepo "github.com/elijah-alonzo/ai-poc/internal/repository/index"
	"github.com/elijah-alonzo/ai-poc/internal/repository/querycache"
	chiTransport "github.com/elijah-alonzo/ai-poc/internal/transport/chi"
	openaiGen "github.com/elijah-alonzo/ai-poc/internal/transport/openai"
	"github.com/elijah-alonzo/ai-poc/internal/transport/vector"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/assistant"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/ingest"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/retrieval"
	"github.com/elijah-alonzo/ai-poc/internal/usecase/synthesis"
	"github.com/elijah-alonzo/ai-poc/internal/version"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

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

	logger.Info("Starting ai-poc API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("vector_url", cfg.Vector.URL),
		zap.String("dataset_path", cfg.Retrieval.DatasetPath),
	)

	// Register retrieval/generation metrics explicitly (no init())
	metrics.RegisterRAGMetrics()

	// Vector index provider client + repository
	vecClient := vector.NewClient(&vector.Config{
		BaseURL: cfg.Vector.URL,
		Token:   cfg.Vector.Token,
		Timeout: time.Duration(cfg.Vector.TimeoutSec) * time.Second,
	})
	idx := indexrepo.New(vecClient)

	// Retrieval chain: index repo, optionally wrapped in a Redis query cache
	var querier retrieval.Querier = idx

	if len(cfg.Cache.Addrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(context.Background(), 30*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to query cache", zap.Strings("addrs", cfg.Cache.Addrs))

		querier = querycache.New(
			idx, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.QueryCacheTotal,
			logger,
		)
	}

	retriever := retrieval.New(querier)

	// Generation provider
	gen := openaiGen.NewGenerator(&openaiGen.Config{
		APIKey:  cfg.Generation.APIKey,
		BaseURL: cfg.Generation.BaseURL,
	})
	synth := synthesis.New(gen, cfg.Generation.AnswerModel, cfg.Generation.ArticleModel)

	// Seeding pipeline: dataset file -> chunks -> index upsert.
	// The assistant triggers it lazily on the first request.
	seeder := ingest.New(datasetrepo.New(cfg.Retrieval.DatasetPath), idx, logger)

	assistantSvc := assistant.New(
		seeder, retriever, synth,
		cfg.Retrieval.AnswerLimit, cfg.Retrieval.ArticleLimit,
	)

	server := chiTransport.NewServer(assistantSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
