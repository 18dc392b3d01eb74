package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/strengthscope/backend/internal/api"
	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/attempt"
	"github.com/strengthscope/backend/internal/infrastructure/config"
	"github.com/strengthscope/backend/internal/metrics"
	"github.com/strengthscope/backend/internal/service"
	"github.com/strengthscope/backend/internal/store"

	_ "github.com/strengthscope/backend/docs" // generated swagger docs
)

// @title           Strengths Assessment API
// @version         1.0
// @description     Strengths quiz: catalog, attempts under Likert, pairwise and forced-choice scoring, and results.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	cats, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Error("failed to load catalogs", "dir", cfg.CatalogDir, "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	attemptConfig := attempt.DefaultConfig()
	attemptConfig.Rebuilds = cfg.PairRebuilds

	assessments, err := service.NewAssessmentService(db, cats, logger, service.Options{
		CacheSize:      cfg.AttemptCacheSize,
		PersistWorkers: cfg.PersistWorkers,
		Attempt:        attemptConfig,
		Metrics:        metrics.New(registry),
	})
	if err != nil {
		logger.Error("failed to create assessment service", "error", err)
		os.Exit(1)
	}
	defer assessments.Close()

	handler := api.NewHandler(assessments, cats, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"strengths", len(cats.Strengths.Strengths()),
		"forced_choice_questions", len(cats.ForcedChoice.Questions()),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}

	// In-flight handlers finish before the deferred Close calls run.
	<-shutdownDone
}
