package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/examtrainer/backend/internal/api"
	"github.com/examtrainer/backend/internal/auth"
	"github.com/examtrainer/backend/internal/infrastructure/config"
	"github.com/examtrainer/backend/internal/store"

	_ "github.com/examtrainer/backend/docs" // generated swagger docs
)

// @title           Exam Trainer API
// @version         1.0
// @description     Study-quiz backend — exam question banks, answer checking, and per-user mastery progress.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	sessions, err := store.NewSessionStore(cfg.SessionDB, cfg.SessionLifetime)
	if err != nil {
		logger.Error("failed to open session database", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	if purged, err := sessions.PurgeExpired(); err != nil {
		logger.Warn("purging expired sessions failed", "error", err)
	} else if purged > 0 {
		logger.Info("purged expired sessions", "count", purged)
	}

	catalog := store.LoadCatalog(cfg.CatalogFile, filepath.Dir(cfg.CatalogFile), logger)
	banks := store.NewBankRegistry(catalog, logger)
	warmed := banks.Warm(4)
	logger.Info("question banks loaded", "count", warmed)

	progress := store.NewProgressRegistry(cfg.SecretsDir, logger)
	secrets := auth.NewValidator(cfg.SecretsFile, cfg.SecretsDir, logger)
	limiter := auth.NewLoginLimiter()

	handler := api.NewHandler(banks, progress, sessions, secrets, limiter, cfg.DefaultExam, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

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

	go func() {
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

	logger.Info("starting server", "address", cfg.ServerAddress, "default_exam", cfg.DefaultExam)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
