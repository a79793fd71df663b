// Package internal provides the application initialization and runtime
// logic shared by every command.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/adrkit/internal/adrservice"
	"github.com/starford/adrkit/internal/api"
	"github.com/starford/adrkit/internal/index"
	"github.com/starford/adrkit/internal/mcpserver"
	"github.com/starford/adrkit/internal/sse"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/templates"
)

// App holds the wired components for one invocation.
type App struct {
	cfg     *Config
	logger  *slog.Logger
	store   *storage.FS
	db      *index.DB
	svc     *adrservice.Service
	version string
}

// New wires storage, the index and the ADR service from the options.
// The caller must Close the returned App.
func New(opts ...Option) (*App, error) {
	a := &application{root: ".", logOutput: os.Stderr, version: "dev"}
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := a.config

	// JSON logs go to stderr so stdout stays free for command output
	// and the MCP stdio transport.
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := storage.NewFS(a.root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	tmpl, err := templates.Load(cfg.ADR.Templates.Body, cfg.ADR.Templates.Entry)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	indexPath := cfg.Index.Path
	if !filepath.IsAbs(indexPath) {
		indexPath = filepath.Join(store.Root(), indexPath)
	}
	db, err := index.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	layout := adrservice.Layout{Dir: cfg.ADR.Dir, Record: cfg.ADR.Record}
	logger.Debug("Configuration loaded",
		slog.String("root", store.Root()),
		slog.String("adr_dir", layout.Dir),
		slog.String("record", layout.Record),
		slog.String("index_path", indexPath),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return &App{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		db:      db,
		svc:     adrservice.NewService(store, db, layout, tmpl, logger),
		version: a.version,
	}, nil
}

// Service returns the ADR service.
func (a *App) Service() *adrservice.Service {
	return a.svc
}

// Close releases the index.
func (a *App) Close() error {
	return a.db.Close()
}

// Handler builds the HTTP handler: health probes, the API under /api and
// the SSE stream at /api/events.
func (a *App) Handler(broker *sse.Broker) http.Handler {
	var sseHandler http.Handler
	if broker != nil {
		sseHandler = broker
	}
	apiRouter := api.NewRouter(a.svc, a.cfg.Auth.AuthEnabled(), a.cfg.Auth.Token, sseHandler)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := a.svc.Next(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)
	return r
}

// Serve runs the HTTP API and the directory watcher until ctx is
// cancelled or SIGINT/SIGTERM arrives.
func (a *App) Serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	if err := a.svc.Init(ctx); err != nil {
		return fmt.Errorf("init adr storage: %w", err)
	}
	if err := a.svc.Reindex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()
	a.svc.OnEvent(broker.PublishADREvent)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           a.Handler(broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		absDir := filepath.Join(a.store.Root(), cfg.ADR.Dir)
		return index.Watch(gCtx, a.db, a.store, absDir, cfg.ADR.Dir, cfg.ADR.Record, logger, a.svc.HandleWatchEvent)
	})

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Stop the watcher too when the signal arrived first.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")

// ServeMCP brings the index up to date and serves MCP over stdio.
func (a *App) ServeMCP(ctx context.Context) error {
	if err := a.svc.Reindex(ctx); err != nil {
		a.logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	a.logger.Info("Starting MCP server on stdio")
	return mcpserver.New(a.svc, a.version).ServeStdio()
}
