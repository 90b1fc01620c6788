// Package api exposes the Deskulpt host over a local HTTP API: plugin
// introspection and lifecycle, command dispatch, widgets, and settings.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deskulpt-apps/deskulpt/internal/plugin"
	"github.com/deskulpt-apps/deskulpt/internal/widget"
)

//go:generate mockgen -source=server.go -destination=mocks/mock_api.go -package=mocks

// CommandCaller dispatches plugin commands.
type CommandCaller interface {
	CallCommand(command, widgetID, payload string) (json.RawMessage, error)
}

// PluginDirectory exposes the resident plugin set and its lifecycle.
type PluginDirectory interface {
	Plugins() []plugin.Record
	Plugin(name string) (plugin.Record, error)
	LoadPlugin(path string) (plugin.Record, error)
	UnloadPlugin(name string) error
	ReloadPlugin(name string) error
}

// WidgetLister exposes the installed widget set.
type WidgetLister interface {
	Widgets() []widget.Widget
	Rescan() error
}

// SettingsStore persists per-widget settings.
type SettingsStore interface {
	Get(widgetID, key string) (string, error)
	Set(widgetID, key, value string) error
	All(widgetID string) (map[string]string, error)
	Delete(widgetID, key string) error
}

// Config holds API server configuration.
type Config struct {
	Listen string
}

// Server is the HTTP API server.
type Server struct {
	config    Config
	caller    CommandCaller
	plugins   PluginDirectory
	widgets   WidgetLister
	settings  SettingsStore
	logger    *slog.Logger
	server    *http.Server
	startedAt time.Time
}

// New creates an API server over the given host components.
func New(config Config, caller CommandCaller, plugins PluginDirectory, widgets WidgetLister, settings SettingsStore, logger *slog.Logger) *Server {
	return &Server{
		config:    config,
		caller:    caller,
		plugins:   plugins,
		widgets:   widgets,
		settings:  settings,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Routes configures the HTTP router.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/plugins", s.handleListPlugins)
		r.Post("/plugins", s.handleLoadPlugin)
		r.Get("/plugins/{name}", s.handleGetPlugin)
		r.Delete("/plugins/{name}", s.handleUnloadPlugin)
		r.Post("/plugins/{name}/reload", s.handleReloadPlugin)

		r.Post("/commands/{command}", s.handleCallCommand)

		r.Get("/widgets", s.handleListWidgets)
		r.Post("/widgets/rescan", s.handleRescanWidgets)
		r.Get("/widgets/{id}/settings", s.handleAllSettings)
		r.Get("/widgets/{id}/settings/{key}", s.handleGetSetting)
		r.Put("/widgets/{id}/settings/{key}", s.handlePutSetting)
		r.Delete("/widgets/{id}/settings/{key}", s.handleDeleteSetting)
	})

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
