// Package app contains the application setup for productgrid.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productgrid/internal/assets"
	"github.com/abgdnv/productgrid/internal/config"
	"github.com/abgdnv/productgrid/internal/datasource"
	"github.com/abgdnv/productgrid/internal/grid"
	"github.com/abgdnv/productgrid/internal/platform/server"
	"github.com/abgdnv/productgrid/internal/screen"
	"github.com/abgdnv/productgrid/internal/transport/rest"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const ServiceName = "productgrid"

type Dependencies struct {
	Screen  *screen.Screen
	Editor  *grid.Editor
	Logger  *slog.Logger
	Metrics http.Handler
}

// SetupDependencies builds the editor and the screen that loads it from the configured data source.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) *Dependencies {
	client := datasource.NewClient(cfg.DataSource.URL, datasource.NewHTTPClient(cfg.DataSource.Timeout), logger)
	editor := grid.NewEditor(logger)

	return &Dependencies{
		Screen: screen.New(editor, client, logger),
		Editor: editor,
		Logger: logger,
	}
}

// SetupHttpHandler initializes the routes for the productgrid application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps, cfg)
	return otelhttp.NewHandler(mux, ServiceName)
}

// wireRoutes sets up the HTTP routes for the productgrid application.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	if cfg.Assets.Enabled {
		mux.Handle(assets.Prefix+"*", assets.Handler(cfg.Assets.Dir))
	}
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics)
	}
	gridHandler := rest.NewHandler(deps.Editor, deps.Screen, deps.Logger)
	gridHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the productgrid application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
