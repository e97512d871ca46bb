package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"bookdash/internal/config"
	apierrors "bookdash/internal/errors"
	"bookdash/internal/infrastructure"
	custommiddleware "bookdash/internal/middleware"
	"bookdash/internal/services"
	handlers "bookdash/internal/transport/http"
)

// Application is the dependency container for the dashboard server.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Router   *chi.Mux
	Server   *http.Server
	Registry *prometheus.Registry

	Catalog   *services.CatalogService
	Dashboard *services.DashboardService
	Health    *services.HealthService
}

// New builds the application from configuration: logger, services, router,
// server. Nothing touches the data file yet; the catalog loads lazily on the
// first data request.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", services.Version),
		slog.String("data_file", cfg.Paths.DataFile),
		slog.Int("port", cfg.Server.Port))

	if _, err := os.Stat(cfg.Paths.DataFile); err != nil {
		logger.Warn("data file not found at startup; data routes will answer 503 until restart",
			slog.String("path", cfg.Paths.DataFile))
	}

	app := &Application{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.initServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initServices() {
	a.Catalog = services.NewCatalogService(a.Config.Paths.DataFile, a.Logger)
	a.Dashboard = services.NewDashboardService(a.Catalog, a.Logger)
	a.Health = services.NewHealthService(a.Config.Paths.DataFile, a.Logger)
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)

	// Metrics endpoint stays outside the heavy middleware group.
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		metrics := custommiddleware.NewRequestMetrics(a.Registry)
		r.Use(metrics.Handler)
		r.Use(custommiddleware.StructuredLogger(a.Logger))
		r.Use(custommiddleware.Recoverer(a.Logger))
		r.Use(custommiddleware.SecurityHeaders)
		r.Use(custommiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		if a.Config.Limits.RateLimitEnabled {
			r.Use(custommiddleware.NewRateLimiter(
				a.Config.Limits.RPS,
				a.Config.Limits.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(
			a.Dashboard, a.Logger, errorHandler, a.Config.Limits.MaxKeywordLength)
		dashboardHandler.RegisterRoutes(r)

		exportHandler := handlers.NewExportHandler(a.Catalog, a.Logger, errorHandler)
		r.Mount("/export", exportHandler.Routes())
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves until the context is cancelled or a signal arrives, then shuts
// down gracefully within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("application shutdown complete")
	return nil
}
