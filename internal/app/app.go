package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/charts"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/config"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/dataprocessing"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/infrastructure"
	customMiddleware "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/middleware"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
	handlers "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/transport/http"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts"
)

// AppName is the human readable service name
const AppName = "Dashboard de Transformación Empresarial"

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Logger           *slog.Logger
	Dataset          *dataprocessing.Dataset
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.DashboardMetrics
	ErrorHandler     *apierrors.ErrorHandler
}

// NewApplication wires the dataset, services and router. The interventions
// workbook must exist; a missing one yields an AppError of type
// MISSING_SOURCE and no application.
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, apierrors.NewConfigError("configuration is required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry)
	otelProviders, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := app.loadDataset(ctx); err != nil {
		_ = otelProviders.Shutdown(ctx)
		return nil, err
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// loadDataset reads both workbooks once. The dataset is immutable afterwards.
func (a *Application) loadDataset(ctx context.Context) error {
	start := time.Now()
	loader := dataprocessing.NewLoader(a.Logger, dataprocessing.LoaderOptions{
		NullSentinel:       a.Config.Data.NullSentinel,
		InterventionsSheet: a.Config.Data.InterventionsSheet,
		WorkshopsSheet:     a.Config.Data.WorkshopsSheet,
	})

	ds, err := dataprocessing.LoadDataset(ctx, loader, dataprocessing.Sources{
		InterventionsPath: a.Config.Data.InterventionsPath,
		WorkshopsPath:     a.Config.Data.WorkshopsPath,
	})
	if err != nil {
		if errors.Is(err, dataprocessing.ErrMissingSource) {
			return apierrors.NewMissingSourceError(a.Config.Data.InterventionsPath, err)
		}
		return apierrors.NewParsingError("failed to load interventions workbook", err)
	}

	a.Metrics.RecordDatasetRows(ctx, dataprocessing.TableInterventions, len(ds.Interventions()))
	a.Metrics.RecordDatasetRows(ctx, dataprocessing.TableWorkshops, len(ds.Workshops()))

	a.Logger.InfoContext(ctx, "Dataset loaded",
		slog.Int("interventions", len(ds.Interventions())),
		slog.Int("workshops", len(ds.Workshops())),
		slog.Bool("workshops_enabled", ds.WorkshopsEnabled()),
		slog.Duration("duration", time.Since(start)))

	a.Dataset = ds
	return nil
}

func (a *Application) initializeServices() {
	a.DashboardService = services.NewDashboardService(a.Dataset,
		services.DashboardOptionsFrom(a.Config.Data), a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(contracts.GetVersionInfo(), a.Dataset, a.Logger)
}

// setupRouter configures the HTTP router with all routes.
// Middleware order: RequestID, RealIP, OTel, Logger, Recoverer, then the
// per-group Timeout.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
	if err != nil {
		a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
	} else {
		r.Use(otelMiddleware.Handler)
	}

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			a.ErrorHandler,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	// The scrape endpoint stays outside the request timeout.
	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, a.ErrorHandler)
	exportHandler := handlers.NewExportHandler(a.DashboardService, a.Metrics, a.Logger, a.ErrorHandler)
	chartHandler := handlers.NewChartHandler(a.DashboardService, charts.NewRenderer(0, 0), a.Logger, a.ErrorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

			r.Mount("/dashboard", dashboardHandler.Routes())
			r.Mount("/export", exportHandler.Routes())
			r.Mount("/charts", chartHandler.Routes())
		})
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run serves HTTP until ctx is canceled or the listener fails, then shuts
// down gracefully.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Starting HTTP server",
		slog.String("address", a.Server.Addr),
		slog.String("level", a.Config.Logging.Level))

	serveErr := make(chan error, 1)
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			_ = a.Stop(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "Shutdown requested")
	}

	return a.Stop(context.Background())
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
