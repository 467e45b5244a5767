package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/charts"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
)

// ChartHandler renders dashboard charts as PNG images
type ChartHandler struct {
	service      DashboardServiceInterface
	renderer     *charts.Renderer
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service DashboardServiceInterface, renderer *charts.Renderer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	if renderer == nil {
		renderer = charts.NewRenderer(0, 0)
	}
	return &ChartHandler{
		service:      service,
		renderer:     renderer,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCharts)
	r.Get("/{name}.png", h.GetChart)
	return r
}

// ListCharts handles GET /api/charts
func (h *ChartHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string][]string{"charts": charts.Names})
}

// GetChart handles GET /api/charts/{name}.png
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !charts.Known(name) {
		h.errorHandler.HandleError(w, r, apierrors.NewValidationErrors([]apierrors.ValidationError{{
			Field:   "name",
			Message: fmt.Sprintf("unknown chart %q, expected one of: %s", name, strings.Join(charts.Names, ", ")),
		}}))
		return
	}

	d, err := h.service.Dashboard(r.Context(), ParseSelection(r.URL.Query()))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, d); err != nil {
		if errors.Is(err, charts.ErrNoChartData) {
			h.errorHandler.HandleError(w, r, apierrors.NewAppError(apierrors.ErrTypeNotFound,
				fmt.Sprintf("no data to plot for chart %s", name), err).WithContext("chart", name))
			return
		}
		h.errorHandler.HandleError(w, r, fmt.Errorf("rendering chart %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
