package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/middleware"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
)

// DashboardHandler serves the dashboard views with RFC 7807 errors
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	params       *middleware.QueryParamValidator
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		params:       middleware.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetDashboard)
	r.Get("/options", h.GetOptions)
	r.Get("/summary", h.GetSummary)
	r.Get("/companies", h.GetCompanies)
	r.Get("/workshops", h.GetWorkshops)
	r.Get("/quality", h.GetQuality)
	return r
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sel := ParseSelection(r.URL.Query())

	h.logger.DebugContext(r.Context(), "computing dashboard",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int("active_filters", len(sel)))

	d, err := h.service.Dashboard(r.Context(), sel)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, d)
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Summary(r.Context(), ParseSelection(r.URL.Query()))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// GetCompanies handles GET /api/dashboard/companies?limit=N
func (h *DashboardHandler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.params.ValidateInt(w, r, "limit", 1, services.MaxCompanyTable, h.service.DefaultCompanyTable())
	if !ok {
		return
	}

	view, err := h.service.Companies(r.Context(), ParseSelection(r.URL.Query()), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// GetWorkshops handles GET /api/dashboard/workshops
func (h *DashboardHandler) GetWorkshops(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Workshops(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetQuality handles GET /api/dashboard/quality
func (h *DashboardHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Quality(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}
