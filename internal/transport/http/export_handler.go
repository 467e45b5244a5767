package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/exporter"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/infrastructure"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/middleware"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var exportFormats = []string{FormatXLSX, FormatCSV}

var contentTypes = map[string]string{
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:  "text/csv; charset=utf-8",
}

// ExportHandler streams filtered tables as spreadsheet downloads
type ExportHandler struct {
	service      DashboardServiceInterface
	xlsx         *exporter.XLSXWriter
	csv          *exporter.CSVWriter
	metrics      *infrastructure.DashboardMetrics
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	params       *middleware.QueryParamValidator
}

// NewExportHandler creates a new export handler. metrics may be nil.
func NewExportHandler(service DashboardServiceInterface, metrics *infrastructure.DashboardMetrics, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		xlsx:         exporter.NewXLSXWriter(logger),
		csv:          exporter.NewCSVWriter(logger),
		metrics:      metrics,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
		params:       middleware.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/interventions.{format}", h.ExportInterventions)
	r.Get("/companies.{format}", h.ExportCompanies)
	return r
}

// ExportInterventions handles GET /api/export/interventions.{xlsx,csv}
func (h *ExportHandler) ExportInterventions(w http.ResponseWriter, r *http.Request) {
	format, ok := h.params.ValidateEnum(w, r, "format", chi.URLParam(r, "format"), exportFormats, FormatXLSX)
	if !ok {
		return
	}

	records, err := h.service.FilteredRecords(r.Context(), ParseSelection(r.URL.Query()))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if format == FormatXLSX {
		_, err = h.xlsx.WriteInterventionsXLSX(&buf, records)
	} else {
		_, err = h.csv.Write(&buf, exporter.InterventionsTable(records))
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("failed to build export", err))
		return
	}

	h.send(w, r, "intervenciones", format, &buf, len(records))
}

// ExportCompanies handles GET /api/export/companies.{xlsx,csv}?limit=N
func (h *ExportHandler) ExportCompanies(w http.ResponseWriter, r *http.Request) {
	format, ok := h.params.ValidateEnum(w, r, "format", chi.URLParam(r, "format"), exportFormats, FormatXLSX)
	if !ok {
		return
	}
	limit, ok := h.params.ValidateInt(w, r, "limit", 1, services.MaxCompanyTable, h.service.DefaultCompanyTable())
	if !ok {
		return
	}

	rows, err := h.service.CompanyTable(r.Context(), ParseSelection(r.URL.Query()), limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if format == FormatXLSX {
		_, err = h.xlsx.WriteCompanyTableXLSX(&buf, rows)
	} else {
		_, err = h.csv.Write(&buf, exporter.CompanyTable(rows))
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewStorageError("failed to build export", err))
		return
	}

	h.send(w, r, "top_empresas", format, &buf, len(rows))
}

func (h *ExportHandler) send(w http.ResponseWriter, r *http.Request, name, format string, buf *bytes.Buffer, rows int) {
	if err := r.Context().Err(); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	size := int64(buf.Len())
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export interrupted",
			slog.String("format", format),
			slog.String("error", err.Error()))
		return
	}

	h.metrics.RecordExport(r.Context(), format, size)
	h.logger.InfoContext(r.Context(), "export served",
		slog.String("file", name+"."+format),
		slog.Int("rows", rows),
		slog.Int64("bytes", size))
}
