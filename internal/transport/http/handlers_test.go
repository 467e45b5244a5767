package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/analytics"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/charts"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/dataprocessing"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/services"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/shared/testutil"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Options(ctx context.Context) (domain.FilterOptions, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FilterOptions), args.Error(1)
}

func (m *MockDashboardService) Dashboard(ctx context.Context, sel domain.FilterSelection) (*domain.Dashboard, error) {
	args := m.Called(sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Summary(ctx context.Context, sel domain.FilterSelection) (*services.SummaryView, error) {
	args := m.Called(sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SummaryView), args.Error(1)
}

func (m *MockDashboardService) Companies(ctx context.Context, sel domain.FilterSelection, limit int) (*services.CompanyView, error) {
	args := m.Called(sel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompanyView), args.Error(1)
}

func (m *MockDashboardService) CompanyTable(ctx context.Context, sel domain.FilterSelection, limit int) ([]domain.CompanyTableRow, error) {
	args := m.Called(sel, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyTableRow), args.Error(1)
}

func (m *MockDashboardService) FilteredRecords(ctx context.Context, sel domain.FilterSelection) ([]domain.InterventionRecord, error) {
	args := m.Called(sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterventionRecord), args.Error(1)
}

func (m *MockDashboardService) Workshops(ctx context.Context) (*domain.WorkshopSummary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkshopSummary), args.Error(1)
}

func (m *MockDashboardService) Quality(ctx context.Context) (*domain.QualityReport, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityReport), args.Error(1)
}

func (m *MockDashboardService) DefaultCompanyTable() int { return 50 }

func newRouter(t *testing.T, svc DashboardServiceInterface) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	eh := apierrors.NewErrorHandler(logger, false)

	r := chi.NewRouter()
	r.Mount("/api/dashboard", NewDashboardHandler(svc, logger, eh).Routes())
	r.Mount("/api/export", NewExportHandler(svc, nil, logger, eh).Routes())
	r.Mount("/api/charts", NewChartHandler(svc, charts.NewRenderer(400, 300), logger, eh).Routes())
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func problemOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.FilterSelection
	}{
		{name: "empty", query: "", want: domain.FilterSelection{}},
		{name: "single", query: "sector=Textiles", want: domain.FilterSelection{domain.DimSector: {"Textiles"}}},
		{name: "comma kept inside value", query: "sector=Comercio%2C+hoteles+y+restaurantes", want: domain.FilterSelection{domain.DimSector: {"Comercio, hoteles y restaurantes"}}},
		{name: "repeated", query: "gender=FEMENINO&gender=MASCULINO", want: domain.FilterSelection{domain.DimGender: {"FEMENINO", "MASCULINO"}}},
		{name: "blanks dropped", query: "program=&program=ZASCA&program=%20", want: domain.FilterSelection{domain.DimProgram: {"ZASCA"}}},
		{name: "unknown parameters ignored", query: "topic=Ventas&limit=5", want: domain.FilterSelection{}},
		{name: "all kept", query: "phase=All", want: domain.FilterSelection{domain.DimPhase: {domain.All}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseSelection(q))
		})
	}
}

func TestParseSelection_OptionValuesRoundTrip(t *testing.T) {
	records := []domain.InterventionRecord{
		{Program: "ZASCA", Topic: "Ventas", Sector: domain.StringPtr("Comercio, hoteles y restaurantes")},
		{Program: "ZASCA", Topic: "Ventas", Sector: domain.StringPtr("Textiles")},
	}
	opts := analytics.Options(records, "NAN")
	require.Contains(t, opts[domain.DimSector], "Comercio, hoteles y restaurantes")

	tests := []struct {
		name     string
		values   []string
		wantRows int
	}{
		{name: "value with comma", values: []string{"Comercio, hoteles y restaurantes"}, wantRows: 1},
		{name: "value with comma and another", values: []string{"Comercio, hoteles y restaurantes", "Textiles"}, wantRows: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := url.Values{string(domain.DimSector): tt.values}.Encode()
			q, err := url.ParseQuery(encoded)
			require.NoError(t, err)
			sel := ParseSelection(q)

			got := analytics.ApplyFilters(records, sel)
			assert.Len(t, got, tt.wantRows)
		})
	}
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	svc := new(MockDashboardService)
	sel := domain.FilterSelection{domain.DimSector: {"Textiles"}, domain.DimYear: {"2024"}}
	svc.On("Dashboard", sel).Return(&domain.Dashboard{
		Filters: sel.Normalized(),
		Summary: domain.Summary{TotalInterventions: 2, DistinctCompanies: 1},
	}, nil)

	rec := serve(newRouter(t, svc), "/api/dashboard?sector=Textiles&year=2024")

	require.Equal(t, http.StatusOK, rec.Code)
	var body domain.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Summary.TotalInterventions)
	assert.Equal(t, []string{"Textiles"}, body.Filters[domain.DimSector])
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(*MockDashboardService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "workshops disabled",
			target: "/api/dashboard/workshops",
			setup: func(m *MockDashboardService) {
				m.On("Workshops").Return(nil, apierrors.NewAppError(apierrors.ErrTypeNotFound, "workshop data not available", services.ErrWorkshopsDisabled))
			},
			wantStatus: http.StatusNotFound,
			wantType:   apierrors.TypeNotFound,
		},
		{
			name:   "timeout",
			target: "/api/dashboard/summary",
			setup: func(m *MockDashboardService) {
				m.On("Summary", domain.FilterSelection{}).Return(nil, context.DeadlineExceeded)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantType:   apierrors.TypeTimeout,
		},
		{
			name:   "dataset missing",
			target: "/api/dashboard/options",
			setup: func(m *MockDashboardService) {
				m.On("Options").Return(nil, apierrors.NewAppError(apierrors.ErrTypeStorage, "dataset not loaded", services.ErrDatasetNotLoaded))
			},
			wantStatus: http.StatusInternalServerError,
			wantType:   apierrors.TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			tt.setup(svc)

			rec := serve(newRouter(t, svc), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantType, problemOf(t, rec)["type"])
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetCompanies(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantStatus int
	}{
		{name: "default limit", query: "", wantLimit: 50, wantStatus: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", wantLimit: 5, wantStatus: http.StatusOK},
		{name: "limit too large", query: "?limit=501", wantStatus: http.StatusBadRequest},
		{name: "limit zero", query: "?limit=0", wantStatus: http.StatusBadRequest},
		{name: "limit not a number", query: "?limit=abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			if tt.wantStatus == http.StatusOK {
				svc.On("Companies", domain.FilterSelection{}, tt.wantLimit).Return(&services.CompanyView{}, nil)
			}

			rec := serve(newRouter(t, svc), "/api/dashboard/companies"+tt.query)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusBadRequest {
				body := problemOf(t, rec)
				assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
				svc.AssertNotCalled(t, "Companies", mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDashboardHandler_GetOptionsAndQuality(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("Options").Return(domain.FilterOptions{domain.DimSector: {domain.All, "Textiles"}}, nil)
	svc.On("Quality").Return(&domain.QualityReport{Interventions: domain.LoadReport{Table: "interventions", Rows: 4}}, nil)
	r := newRouter(t, svc)

	rec := serve(r, "/api/dashboard/options")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sector":["All","Textiles"]}`, rec.Body.String())

	rec = serve(r, "/api/dashboard/quality")
	require.Equal(t, http.StatusOK, rec.Code)
	var q domain.QualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, 4, q.Interventions.Rows)
	assert.Nil(t, q.Workshops)
}

func sampleRecords() []domain.InterventionRecord {
	return []domain.InterventionRecord{
		{Program: "ZASCA", Topic: "Ventas", Sector: domain.StringPtr("Textiles"), ConsultingHours: domain.Float64Ptr(4),
			TaxID: domain.StringPtr("900111"), CompanyName: domain.StringPtr("Acme SAS"), CompanyID: domain.StringPtr("900111")},
		{Program: "ZASCA", Topic: "Marketing", Sector: domain.StringPtr("Textiles"),
			TaxID: domain.StringPtr("900111"), CompanyName: domain.StringPtr("Acme SAS"), CompanyID: domain.StringPtr("900111")},
	}
}

func TestExportHandler_Interventions(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		wantContentType string
		wantFile        string
	}{
		{
			name:            "xlsx",
			target:          "/api/export/interventions.xlsx?program=ZASCA",
			wantContentType: contentTypes[FormatXLSX],
			wantFile:        "intervenciones.xlsx",
		},
		{
			name:            "csv",
			target:          "/api/export/interventions.csv?program=ZASCA",
			wantContentType: contentTypes[FormatCSV],
			wantFile:        "intervenciones.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			svc.On("FilteredRecords", domain.FilterSelection{domain.DimProgram: {"ZASCA"}}).Return(sampleRecords(), nil)

			rec := serve(newRouter(t, svc), tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantContentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), tt.wantFile)
			assert.NotZero(t, rec.Body.Len())
			svc.AssertExpectations(t)
		})
	}
}

func TestExportHandler_CSVContent(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("FilteredRecords", domain.FilterSelection{}).Return(sampleRecords(), nil)

	rec := serve(newRouter(t, svc), "/api/export/interventions.csv")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(body), "Acme SAS")
}

func TestExportHandler_CompaniesWorkbook(t *testing.T) {
	svc := new(MockDashboardService)
	svc.On("CompanyTable", domain.FilterSelection{}, 10).Return([]domain.CompanyTableRow{
		{Rank: 1, CompanyID: "900111", Company: domain.StringPtr("Acme SAS"), Interventions: 2, TotalHours: 4, Programs: "ZASCA"},
	}, nil)

	rec := serve(newRouter(t, svc), "/api/export/companies.xlsx?limit=10")
	require.Equal(t, http.StatusOK, rec.Code)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme SAS", rows[1][1])
	svc.AssertExpectations(t)
}

func TestExportHandler_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "unknown format", target: "/api/export/interventions.pdf"},
		{name: "companies unknown format", target: "/api/export/companies.json"},
		{name: "companies bad limit", target: "/api/export/companies.csv?limit=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockDashboardService)
			rec := serve(newRouter(t, svc), tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, apierrors.TypeValidation, problemOf(t, rec)["type"])
			svc.AssertNotCalled(t, "FilteredRecords", mock.Anything)
			svc.AssertNotCalled(t, "CompanyTable", mock.Anything, mock.Anything)
		})
	}
}

func TestChartHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewDashboardService(dataprocessing.NewDataset(sampleRecords(), nil), services.DashboardOptions{}, nil, logger)
	r := newRouter(t, svc)

	t.Run("renders png", func(t *testing.T) {
		rec := serve(r, "/api/charts/topics.png")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

		img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
	})

	t.Run("unknown chart", func(t *testing.T) {
		rec := serve(r, "/api/charts/radar.png")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", problemOf(t, rec)["error_code"])
	})

	t.Run("empty selection has nothing to plot", func(t *testing.T) {
		rec := serve(r, "/api/charts/gender.png?program=Nadie")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "gender", problemOf(t, rec)["chart"])
	})

	t.Run("list", func(t *testing.T) {
		rec := serve(r, "/api/charts")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string][]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, charts.Names, body["charts"])
	})
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		dataset    *dataprocessing.Dataset
		wantStatus int
	}{
		{name: "ready", dataset: dataprocessing.NewDataset(sampleRecords(), nil), wantStatus: http.StatusOK},
		{name: "not ready", dataset: nil, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewHealthHandler(services.NewHealthService(contracts.GetVersionInfo(), tt.dataset, logger), logger)

			r := chi.NewRouter()
			r.Mount("/api/health", h.Routes())
			r.Get("/api/version", h.Version)

			assert.Equal(t, tt.wantStatus, serve(r, "/api/health/ready").Code)
			assert.Equal(t, http.StatusOK, serve(r, "/api/health").Code)
			assert.Equal(t, http.StatusOK, serve(r, "/api/health/live").Code)

			rec := serve(r, "/api/version")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), contracts.Version)
		})
	}
}

func TestMetricsHandler_Disabled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewMetricsHandler(nil, apierrors.NewErrorHandler(logger, false))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsHandler_Delegates(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	scrape := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# HELP dataset_rows"))
	})
	h := NewMetricsHandler(scrape, apierrors.NewErrorHandler(logger, false))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dataset_rows")
}
