package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/config"
	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	interventions, workshops := testutil.SampleSources(t, dir)

	cfg := config.Default()
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Security.RateLimit.Enabled = false
	cfg.Security.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Data.InterventionsPath = interventions
	cfg.Data.WorkshopsPath = workshops
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *testutil.LogCapture) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	app, err := NewApplication(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.OTelProviders.Shutdown(context.Background()) })
	return app, logs
}

func get(app *Application, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestNewApplication_LoadsDataset(t *testing.T) {
	app, logs := newTestApp(t, testConfig(t))

	require.NotNil(t, app.Dataset)
	assert.Len(t, app.Dataset.Interventions(), 4)
	assert.True(t, app.Dataset.WorkshopsEnabled())
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":0", app.Server.Addr)

	testutil.AssertLogged(t, logs, slog.LevelInfo, "Dataset loaded")
	testutil.AssertNoErrors(t, logs)
}

func TestNewApplication_MissingInterventions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.InterventionsPath = filepath.Join(t.TempDir(), "missing.xlsx")

	logger, _ := testutil.NewTestLogger(t)
	app, err := NewApplication(context.Background(), cfg, logger)

	require.Error(t, err)
	assert.Nil(t, app)

	var appErr *apierrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apierrors.ErrTypeMissingSource, appErr.Type)
	assert.Equal(t, cfg.Data.InterventionsPath, appErr.Context["path"])
}

func TestNewApplication_NilConfig(t *testing.T) {
	app, err := NewApplication(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Nil(t, app)
}

func TestNewApplication_WorkshopsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.WorkshopsPath = filepath.Join(t.TempDir(), "missing.xlsx")

	app, _ := newTestApp(t, cfg)
	assert.False(t, app.Dataset.WorkshopsEnabled())

	rec := get(app, "/api/dashboard/workshops")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(app, "/api/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")
}

func TestRouter_Endpoints(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantType    string
		wantContain string
	}{
		{name: "health", target: "/api/health", wantStatus: http.StatusOK, wantType: "application/json"},
		{name: "ready", target: "/api/health/ready", wantStatus: http.StatusOK, wantContain: "ready"},
		{name: "version", target: "/api/version", wantStatus: http.StatusOK, wantContain: "version"},
		{name: "dashboard", target: "/api/dashboard?program=ZASCA", wantStatus: http.StatusOK, wantContain: `"total_interventions":3`},
		{name: "options", target: "/api/dashboard/options", wantStatus: http.StatusOK, wantContain: "Textiles"},
		{name: "workshops", target: "/api/dashboard/workshops", wantStatus: http.StatusOK, wantContain: "Finanzas"},
		{name: "companies bad limit", target: "/api/dashboard/companies?limit=0", wantStatus: http.StatusBadRequest, wantType: "application/problem+json"},
		{name: "csv export", target: "/api/export/interventions.csv", wantStatus: http.StatusOK, wantType: "text/csv; charset=utf-8"},
		{name: "chart", target: "/api/charts/programs.png", wantStatus: http.StatusOK, wantType: "image/png"},
		{name: "metrics", target: "/metrics", wantStatus: http.StatusOK, wantContain: "dataset_rows"},
		{name: "unknown route", target: "/api/nope", wantStatus: http.StatusNotFound, wantType: "application/problem+json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(app, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			}
			if tt.wantContain != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContain)
			}
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard/summary", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouter_CORS(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		app, _ := newTestApp(t, testConfig(t))
		rec := get(app, "/api/health", "Origin", "http://localhost:3000")
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Security.EnableCORS = false
		app, _ := newTestApp(t, cfg)
		rec := get(app, "/api/health", "Origin", "http://localhost:3000")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	app, _ := newTestApp(t, cfg)

	assert.Equal(t, http.StatusOK, get(app, "/api/health").Code)
	rec := get(app, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.MetricExporter = "none"
	app, _ := newTestApp(t, cfg)

	assert.Equal(t, http.StatusNotFound, get(app, "/metrics").Code)
}

func TestRouter_DashboardPayload(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	rec := get(app, "/api/dashboard?sector=Textiles")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Filters map[string][]string `json:"filters"`
		Empty   bool                `json:"empty"`
		Summary struct {
			TotalInterventions int `json:"total_interventions"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Empty)
	assert.Equal(t, 2, body.Summary.TotalInterventions)
	assert.Equal(t, []string{"Textiles"}, body.Filters["sector"])
	assert.Equal(t, []string{"All"}, body.Filters["program"])
}

func TestApplication_RunAndStop(t *testing.T) {
	app, logs := newTestApp(t, testConfig(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// Give the listener a moment before canceling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	testutil.AssertLogged(t, logs, slog.LevelInfo, "Application shutdown complete")
}

func TestApplication_ServesOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard/summary?gender=FEMENINO")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"total_interventions":3`)
}
