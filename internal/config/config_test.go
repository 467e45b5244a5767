package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadFile_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "NAN", cfg.Data.NullSentinel)
	assert.Equal(t, []string{"BARCELONA"}, cfg.Data.Corregimientos)
	assert.Equal(t, 10, cfg.Data.TopSectors)
	assert.Equal(t, 15, cfg.Data.TopCompanies)
	assert.Equal(t, 50, cfg.Data.CompanyTable)
	assert.Equal(t, "transformacion_completamente_dividido.xlsx", cfg.Data.InterventionsPath)
	assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
}

func TestLoadFile_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
server:
  port: 9000
  read_timeout: 5s
data:
  interventions_path: /srv/data/intervenciones.xlsx
  top_sectors: 5
logging:
  level: debug
`), 0o644))

	t.Setenv("DASHBOARD_SERVER_PORT", "9100")
	t.Setenv("DASHBOARD_DATA_CORREGIMIENTOS", "BARCELONA,PUEBLO TAPAO")

	cfg, err := LoadFile(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env wins over file")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout, "file wins over defaults")
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "untouched keys keep defaults")
	assert.Equal(t, "/srv/data/intervenciones.xlsx", cfg.Data.InterventionsPath)
	assert.Equal(t, 5, cfg.Data.TopSectors)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"BARCELONA", "PUEBLO TAPAO"}, cfg.Data.Corregimientos)
}

func TestLoadFile_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DASHBOARD_DATA_NULL_SENTINEL=N/A\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DASHBOARD_DATA_NULL_SENTINEL") })

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "N/A", cfg.Data.NullSentinel)
}

func TestLoadFile_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"DASHBOARD_SERVER_PORT": "70000"}},
		{"unknown log level", map[string]string{"DASHBOARD_LOGGING_LEVEL": "verbose"}},
		{"company table too large", map[string]string{"DASHBOARD_DATA_COMPANY_TABLE": "501"}},
		{"unknown trace exporter", map[string]string{"DASHBOARD_TELEMETRY_TRACE_EXPORTER": "zipkin"}},
		{"malformed duration", map[string]string{"DASHBOARD_SERVER_READ_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_MissingYAML(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate_FileLoggingNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Logging.Output = "console"
	assert.NoError(t, cfg.Validate())
}
