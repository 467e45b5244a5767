package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/paulaandreaia-bit/Dashboard-transformacion/internal/dataprocessing"
	"github.com/paulaandreaia-bit/Dashboard-transformacion/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   contracts.VersionInfo
	dataset   *dataprocessing.Dataset
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Rows    int    `json:"rows,omitempty"`
}

// NewHealthService creates a new health service over the loaded dataset
func NewHealthService(version contracts.VersionInfo, dataset *dataprocessing.Dataset, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version.Version),
		slog.String("git_commit", version.GitCommit))

	return &HealthService{
		version:   version,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
	}
}

// ReadinessCheck reports whether the dataset is loaded. A disabled workshop
// section does not make the service unready.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Services: map[string]interface{}{
			"interventions": hs.checkInterventions(),
			"workshops":     hs.checkWorkshops(),
		},
	}

	if sh := status.Services["interventions"].(ServiceHealth); sh.Status != "ready" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "ReadinessCheck: not ready", slog.String("reason", sh.Message))
	}

	return status
}

// Ready reports whether the service can answer dashboard requests.
func (hs *HealthService) Ready() bool {
	return hs.dataset != nil
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version.Version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":      hs.version.Version,
		"build_time":   hs.version.BuildTime,
		"git_commit":   hs.version.GitCommit,
		"go_version":   hs.version.GoVersion,
		"os":           hs.version.OS,
		"arch":         hs.version.Architecture,
		"data_format":  hs.version.DataFormat,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkInterventions() ServiceHealth {
	if hs.dataset == nil {
		return ServiceHealth{Status: "not_ready", Message: "interventions not loaded"}
	}
	rows := len(hs.dataset.Interventions())
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d interventions loaded", rows),
		Rows:    rows,
	}
}

func (hs *HealthService) checkWorkshops() ServiceHealth {
	if hs.dataset == nil || !hs.dataset.WorkshopsEnabled() {
		return ServiceHealth{Status: "disabled", Message: "workshop data not available"}
	}
	rows := len(hs.dataset.Workshops())
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d workshops loaded", rows),
		Rows:    rows,
	}
}
