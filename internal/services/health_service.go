package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"crickpulse/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	dashboard *DashboardService
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

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, dashboard *DashboardService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		dashboard: dashboard,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check returns the overall health of the dashboard
func (h *HealthService) Check(ctx context.Context) HealthStatus {
	status := "healthy"
	services := map[string]interface{}{
		"dataset": map[string]interface{}{
			"loaded": h.dashboard.DatasetLoaded(),
		},
	}

	if !h.dashboard.DatasetLoaded() {
		status = "degraded"
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(h.startTime).Seconds(),
		},
		Services: services,
	}
}

// Ready reports whether the dashboard can serve aggregates. The dataset
// is loaded at startup, so readiness follows the session cache.
func (h *HealthService) Ready(ctx context.Context) bool {
	return h.dashboard.DatasetLoaded()
}

// Version returns the build information
func (h *HealthService) Version(ctx context.Context) contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if h.version != "" {
		info.Version = h.version
	}
	return info
}
