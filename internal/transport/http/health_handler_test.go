package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crickpulse/internal/config"
	"crickpulse/internal/dataset"
	"crickpulse/internal/services"
)

func newTestHealthHandler(t *testing.T, withData bool) (*HealthHandler, *services.DashboardService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	path := filepath.Join(t.TempDir(), "matches.csv")
	if withData {
		data := "season,date,team1,team2,winner,win_by_runs,win_by_wickets\n" +
			"2020,2020-04-01,TeamA,TeamB,TeamA,5,0\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	}

	loader := dataset.NewLoader(config.DefaultColumns(), logger)
	store := dataset.NewStore(path, loader, logger)
	dashboard := services.NewDashboardService(store, nil, logger)
	health := services.NewHealthService("1.2.0-test", "2026-01-01T00:00:00Z", dashboard, logger)

	return NewHealthHandler(health, logger), dashboard
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	handler, dashboard := newTestHealthHandler(t, true)
	_, err := dashboard.Warmup(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.0-test", body["version"])
	assert.Contains(t, body, "timestamp")
}

func TestHealthHandler_HealthCheck_Degraded(t *testing.T) {
	handler, _ := newTestHealthHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
}

func TestHealthHandler_ReadinessCheck(t *testing.T) {
	handler, dashboard := newTestHealthHandler(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/health/ready", nil)
	rec := httptest.NewRecorder()
	handler.ReadinessCheck(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, err := dashboard.Warmup(context.Background())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler.ReadinessCheck(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ready"])
}

func TestHealthHandler_LivenessCheck(t *testing.T) {
	handler, _ := newTestHealthHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	rec := httptest.NewRecorder()
	handler.LivenessCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["alive"])
}

func TestHealthHandler_Version(t *testing.T) {
	handler, _ := newTestHealthHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	handler.Version(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.0-test", body["version"])
}
