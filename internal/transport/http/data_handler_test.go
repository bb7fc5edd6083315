package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "crickpulse/internal/errors"
	"crickpulse/internal/services"
	"crickpulse/internal/stats"
	"crickpulse/pkg/contracts/domain"
)

// stubDashboardService serves a fixed table so handler behavior can be
// tested without a real dataset store.
type stubDashboardService struct {
	matches []domain.Match
	err     error
}

func (s *stubDashboardService) filtered(f stats.Filter) []domain.Match {
	return stats.Apply(s.matches, f)
}

func (s *stubDashboardService) Matches(ctx context.Context, f stats.Filter) ([]domain.Match, error) {
	return s.filtered(f), s.err
}

func (s *stubDashboardService) Summary(ctx context.Context, f stats.Filter) (stats.Summary, error) {
	return stats.Summarize(s.filtered(f)), s.err
}

func (s *stubDashboardService) SeasonActivity(ctx context.Context, f stats.Filter) ([]stats.SeasonActivity, error) {
	return stats.MatchesPerSeason(s.filtered(f)), s.err
}

func (s *stubDashboardService) TopTeams(ctx context.Context, f stats.Filter, topN int) ([]stats.TeamWins, error) {
	return stats.WinsByTeam(s.filtered(f), topN), s.err
}

func (s *stubDashboardService) WinMatrix(ctx context.Context, f stats.Filter) (stats.WinMatrix, error) {
	return stats.ComputeWinMatrix(s.filtered(f)), s.err
}

func (s *stubDashboardService) Margins(ctx context.Context, f stats.Filter) ([]stats.MarginPoint, []stats.MarginStats, error) {
	m := s.filtered(f)
	return stats.MarginPoints(m), stats.MarginDistribution(m), s.err
}

func (s *stubDashboardService) ResultTypes(ctx context.Context, f stats.Filter) ([]stats.ResultTypeCount, error) {
	return stats.CountResultTypes(s.filtered(f)), s.err
}

func (s *stubDashboardService) Seasons(ctx context.Context) ([]int, error) {
	return stats.Seasons(s.matches), s.err
}

func (s *stubDashboardService) Teams(ctx context.Context) ([]string, error) {
	return stats.Teams(s.matches), s.err
}

func (s *stubDashboardService) Aggregates(ctx context.Context, f stats.Filter) (*services.AggregateSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	m := s.filtered(f)
	return &services.AggregateSnapshot{
		Filter:      f,
		Summary:     stats.Summarize(m),
		PerSeason:   stats.MatchesPerSeason(m),
		TopTeams:    stats.WinsByTeam(m, 10),
		WinMatrix:   stats.ComputeWinMatrix(m),
		Margins:     stats.MarginPoints(m),
		MarginStats: stats.MarginDistribution(m),
		ResultTypes: stats.CountResultTypes(m),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *stubDashboardService) DatasetLoaded() bool { return s.err == nil }

func testMatches() []domain.Match {
	date := func(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
	return []domain.Match{
		{ID: 1, Season: 2020, Date: date(2020, 4, 1), Team1: "TeamA", Team2: "TeamB", Winner: "TeamA", Venue: "Garden", ResultType: domain.ResultTypeRuns, WinByRuns: 5},
		{ID: 2, Season: 2020, Date: date(2020, 4, 2), Team1: "TeamA", Team2: "TeamB", Winner: "TeamB", Venue: "Garden", ResultType: domain.ResultTypeWickets, WinByWickets: 3},
		{ID: 3, Season: 2021, Date: date(2021, 4, 3), Team1: "TeamA", Team2: "TeamC", Venue: "Oval", ResultType: domain.ResultTypeNoResult},
	}
}

func newTestDataHandler(service DashboardServiceInterface) *DataHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDataHandler(service, logger, apierrors.NewErrorHandler(logger, false))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDataHandler_GetSummary(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["total_matches"])
	assert.EqualValues(t, 1, data["no_results"])
}

func TestDataHandler_GetWins_Filtered(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/wins?seasons=2020&limit=1", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["count"])

	wins := body["data"].([]interface{})
	first := wins[0].(map[string]interface{})
	assert.Equal(t, "TeamA", first["team"])
}

func TestDataHandler_GetWinMatrix(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/win-matrix", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})

	teams := data["teams"].([]interface{})
	seasons := data["seasons"].([]interface{})
	wins := data["wins"].([]interface{})
	assert.Len(t, teams, 3)
	assert.Len(t, seasons, 2)
	require.Len(t, wins, 3)
	for _, row := range wins {
		assert.Len(t, row.([]interface{}), 2)
	}
}

func TestDataHandler_InvalidQueryParams(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	tests := []struct {
		name string
		url  string
	}{
		{"bad season", "/summary?seasons=twenty-twenty"},
		{"bad limit", "/wins?limit=zero"},
		{"limit out of range", "/wins?limit=5000"},
		{"bad from date", "/summary?from=01-01-2020"},
		{"inverted range", "/summary?from=2021-01-01&to=2020-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			handler.Routes().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
		})
	}
}

func TestDataHandler_Export_CSV(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/export/csv?table=team_wins", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "team_wins")
	assert.Contains(t, rec.Body.String(), "Team,Wins")
	assert.Contains(t, rec.Body.String(), "TeamA,1")
}

func TestDataHandler_Export_XLSX(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/export/xlsx", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, rec.Body.Len())
}

func TestDataHandler_Export_InvalidFormat(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/export/pdf", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}

func TestDataHandler_Export_UnknownTable(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{matches: testMatches()})

	req := httptest.NewRequest(http.MethodGet, "/export/csv?table=nope", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataHandler_ServiceUnavailable(t *testing.T) {
	handler := newTestDataHandler(&stubDashboardService{err: services.ErrDatasetNotLoaded})

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
