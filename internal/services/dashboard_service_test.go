package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crickpulse/internal/config"
	"crickpulse/internal/dataset"
	"crickpulse/internal/stats"
	"crickpulse/pkg/contracts/domain"
)

const dashboardTestData = `match_id,season,date,team1,team2,winner,venue,win_by_runs,win_by_wickets
1,2020,2020-04-01,TeamA,TeamB,TeamA,Garden,5,0
2,2020,2020-04-02,TeamA,TeamB,TeamB,Garden,0,3
3,2020,2020-04-03,TeamA,TeamB,,Oval,0,0
4,2021,2021-04-10,TeamA,TeamC,TeamA,Garden,20,0
5,2021,2021-04-11,TeamB,TeamC,TeamC,Oval,0,7
`

func newTestService(t *testing.T, data string) *DashboardService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	loader := dataset.NewLoader(config.DefaultColumns(), nil)
	store := dataset.NewStore(path, loader, nil)
	return NewDashboardService(store, nil, nil)
}

func TestDashboardService_Warmup(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	assert.False(t, service.DatasetLoaded())

	rows, err := service.Warmup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, rows)
	assert.True(t, service.DatasetLoaded())
}

func TestDashboardService_Warmup_FileMissing(t *testing.T) {
	loader := dataset.NewLoader(config.DefaultColumns(), nil)
	store := dataset.NewStore(filepath.Join(t.TempDir(), "absent.csv"), loader, nil)
	service := NewDashboardService(store, nil, nil)

	_, err := service.Warmup(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrFileNotFound)
	assert.False(t, service.DatasetLoaded())
}

func TestDashboardService_Summary(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	summary, err := service.Summary(context.Background(), stats.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalMatches)
	assert.Equal(t, 1, summary.NoResults)
	assert.Equal(t, 2, summary.Venues)
	assert.Equal(t, "TeamA", summary.TopTeam)
	assert.Equal(t, 2, summary.TopTeamWins)
}

func TestDashboardService_Summary_Filtered(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	summary, err := service.Summary(context.Background(), stats.Filter{Seasons: []int{2021}})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalMatches)
	assert.Zero(t, summary.NoResults)
}

func TestDashboardService_TopTeams(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	board, err := service.TopTeams(context.Background(), stats.Filter{}, 2)
	require.NoError(t, err)

	require.Len(t, board, 2)
	assert.Equal(t, stats.TeamWins{Team: "TeamA", Wins: 2}, board[0])
}

func TestDashboardService_Margins(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	points, dist, err := service.Margins(context.Background(), stats.Filter{})
	require.NoError(t, err)

	assert.Len(t, points, 4)
	require.Len(t, dist, 2)
	assert.Equal(t, domain.ResultTypeRuns, dist[0].ResultType)
	assert.Equal(t, 2, dist[0].Count)
}

func TestDashboardService_Aggregates(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	snap, err := service.Aggregates(context.Background(), stats.Filter{Teams: []string{"TeamC"}})
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Summary.TotalMatches)
	assert.Equal(t, []int{2021}, snap.WinMatrix.Seasons)
	assert.NotZero(t, snap.GeneratedAt)
	assert.Equal(t, []string{"TeamC"}, snap.Filter.Teams)
}

func TestDashboardService_SeasonsAndTeams(t *testing.T) {
	service := newTestService(t, dashboardTestData)

	seasons, err := service.Seasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2021}, seasons)

	teams, err := service.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TeamA", "TeamB", "TeamC"}, teams)
}

func TestHealthService_Check(t *testing.T) {
	service := newTestService(t, dashboardTestData)
	health := NewHealthService("1.2.0-test", "2026-01-01T00:00:00Z", service, nil)

	status := health.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, health.Ready(context.Background()))

	_, err := service.Warmup(context.Background())
	require.NoError(t, err)

	status = health.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, health.Ready(context.Background()))
	assert.Equal(t, "1.2.0-test", status.Version)
}

func TestHealthService_Version(t *testing.T) {
	service := newTestService(t, dashboardTestData)
	health := NewHealthService("1.2.0-test", "2026-01-01T00:00:00Z", service, nil)

	info := health.Version(context.Background())
	assert.Equal(t, "1.2.0-test", info.Version)
}
