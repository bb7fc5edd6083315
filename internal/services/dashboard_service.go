package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crickpulse/internal/config"
	"crickpulse/internal/dataset"
	"crickpulse/internal/infrastructure"
	"crickpulse/internal/stats"
	"crickpulse/pkg/contracts/domain"
)

// DashboardService binds the session dataset cache to the aggregation
// functions consumed by the HTTP and WebSocket transports. Every method
// recomputes its aggregate synchronously against the cached table, so
// results for a fixed filter are always identical.
type DashboardService struct {
	store   *dataset.Store
	metrics *infrastructure.DashboardMetrics
	logger  *slog.Logger
}

// AggregateSnapshot bundles everything one dashboard render needs. The
// WebSocket channel pushes it whole whenever a client changes a filter.
type AggregateSnapshot struct {
	Filter      stats.Filter           `json:"filter"`
	Summary     stats.Summary          `json:"summary"`
	PerSeason   []stats.SeasonActivity `json:"per_season"`
	TopTeams    []stats.TeamWins       `json:"top_teams"`
	WinMatrix   stats.WinMatrix        `json:"win_matrix"`
	Margins     []stats.MarginPoint    `json:"margins"`
	MarginStats []stats.MarginStats    `json:"margin_stats"`
	ResultTypes []stats.ResultTypeCount `json:"result_types"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// NewDashboardService creates a dashboard service over the given store
func NewDashboardService(store *dataset.Store, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:   store,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}
}

// Warmup eagerly loads the dataset so load errors surface at startup
// rather than on the first request.
func (s *DashboardService) Warmup(ctx context.Context) (int, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("dataset warmup failed: %w", err)
	}
	if s.metrics != nil {
		s.metrics.DatasetRows.Record(ctx, int64(snap.Rows()))
	}
	return snap.Rows(), nil
}

// filtered returns the filter-applied view of the cached table
func (s *DashboardService) filtered(ctx context.Context, f stats.Filter) ([]domain.Match, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Apply(snap.Matches, f), nil
}

// Matches returns the filtered match rows
func (s *DashboardService) Matches(ctx context.Context, f stats.Filter) ([]domain.Match, error) {
	return s.filtered(ctx, f)
}

// Summary computes the metric cards for the filtered view
func (s *DashboardService) Summary(ctx context.Context, f stats.Filter) (stats.Summary, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return stats.Summary{}, err
	}
	defer s.timeAggregation(ctx, "summary")()
	return stats.Summarize(matches), nil
}

// SeasonActivity computes matches per season for the filtered view
func (s *DashboardService) SeasonActivity(ctx context.Context, f stats.Filter) ([]stats.SeasonActivity, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	defer s.timeAggregation(ctx, "season_activity")()
	return stats.MatchesPerSeason(matches), nil
}

// TopTeams computes the wins leaderboard for the filtered view
func (s *DashboardService) TopTeams(ctx context.Context, f stats.Filter, topN int) ([]stats.TeamWins, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	defer s.timeAggregation(ctx, "top_teams")()
	return stats.WinsByTeam(matches, topN), nil
}

// WinMatrix computes the team-by-season heatmap for the filtered view
func (s *DashboardService) WinMatrix(ctx context.Context, f stats.Filter) (stats.WinMatrix, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return stats.WinMatrix{}, err
	}
	defer s.timeAggregation(ctx, "win_matrix")()
	return stats.ComputeWinMatrix(matches), nil
}

// Margins computes the scatter feed plus per-type margin statistics
func (s *DashboardService) Margins(ctx context.Context, f stats.Filter) ([]stats.MarginPoint, []stats.MarginStats, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	defer s.timeAggregation(ctx, "margins")()
	return stats.MarginPoints(matches), stats.MarginDistribution(matches), nil
}

// ResultTypes computes the result-type distribution for the filtered view
func (s *DashboardService) ResultTypes(ctx context.Context, f stats.Filter) ([]stats.ResultTypeCount, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	defer s.timeAggregation(ctx, "result_types")()
	return stats.CountResultTypes(matches), nil
}

// Seasons lists the distinct seasons in the full table
func (s *DashboardService) Seasons(ctx context.Context) ([]int, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Seasons(snap.Matches), nil
}

// Teams lists the distinct teams in the full table
func (s *DashboardService) Teams(ctx context.Context) ([]string, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Teams(snap.Matches), nil
}

// Aggregates computes the full dashboard payload in one pass. This is
// what a filter change recomputes.
func (s *DashboardService) Aggregates(ctx context.Context, f stats.Filter) (*AggregateSnapshot, error) {
	matches, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	defer s.timeAggregation(ctx, "aggregates")()

	topN := config.DefaultTopTeams
	return &AggregateSnapshot{
		Filter:      f,
		Summary:     stats.Summarize(matches),
		PerSeason:   stats.MatchesPerSeason(matches),
		TopTeams:    stats.WinsByTeam(matches, topN),
		WinMatrix:   stats.ComputeWinMatrix(matches),
		Margins:     stats.MarginPoints(matches),
		MarginStats: stats.MarginDistribution(matches),
		ResultTypes: stats.CountResultTypes(matches),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// DatasetLoaded reports whether the session cache holds the table
func (s *DashboardService) DatasetLoaded() bool {
	return s.store.Loaded()
}

// timeAggregation records the duration of one aggregate computation
func (s *DashboardService) timeAggregation(ctx context.Context, operation string) func() {
	start := time.Now()
	return func() {
		infrastructure.RecordAggregation(ctx, s.metrics, operation, time.Since(start).Seconds())
	}
}
