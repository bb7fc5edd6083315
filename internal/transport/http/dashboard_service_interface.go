package http

import (
	"context"

	"crickpulse/internal/services"
	"crickpulse/internal/stats"
	"crickpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the interface for dashboard data operations
type DashboardServiceInterface interface {
	Matches(ctx context.Context, f stats.Filter) ([]domain.Match, error)
	Summary(ctx context.Context, f stats.Filter) (stats.Summary, error)
	SeasonActivity(ctx context.Context, f stats.Filter) ([]stats.SeasonActivity, error)
	TopTeams(ctx context.Context, f stats.Filter, topN int) ([]stats.TeamWins, error)
	WinMatrix(ctx context.Context, f stats.Filter) (stats.WinMatrix, error)
	Margins(ctx context.Context, f stats.Filter) ([]stats.MarginPoint, []stats.MarginStats, error)
	ResultTypes(ctx context.Context, f stats.Filter) ([]stats.ResultTypeCount, error)
	Seasons(ctx context.Context) ([]int, error)
	Teams(ctx context.Context) ([]string, error)
	Aggregates(ctx context.Context, f stats.Filter) (*services.AggregateSnapshot, error)
	DatasetLoaded() bool
}
