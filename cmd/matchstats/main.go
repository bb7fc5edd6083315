package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crickpulse/internal/config"
	"crickpulse/internal/dataset"
	"crickpulse/internal/exporter"
	"crickpulse/internal/infrastructure"
	"crickpulse/internal/services"
	"crickpulse/internal/stats"
)

// matchstats loads a matches CSV and writes the dashboard aggregates as
// report files, without running the HTTP server.
func main() {
	matchesPath := flag.String("matches", "", "matches csv file (defaults to the configured data/matches.csv)")
	outDir := flag.String("out", "", "output directory for report files (defaults to the configured reports dir)")
	seasons := flag.String("seasons", "", "comma-separated season years to include")
	teams := flag.String("teams", "", "comma-separated team names to include")
	topN := flag.Int("top", config.DefaultTopTeams, "teams shown in the wins leaderboard")
	xlsx := flag.Bool("xlsx", true, "also write a combined xlsx workbook")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *matchesPath == "" {
		*matchesPath = cfg.MatchesPath()
	}
	if *outDir == "" {
		*outDir = cfg.Data.ReportsDir
	}

	filter, err := buildFilter(*seasons, *teams)
	if err != nil {
		logger.Error("invalid filter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	loader := dataset.NewLoader(cfg.Data.Columns, logger)
	store := dataset.NewStore(*matchesPath, loader, logger)
	service := services.NewDashboardService(store, nil, logger)

	rows, err := service.Warmup(ctx)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) {
			logger.Error("matches file rejected",
				slog.String("path", loadErr.Path),
				slog.Int("row", loadErr.Row),
				slog.String("reason", loadErr.Msg))
		} else {
			logger.Error("failed to load matches", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}
	logger.Info("matches loaded", slog.Int("rows", rows), slog.String("path", *matchesPath))

	snap, err := service.Aggregates(ctx, filter)
	if err != nil {
		logger.Error("aggregation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	snapTop, err := service.TopTeams(ctx, filter, *topN)
	if err == nil {
		snap.TopTeams = snapTop
	}

	tables := exporter.FromAggregates(snap)

	writer := exporter.NewCSVWriter(*outDir, logger)
	for _, table := range tables {
		path, err := writer.WriteFile(table, exporter.WriteOptions{})
		if err != nil {
			logger.Error("failed to write report",
				slog.String("table", table.Name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println("wrote", path)
	}

	if *xlsx {
		workbookPath := filepath.Join(*outDir, "match_report.xlsx")
		if err := exporter.WriteWorkbookFile(workbookPath, tables); err != nil {
			logger.Error("failed to write workbook", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println("wrote", workbookPath)
	}
}

// buildFilter parses the command line filter flags
func buildFilter(seasons, teams string) (stats.Filter, error) {
	var f stats.Filter

	if seasons != "" {
		for _, part := range strings.Split(seasons, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := strconv.Atoi(part)
			if err != nil {
				return stats.Filter{}, fmt.Errorf("invalid season %q", part)
			}
			f.Seasons = append(f.Seasons, year)
		}
	}

	if teams != "" {
		for _, part := range strings.Split(teams, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				f.Teams = append(f.Teams, part)
			}
		}
	}

	return f, nil
}
