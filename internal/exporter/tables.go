package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"crickpulse/internal/services"
)

// Canonical table names exposed by the export endpoints
const (
	TableSummary        = "summary"
	TableSeasonActivity = "season_activity"
	TableTopTeams       = "team_wins"
	TableWinMatrix      = "win_matrix"
	TableMargins        = "win_margins"
	TableResultTypes    = "result_types"
)

// FromAggregates flattens a dashboard aggregate snapshot into exportable
// tables, in a fixed order so workbook sheets are stable.
func FromAggregates(snap *services.AggregateSnapshot) []Table {
	tables := []Table{
		summaryTable(snap),
		seasonActivityTable(snap),
		topTeamsTable(snap),
		winMatrixTable(snap),
		marginsTable(snap),
		resultTypesTable(snap),
	}
	return tables
}

// TableByName returns the single named table from a snapshot
func TableByName(snap *services.AggregateSnapshot, name string) (Table, error) {
	for _, table := range FromAggregates(snap) {
		if table.Name == name {
			return table, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %s", services.ErrInvalidInput, name)
}

// TableNames lists the canonical export table names
func TableNames() []string {
	return []string{
		TableSummary,
		TableSeasonActivity,
		TableTopTeams,
		TableWinMatrix,
		TableMargins,
		TableResultTypes,
	}
}

func summaryTable(snap *services.AggregateSnapshot) Table {
	s := snap.Summary
	return Table{
		Name:    TableSummary,
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Matches", strconv.Itoa(s.TotalMatches)},
			{"No Results", strconv.Itoa(s.NoResults)},
			{"Venues", strconv.Itoa(s.Venues)},
			{"Top Team", s.TopTeam},
			{"Top Team Wins", strconv.Itoa(s.TopTeamWins)},
		},
	}
}

func seasonActivityTable(snap *services.AggregateSnapshot) Table {
	rows := make([][]string, 0, len(snap.PerSeason))
	for _, p := range snap.PerSeason {
		rows = append(rows, []string{strconv.Itoa(p.Season), strconv.Itoa(p.Matches)})
	}
	return Table{
		Name:    TableSeasonActivity,
		Headers: []string{"Season", "Matches"},
		Rows:    rows,
	}
}

func topTeamsTable(snap *services.AggregateSnapshot) Table {
	rows := make([][]string, 0, len(snap.TopTeams))
	for _, t := range snap.TopTeams {
		rows = append(rows, []string{t.Team, strconv.Itoa(t.Wins)})
	}
	return Table{
		Name:    TableTopTeams,
		Headers: []string{"Team", "Wins"},
		Rows:    rows,
	}
}

func winMatrixTable(snap *services.AggregateSnapshot) Table {
	m := snap.WinMatrix
	headers := make([]string, 0, len(m.Seasons)+1)
	headers = append(headers, "Team")
	for _, season := range m.Seasons {
		headers = append(headers, strconv.Itoa(season))
	}

	rows := make([][]string, 0, len(m.Teams))
	for i, team := range m.Teams {
		row := make([]string, 0, len(m.Seasons)+1)
		row = append(row, team)
		for _, wins := range m.Wins[i] {
			row = append(row, strconv.Itoa(wins))
		}
		rows = append(rows, row)
	}

	return Table{
		Name:    TableWinMatrix,
		Headers: headers,
		Rows:    rows,
	}
}

func marginsTable(snap *services.AggregateSnapshot) Table {
	rows := make([][]string, 0, len(snap.Margins))
	for _, p := range snap.Margins {
		rows = append(rows, []string{
			strconv.Itoa(p.MatchID),
			strconv.Itoa(p.Season),
			p.Team1,
			p.Team2,
			p.Winner,
			string(p.ResultType),
			strconv.Itoa(p.Runs),
			strconv.Itoa(p.Wickets),
		})
	}
	return Table{
		Name:    TableMargins,
		Headers: []string{"MatchID", "Season", "Team1", "Team2", "Winner", "ResultType", "Runs", "Wickets"},
		Rows:    rows,
	}
}

func resultTypesTable(snap *services.AggregateSnapshot) Table {
	rows := make([][]string, 0, len(snap.ResultTypes))
	for _, rt := range snap.ResultTypes {
		rows = append(rows, []string{string(rt.ResultType), strconv.Itoa(rt.Count)})
	}
	return Table{
		Name:    TableResultTypes,
		Headers: []string{"ResultType", "Count"},
		Rows:    rows,
	}
}

// createFile opens a file for writing, creating parent directories
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return f, nil
}
