package dataset

import (
	"strings"

	"crickpulse/internal/config"
)

// Schema maps Match Record attributes to CSV column positions. Column
// names are a deployment convention (config.ColumnConfig); header
// matching is case-insensitive and whitespace-tolerant.
type Schema struct {
	columns config.ColumnConfig

	season       int
	date         int
	team1        int
	team2        int
	winner       int
	venue        int
	winByRuns    int
	winByWickets int
	matchID      int
}

// NewSchema creates a schema for the configured column names
func NewSchema(columns config.ColumnConfig) *Schema {
	return &Schema{columns: columns}
}

// Bind resolves configured column names against a header row. Columns
// that allow derivation (season from date year, synthetic match IDs) or
// are purely descriptive (venue) may be absent; everything else is
// required.
func (s *Schema) Bind(path string, header []string) error {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}

	lookup := func(name string) int {
		if i, ok := index[normalizeHeader(name)]; ok {
			return i
		}
		return -1
	}

	s.season = lookup(s.columns.Season)
	s.date = lookup(s.columns.Date)
	s.team1 = lookup(s.columns.Team1)
	s.team2 = lookup(s.columns.Team2)
	s.winner = lookup(s.columns.Winner)
	s.venue = lookup(s.columns.Venue)
	s.winByRuns = lookup(s.columns.WinByRuns)
	s.winByWickets = lookup(s.columns.WinByWickets)
	s.matchID = lookup(s.columns.MatchID)

	required := []struct {
		name string
		idx  int
	}{
		{s.columns.Date, s.date},
		{s.columns.Team1, s.team1},
		{s.columns.Team2, s.team2},
		{s.columns.Winner, s.winner},
		{s.columns.WinByRuns, s.winByRuns},
		{s.columns.WinByWickets, s.winByWickets},
	}
	for _, col := range required {
		if col.idx < 0 {
			return schemaErr(path, col.name)
		}
	}

	return nil
}

// HasSeason reports whether the file carries an explicit season column
func (s *Schema) HasSeason() bool { return s.season >= 0 }

// HasMatchID reports whether the file carries an explicit match ID column
func (s *Schema) HasMatchID() bool { return s.matchID >= 0 }

// cell returns the trimmed value at idx, or "" when the column is absent
// or the row is short
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
