package dataset

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"crickpulse/internal/config"
	"crickpulse/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing the date column
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// noResultMarkers are winner-column values that mean the match was abandoned
var noResultMarkers = map[string]bool{
	"":          true,
	"no result": true,
	"noresult":  true,
	"n/a":       true,
	"abandoned": true,
}

// Loader reads the matches CSV into memory. The whole file loads or the
// load fails; there are no partial tables and no retries.
type Loader struct {
	columns config.ColumnConfig
	logger  *slog.Logger
}

// NewLoader creates a loader for the configured column schema
func NewLoader(columns config.ColumnConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		columns: columns,
		logger:  logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load reads the file at path and returns the full table of match
// records. Failures map onto the load error taxonomy: ErrFileNotFound,
// ErrSchemaMismatch, ErrParse.
func (l *Loader) Load(path string) ([]domain.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, notFoundErr(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, parseErr(path, 0, "file is empty")
	}
	if err != nil {
		return nil, parseErr(path, 0, err.Error())
	}

	schema := NewSchema(l.columns)
	if err := schema.Bind(path, header); err != nil {
		return nil, err
	}

	var matches []domain.Match
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(path, row, err.Error())
		}

		match, err := l.parseRow(path, schema, row, record)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	l.logger.Info("matches loaded",
		slog.String("path", path),
		slog.Int("rows", len(matches)))

	return matches, nil
}

// parseRow converts one CSV record into a Match, normalizing the winner
// and deriving season and result type the same way the dashboard's data
// preparation always has: blank winner means no-result, a positive runs
// margin means a runs win, a positive wickets margin means a wickets
// win, and a winner with neither margin is a tie.
func (l *Loader) parseRow(path string, schema *Schema, row int, record []string) (domain.Match, error) {
	var m domain.Match

	m.Team1 = cell(record, schema.team1)
	m.Team2 = cell(record, schema.team2)
	if m.Team1 == "" || m.Team2 == "" {
		return m, parseErr(path, row, "both team columns must be populated")
	}
	m.Venue = cell(record, schema.venue)

	// Date, then season: derived from the date's year when the file has
	// no season column or the cell is blank.
	rawDate := cell(record, schema.date)
	if rawDate != "" {
		date, err := parseDate(rawDate)
		if err != nil {
			return m, parseErr(path, row, "unparseable date "+strconv.Quote(rawDate))
		}
		m.Date = date
	}

	if schema.HasSeason() {
		if raw := cell(record, schema.season); raw != "" {
			season, err := parseSeason(raw)
			if err != nil {
				return m, parseErr(path, row, "unparseable season "+strconv.Quote(raw))
			}
			m.Season = season
		}
	}
	if m.Season == 0 {
		if m.Date.IsZero() {
			return m, parseErr(path, row, "row has neither season nor date")
		}
		m.Season = m.Date.Year()
	}

	winByRuns, err := parseMargin(cell(record, schema.winByRuns))
	if err != nil {
		return m, parseErr(path, row, "unparseable runs margin")
	}
	winByWickets, err := parseMargin(cell(record, schema.winByWickets))
	if err != nil {
		return m, parseErr(path, row, "unparseable wickets margin")
	}

	winner := cell(record, schema.winner)
	switch {
	case noResultMarkers[strings.ToLower(winner)]:
		m.ResultType = domain.ResultTypeNoResult
	case winByRuns > 0:
		m.Winner = winner
		m.ResultType = domain.ResultTypeRuns
		m.WinByRuns = winByRuns
	case winByWickets > 0:
		m.Winner = winner
		m.ResultType = domain.ResultTypeWickets
		m.WinByWickets = winByWickets
	default:
		m.Winner = winner
		m.ResultType = domain.ResultTypeTie
	}

	// Synthetic IDs keep charts stable when the file has none
	if schema.HasMatchID() {
		if raw := cell(record, schema.matchID); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				return m, parseErr(path, row, "unparseable match id "+strconv.Quote(raw))
			}
			m.ID = id
		}
	}
	if m.ID == 0 {
		m.ID = row
	}

	if err := m.Validate(); err != nil {
		return m, parseErr(path, row, err.Error())
	}

	return m, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseSeason accepts plain years and split-season labels like "2007/08"
func parseSeason(raw string) (int, error) {
	if i := strings.IndexAny(raw, "/-"); i > 0 {
		raw = raw[:i]
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

// parseMargin tolerates blank cells and float-formatted integers ("10.0")
func parseMargin(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
