package domain

import (
	"fmt"
	"time"
)

// ResultType represents the categorical outcome of a match
type ResultType string

const (
	ResultTypeRuns     ResultType = "runs"
	ResultTypeWickets  ResultType = "wickets"
	ResultTypeTie      ResultType = "tie"
	ResultTypeNoResult ResultType = "no-result"
)

// Valid reports whether rt is one of the known result types
func (rt ResultType) Valid() bool {
	switch rt {
	case ResultTypeRuns, ResultTypeWickets, ResultTypeTie, ResultTypeNoResult:
		return true
	}
	return false
}

// Decided reports whether the match produced a winner by runs or wickets
func (rt ResultType) Decided() bool {
	return rt == ResultTypeRuns || rt == ResultTypeWickets
}

// Match represents one row of the dataset: a single completed or abandoned match
type Match struct {
	ID           int        `json:"id" csv:"match_id"`
	Season       int        `json:"season" csv:"season" validate:"required,min=1900,max=2100"`
	Date         time.Time  `json:"date" csv:"date"`
	Team1        string     `json:"team1" csv:"team1" validate:"required"`
	Team2        string     `json:"team2" csv:"team2" validate:"required"`
	Winner       string     `json:"winner,omitempty" csv:"winner"`
	Venue        string     `json:"venue,omitempty" csv:"venue"`
	ResultType   ResultType `json:"result_type" csv:"result_type"`
	WinByRuns    int        `json:"win_by_runs,omitempty" csv:"win_by_runs"`
	WinByWickets int        `json:"win_by_wickets,omitempty" csv:"win_by_wickets"`
}

// Decided reports whether the match produced a winner by runs or wickets
func (m Match) Decided() bool {
	return m.ResultType.Decided()
}

// HasWinner reports whether the match has a recorded winner
func (m Match) HasWinner() bool {
	return m.Winner != ""
}

// Margin returns the magnitude of victory in the unit implied by the
// result type. It is zero for ties and no-results.
func (m Match) Margin() int {
	switch m.ResultType {
	case ResultTypeRuns:
		return m.WinByRuns
	case ResultTypeWickets:
		return m.WinByWickets
	}
	return 0
}

// Involves reports whether the named team played in this match
func (m Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// Validate checks the record-level invariants: winner must be one of the
// two teams when present, and a win margin is only meaningful for matches
// decided by runs or wickets.
func (m Match) Validate() error {
	if m.Team1 == "" || m.Team2 == "" {
		return fmt.Errorf("match %d: both teams are required", m.ID)
	}
	if !m.ResultType.Valid() {
		return fmt.Errorf("match %d: unknown result type %q", m.ID, m.ResultType)
	}
	if m.Winner != "" && !m.Involves(m.Winner) {
		return fmt.Errorf("match %d: winner %q is neither %q nor %q", m.ID, m.Winner, m.Team1, m.Team2)
	}
	if !m.Decided() && (m.WinByRuns != 0 || m.WinByWickets != 0) {
		return fmt.Errorf("match %d: win margin present on %s result", m.ID, m.ResultType)
	}
	if m.Decided() && m.Winner == "" {
		return fmt.Errorf("match %d: decided match has no winner", m.ID)
	}
	return nil
}
