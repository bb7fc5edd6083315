package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crickpulse/pkg/contracts/domain"
)

func day(season, month, d int) time.Time {
	return time.Date(season, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

// threeMatchSeason mirrors the smallest interesting dataset: one runs
// win each way plus an abandoned match.
func threeMatchSeason() []domain.Match {
	return []domain.Match{
		{ID: 1, Season: 2020, Date: day(2020, 4, 1), Team1: "TeamA", Team2: "TeamB", Winner: "TeamA", Venue: "Garden", ResultType: domain.ResultTypeRuns, WinByRuns: 5},
		{ID: 2, Season: 2020, Date: day(2020, 4, 2), Team1: "TeamA", Team2: "TeamB", Winner: "TeamB", Venue: "Garden", ResultType: domain.ResultTypeWickets, WinByWickets: 3},
		{ID: 3, Season: 2020, Date: day(2020, 4, 3), Team1: "TeamA", Team2: "TeamB", Venue: "Oval", ResultType: domain.ResultTypeNoResult},
	}
}

func multiSeason() []domain.Match {
	return append(threeMatchSeason(),
		domain.Match{ID: 4, Season: 2021, Date: day(2021, 4, 10), Team1: "TeamA", Team2: "TeamC", Winner: "TeamA", Venue: "Garden", ResultType: domain.ResultTypeRuns, WinByRuns: 20},
		domain.Match{ID: 5, Season: 2021, Date: day(2021, 4, 11), Team1: "TeamB", Team2: "TeamC", Winner: "TeamC", Venue: "Oval", ResultType: domain.ResultTypeWickets, WinByWickets: 7},
		domain.Match{ID: 6, Season: 2021, Date: day(2021, 4, 12), Team1: "TeamA", Team2: "TeamB", Winner: "TeamA", Venue: "Garden", ResultType: domain.ResultTypeTie},
	)
}

func TestSummarize(t *testing.T) {
	s := Summarize(threeMatchSeason())

	assert.Equal(t, 3, s.TotalMatches)
	assert.Equal(t, 1, s.NoResults)
	assert.Equal(t, 2, s.Venues)
	// TeamA and TeamB have one win each; the tie resolves alphabetically
	assert.Equal(t, "TeamA", s.TopTeam)
	assert.Equal(t, 1, s.TopTeamWins)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalMatches)
	assert.Zero(t, s.NoResults)
	assert.Zero(t, s.Venues)
	assert.Empty(t, s.TopTeam)
}

func TestMatchesPerSeason(t *testing.T) {
	series := MatchesPerSeason(multiSeason())

	require.Len(t, series, 2)
	assert.Equal(t, SeasonActivity{Season: 2020, Matches: 3}, series[0])
	assert.Equal(t, SeasonActivity{Season: 2021, Matches: 3}, series[1])
}

func TestWinsByTeam(t *testing.T) {
	board := WinsByTeam(multiSeason(), 0)

	// TeamA: runs win in 2020 and 2021 (the 2021 tie does not count)
	require.Len(t, board, 3)
	assert.Equal(t, TeamWins{Team: "TeamA", Wins: 2}, board[0])
	// One win each, alphabetical tie-break
	assert.Equal(t, TeamWins{Team: "TeamB", Wins: 1}, board[1])
	assert.Equal(t, TeamWins{Team: "TeamC", Wins: 1}, board[2])
}

func TestWinsByTeam_TopN(t *testing.T) {
	board := WinsByTeam(multiSeason(), 1)

	require.Len(t, board, 1)
	assert.Equal(t, "TeamA", board[0].Team)
}

func TestWinsForTeamSeason(t *testing.T) {
	matches := threeMatchSeason()

	assert.Equal(t, 1, WinsForTeamSeason(matches, "TeamA", 2020))
	assert.Equal(t, 1, WinsForTeamSeason(matches, "TeamB", 2020))
	assert.Equal(t, 0, WinsForTeamSeason(matches, "TeamA", 2021))
	assert.Equal(t, 0, WinsForTeamSeason(matches, "TeamC", 2020))
}

func TestMatchesPlayed(t *testing.T) {
	matches := multiSeason()

	assert.Equal(t, 3, MatchesPlayed(matches, "TeamA", 2020))
	assert.Equal(t, 2, MatchesPlayed(matches, "TeamC", 2021))
	assert.Equal(t, 0, MatchesPlayed(matches, "TeamC", 2020))
}

func TestComputeWinMatrix(t *testing.T) {
	m := ComputeWinMatrix(multiSeason())

	assert.Equal(t, []string{"TeamA", "TeamB", "TeamC"}, m.Teams)
	assert.Equal(t, []int{2020, 2021}, m.Seasons)
	require.Len(t, m.Wins, 3)

	// Zero-filled: TeamC did not play in 2020 but still has a cell
	assert.Equal(t, []int{1, 1}, m.Wins[0]) // TeamA
	assert.Equal(t, []int{1, 0}, m.Wins[1]) // TeamB
	assert.Equal(t, []int{0, 1}, m.Wins[2]) // TeamC
}

func TestComputeWinMatrix_Empty(t *testing.T) {
	m := ComputeWinMatrix(nil)

	assert.Empty(t, m.Teams)
	assert.Empty(t, m.Seasons)
	assert.Empty(t, m.Wins)
}

func TestMarginPoints(t *testing.T) {
	points := MarginPoints(multiSeason())

	// The tie and the no-result never appear in the margin scatter
	require.Len(t, points, 4)
	for _, p := range points {
		assert.True(t, p.ResultType.Decided())
		assert.NotEmpty(t, p.Winner)
	}
}

func TestMarginDistribution(t *testing.T) {
	dist := MarginDistribution(multiSeason())

	require.Len(t, dist, 2)

	runs := dist[0]
	assert.Equal(t, domain.ResultTypeRuns, runs.ResultType)
	assert.Equal(t, 2, runs.Count)
	assert.Equal(t, 5, runs.Min)
	assert.Equal(t, 20, runs.Max)
	assert.InDelta(t, 12.5, runs.Mean, 1e-9)

	wickets := dist[1]
	assert.Equal(t, domain.ResultTypeWickets, wickets.ResultType)
	assert.Equal(t, 2, wickets.Count)
	assert.Equal(t, 3, wickets.Min)
	assert.Equal(t, 7, wickets.Max)
	assert.InDelta(t, 5.0, wickets.Mean, 1e-9)
}

func TestCountResultTypes(t *testing.T) {
	counts := CountResultTypes(threeMatchSeason())

	// Fixed enum order, zero-count types omitted
	require.Len(t, counts, 3)
	assert.Equal(t, ResultTypeCount{ResultType: domain.ResultTypeRuns, Count: 1}, counts[0])
	assert.Equal(t, ResultTypeCount{ResultType: domain.ResultTypeWickets, Count: 1}, counts[1])
	assert.Equal(t, ResultTypeCount{ResultType: domain.ResultTypeNoResult, Count: 1}, counts[2])
}

func TestSeasonsTeamsVenues(t *testing.T) {
	matches := multiSeason()

	assert.Equal(t, []int{2020, 2021}, Seasons(matches))
	assert.Equal(t, []string{"TeamA", "TeamB", "TeamC"}, Teams(matches))
	assert.Equal(t, []string{"Garden", "Oval"}, Venues(matches))
}

func TestFilter_Apply(t *testing.T) {
	matches := multiSeason()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"zero filter keeps everything", Filter{}, 6},
		{"season filter", Filter{Seasons: []int{2021}}, 3},
		{"team filter matches either side", Filter{Teams: []string{"TeamC"}}, 2},
		{"date range", Filter{From: day(2021, 4, 11), To: day(2021, 4, 12)}, 2},
		{"combined", Filter{Seasons: []int{2020}, Teams: []string{"TeamC"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(matches, tt.filter)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFilter_Apply_DoesNotMutate(t *testing.T) {
	matches := multiSeason()
	before := len(matches)

	_ = Apply(matches, Filter{Seasons: []int{2020}})

	assert.Len(t, matches, before)
}
