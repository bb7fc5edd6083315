// Package stats computes the grouped summaries behind every dashboard
// panel. All functions are pure: they take the loaded table (plus an
// optional filter) and return freshly-allocated results with
// deterministic ordering, so repeated calls over the same table are
// identical.
package stats

import (
	"sort"

	"crickpulse/pkg/contracts/domain"
)

// Summary holds the dashboard's metric cards
type Summary struct {
	TotalMatches int    `json:"total_matches"`
	NoResults    int    `json:"no_results"`
	Venues       int    `json:"venues"`
	TopTeam      string `json:"top_team,omitempty"`
	TopTeamWins  int    `json:"top_team_wins"`
}

// SeasonActivity is one point of the matches-per-season series
type SeasonActivity struct {
	Season  int `json:"season"`
	Matches int `json:"matches"`
}

// TeamWins is one bar of the wins leaderboard
type TeamWins struct {
	Team string `json:"team"`
	Wins int    `json:"wins"`
}

// WinMatrix is the team-by-season win count heatmap. Rows follow Teams,
// columns follow Seasons, and every cell is present even when zero so
// season-over-season charts stay aligned.
type WinMatrix struct {
	Teams   []string `json:"teams"`
	Seasons []int    `json:"seasons"`
	Wins    [][]int  `json:"wins"`
}

// MarginPoint is one dot of the runs-versus-wickets scatter. Only
// decided matches produce points.
type MarginPoint struct {
	MatchID    int               `json:"match_id"`
	Season     int               `json:"season"`
	Team1      string            `json:"team1"`
	Team2      string            `json:"team2"`
	Winner     string            `json:"winner"`
	ResultType domain.ResultType `json:"result_type"`
	Runs       int               `json:"runs"`
	Wickets    int               `json:"wickets"`
}

// MarginStats summarizes win margins for one result type
type MarginStats struct {
	ResultType domain.ResultType `json:"result_type"`
	Count      int               `json:"count"`
	Min        int               `json:"min"`
	Max        int               `json:"max"`
	Mean       float64           `json:"mean"`
}

// ResultTypeCount is one slice of the result-type distribution
type ResultTypeCount struct {
	ResultType domain.ResultType `json:"result_type"`
	Count      int               `json:"count"`
}

// Summarize computes the metric cards: total matches, abandoned matches,
// distinct venues, and the team converting the most matches into wins.
func Summarize(matches []domain.Match) Summary {
	s := Summary{TotalMatches: len(matches)}

	venues := make(map[string]struct{})
	wins := make(map[string]int)

	for _, m := range matches {
		if m.ResultType == domain.ResultTypeNoResult {
			s.NoResults++
		}
		if m.Venue != "" {
			venues[m.Venue] = struct{}{}
		}
		if m.Decided() {
			wins[m.Winner]++
		}
	}
	s.Venues = len(venues)

	// Ties on win count resolve alphabetically so the card is stable
	for team, count := range wins {
		if count > s.TopTeamWins || (count == s.TopTeamWins && (s.TopTeam == "" || team < s.TopTeam)) {
			s.TopTeam = team
			s.TopTeamWins = count
		}
	}

	return s
}

// MatchesPerSeason counts matches per season, ordered by season
func MatchesPerSeason(matches []domain.Match) []SeasonActivity {
	counts := make(map[int]int)
	for _, m := range matches {
		counts[m.Season]++
	}

	seasons := sortedSeasons(counts)
	series := make([]SeasonActivity, 0, len(seasons))
	for _, season := range seasons {
		series = append(series, SeasonActivity{Season: season, Matches: counts[season]})
	}
	return series
}

// WinsByTeam returns the top teams by wins across the given matches,
// descending by wins with alphabetical tie-break. topN <= 0 returns all
// teams. No-result and tied matches contribute no wins.
func WinsByTeam(matches []domain.Match, topN int) []TeamWins {
	wins := make(map[string]int)
	for _, m := range matches {
		if m.Decided() {
			wins[m.Winner]++
		}
	}

	board := make([]TeamWins, 0, len(wins))
	for team, count := range wins {
		board = append(board, TeamWins{Team: team, Wins: count})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Wins != board[j].Wins {
			return board[i].Wins > board[j].Wins
		}
		return board[i].Team < board[j].Team
	})

	if topN > 0 && len(board) > topN {
		board = board[:topN]
	}
	return board
}

// WinsForTeamSeason counts wins for one team in one season
func WinsForTeamSeason(matches []domain.Match, team string, season int) int {
	wins := 0
	for _, m := range matches {
		if m.Season == season && m.Decided() && m.Winner == team {
			wins++
		}
	}
	return wins
}

// MatchesPlayed counts appearances of a team in a season
func MatchesPlayed(matches []domain.Match, team string, season int) int {
	played := 0
	for _, m := range matches {
		if m.Season == season && m.Involves(team) {
			played++
		}
	}
	return played
}

// ComputeWinMatrix builds the team-by-season win heatmap. Every team
// that appears in the filtered matches gets a row covering every season
// present, zero-filled where the team recorded no wins (or did not play).
func ComputeWinMatrix(matches []domain.Match) WinMatrix {
	seasonSet := make(map[int]int)
	teamSet := make(map[string]struct{})
	type key struct {
		team   string
		season int
	}
	wins := make(map[key]int)

	for _, m := range matches {
		seasonSet[m.Season]++
		teamSet[m.Team1] = struct{}{}
		teamSet[m.Team2] = struct{}{}
		if m.Decided() {
			wins[key{m.Winner, m.Season}]++
		}
	}

	matrix := WinMatrix{
		Teams:   sortedTeams(teamSet),
		Seasons: sortedSeasons(seasonSet),
	}

	matrix.Wins = make([][]int, len(matrix.Teams))
	for i, team := range matrix.Teams {
		row := make([]int, len(matrix.Seasons))
		for j, season := range matrix.Seasons {
			row[j] = wins[key{team, season}]
		}
		matrix.Wins[i] = row
	}

	return matrix
}

// MarginPoints returns one point per decided match. Ties and no-results
// never appear here; they are only visible in the result-type counts.
func MarginPoints(matches []domain.Match) []MarginPoint {
	points := make([]MarginPoint, 0, len(matches))
	for _, m := range matches {
		if !m.Decided() {
			continue
		}
		points = append(points, MarginPoint{
			MatchID:    m.ID,
			Season:     m.Season,
			Team1:      m.Team1,
			Team2:      m.Team2,
			Winner:     m.Winner,
			ResultType: m.ResultType,
			Runs:       m.WinByRuns,
			Wickets:    m.WinByWickets,
		})
	}
	return points
}

// MarginDistribution summarizes win margins per decided result type
func MarginDistribution(matches []domain.Match) []MarginStats {
	stats := make(map[domain.ResultType]*MarginStats)

	for _, m := range matches {
		if !m.Decided() {
			continue
		}
		margin := m.Margin()

		s, ok := stats[m.ResultType]
		if !ok {
			s = &MarginStats{ResultType: m.ResultType, Min: margin, Max: margin}
			stats[m.ResultType] = s
		}
		s.Count++
		if margin < s.Min {
			s.Min = margin
		}
		if margin > s.Max {
			s.Max = margin
		}
		s.Mean += float64(margin)
	}

	out := make([]MarginStats, 0, len(stats))
	for _, rt := range []domain.ResultType{domain.ResultTypeRuns, domain.ResultTypeWickets} {
		if s, ok := stats[rt]; ok {
			s.Mean /= float64(s.Count)
			out = append(out, *s)
		}
	}
	return out
}

// CountResultTypes counts every record per result type, abandoned
// matches included, in a fixed enum order.
func CountResultTypes(matches []domain.Match) []ResultTypeCount {
	counts := make(map[domain.ResultType]int)
	for _, m := range matches {
		counts[m.ResultType]++
	}

	order := []domain.ResultType{
		domain.ResultTypeRuns,
		domain.ResultTypeWickets,
		domain.ResultTypeTie,
		domain.ResultTypeNoResult,
	}

	out := make([]ResultTypeCount, 0, len(order))
	for _, rt := range order {
		if counts[rt] > 0 {
			out = append(out, ResultTypeCount{ResultType: rt, Count: counts[rt]})
		}
	}
	return out
}

// Seasons returns the distinct seasons in ascending order
func Seasons(matches []domain.Match) []int {
	set := make(map[int]int)
	for _, m := range matches {
		set[m.Season]++
	}
	return sortedSeasons(set)
}

// Teams returns the distinct team names in alphabetical order, pooled
// from both sides of every match.
func Teams(matches []domain.Match) []string {
	set := make(map[string]struct{})
	for _, m := range matches {
		set[m.Team1] = struct{}{}
		set[m.Team2] = struct{}{}
	}
	return sortedTeams(set)
}

// Venues returns the distinct venues in alphabetical order
func Venues(matches []domain.Match) []string {
	set := make(map[string]struct{})
	for _, m := range matches {
		if m.Venue != "" {
			set[m.Venue] = struct{}{}
		}
	}
	return sortedTeams(set)
}

func sortedSeasons(set map[int]int) []int {
	seasons := make([]int, 0, len(set))
	for season := range set {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

func sortedTeams(set map[string]struct{}) []string {
	teams := make([]string, 0, len(set))
	for team := range set {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}
