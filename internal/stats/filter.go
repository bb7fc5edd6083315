package stats

import (
	"time"

	"crickpulse/pkg/contracts/domain"
)

// Filter narrows the table before aggregation. Zero values mean "no
// constraint": an empty season list keeps every season, an empty team
// list keeps every team, zero times keep the full date range. A team
// filter keeps matches where the team appears on either side.
type Filter struct {
	Seasons []int     `json:"seasons,omitempty"`
	Teams   []string  `json:"teams,omitempty"`
	From    time.Time `json:"from,omitempty"`
	To      time.Time `json:"to,omitempty"`
}

// IsZero reports whether the filter keeps everything
func (f Filter) IsZero() bool {
	return len(f.Seasons) == 0 && len(f.Teams) == 0 && f.From.IsZero() && f.To.IsZero()
}

// Keep reports whether a match passes the filter
func (f Filter) Keep(m domain.Match) bool {
	if len(f.Seasons) > 0 && !containsInt(f.Seasons, m.Season) {
		return false
	}
	if len(f.Teams) > 0 {
		involved := false
		for _, team := range f.Teams {
			if m.Involves(team) {
				involved = true
				break
			}
		}
		if !involved {
			return false
		}
	}
	if !f.From.IsZero() && m.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && m.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the matches passing the filter. The input slice is never
// mutated; an empty result is a valid outcome, not an error.
func Apply(matches []domain.Match, f Filter) []domain.Match {
	if f.IsZero() {
		return matches
	}

	filtered := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if f.Keep(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
