package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"crickpulse/internal/config"
	apierrors "crickpulse/internal/errors"
	"crickpulse/internal/stats"
)

var validate = validator.New()

// filterQuery carries the dashboard filter query parameters before they
// are converted into a stats.Filter. Every field is optional.
type filterQuery struct {
	Seasons []int     `validate:"omitempty,dive,min=1800,max=2200"`
	Teams   []string  `validate:"omitempty,dive,min=1,max=100"`
	From    time.Time `validate:"-"`
	To      time.Time `validate:"-"`
	Limit   int       `validate:"omitempty,min=1,max=100"`
}

const queryDateLayout = "2006-01-02"

// bindFilter parses the filter query parameters:
//
//	seasons=2019,2020     comma-separated season years
//	teams=TeamA,TeamB     comma-separated team names, either side counts
//	from=2020-01-01       inclusive lower date bound
//	to=2020-12-31         inclusive upper date bound
//	limit=10              leaderboard size, 1..100
func bindFilter(r *http.Request) (stats.Filter, int, error) {
	q := r.URL.Query()
	fq := filterQuery{Limit: config.DefaultTopTeams}

	if raw := q.Get("seasons"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			season, err := strconv.Atoi(part)
			if err != nil {
				return stats.Filter{}, 0, apierrors.ErrValidation("seasons", fmt.Sprintf("invalid season %q, expected a year", part))
			}
			fq.Seasons = append(fq.Seasons, season)
		}
	}

	if raw := q.Get("teams"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				fq.Teams = append(fq.Teams, part)
			}
		}
	}

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return stats.Filter{}, 0, apierrors.ErrValidation("from", "invalid date, expected YYYY-MM-DD")
		}
		fq.From = t
	}

	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return stats.Filter{}, 0, apierrors.ErrValidation("to", "invalid date, expected YYYY-MM-DD")
		}
		fq.To = t
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return stats.Filter{}, 0, apierrors.ErrValidation("limit", fmt.Sprintf("limit must be a number between 1 and %d", config.MaxTopTeams))
		}
		fq.Limit = limit
	}

	if err := validate.Struct(fq); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field := strings.ToLower(errs[0].Field())
			return stats.Filter{}, 0, apierrors.ErrValidation(field, fmt.Sprintf("value fails constraint %q", errs[0].Tag()))
		}
		return stats.Filter{}, 0, apierrors.ErrValidation("query", err.Error())
	}

	if !fq.From.IsZero() && !fq.To.IsZero() && fq.To.Before(fq.From) {
		return stats.Filter{}, 0, apierrors.ErrValidation("to", "date range is inverted, 'to' precedes 'from'")
	}

	return stats.Filter{
		Seasons: fq.Seasons,
		Teams:   fq.Teams,
		From:    fq.From,
		To:      fq.To,
	}, fq.Limit, nil
}
