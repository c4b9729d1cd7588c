package interpreter

import (
	"strings"
	"time"

	"github.com/iliyamo/eventscout/internal/model"
)

// PhraseRange recognizes literal date phrases in a query and maps each to
// a concrete window computed from now.  It returns nil when no phrase
// matches; the cascade then applies its default lookahead.
//
// "this weekend" is checked before the week phrases because it contains
// "this week" as a substring.
func PhraseRange(query string, now time.Time) *model.DateRange {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "this weekend"):
		start, end := weekendRange(now)
		return &model.DateRange{Start: start, End: end}
	case strings.Contains(q, "next week"):
		start := midnight(now).AddDate(0, 0, daysUntil(now, time.Monday))
		return &model.DateRange{Start: start, End: start.AddDate(0, 0, 7)}
	case strings.Contains(q, "this week"):
		return &model.DateRange{Start: now, End: midnight(now).AddDate(0, 0, daysUntil(now, time.Monday))}
	case strings.Contains(q, "next month"):
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		return &model.DateRange{Start: first, End: first.AddDate(0, 1, 0)}
	}
	return nil
}

// weekendRange returns [Friday 00:00, Monday 00:00) of the relevant
// weekend.  When now already falls on Friday through Sunday the range
// starts today, so a Saturday query still sees tonight's shows; it rolls
// to the upcoming Friday only on Monday through Thursday.
func weekendRange(now time.Time) (time.Time, time.Time) {
	start := midnight(now)
	switch now.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		// already inside the weekend
	default:
		start = start.AddDate(0, 0, daysUntil(now, time.Friday))
	}
	end := midnight(start).AddDate(0, 0, daysUntil(start, time.Monday))
	return start, end
}

// daysUntil returns the positive number of days from t to the next
// occurrence of wd (1..7, never 0).
func daysUntil(t time.Time, wd time.Weekday) int {
	d := (int(wd) - int(t.Weekday()) + 7) % 7
	if d == 0 {
		d = 7
	}
	return d
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
