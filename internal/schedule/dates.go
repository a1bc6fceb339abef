package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
)

// ViewMode selects how the calendar is laid out.
type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
	ViewMinimal ViewMode = "minimal"
)

// ViewModes lists the modes in the order the calendar cycles through them.
var ViewModes = []ViewMode{ViewDaily, ViewWeekly, ViewMonthly, ViewMinimal}

// ParseViewMode parses a view mode name, case-insensitively.
func ParseViewMode(s string) (ViewMode, error) {
	m := ViewMode(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ViewModes {
		if v == m {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view mode %q (want daily, weekly, monthly or minimal)", s)
}

// Next returns the mode after m, wrapping around.
func (m ViewMode) Next() ViewMode {
	for i, v := range ViewModes {
		if v == m {
			return ViewModes[(i+1)%len(ViewModes)]
		}
	}
	return ViewWeekly
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// InRange reports whether day lies within [start, end], compared by date.
func InRange(day, start, end time.Time) bool {
	d := StartOfDay(day)
	return !d.Before(StartOfDay(start)) && !d.After(StartOfDay(end))
}

// StartOfWeek returns the Sunday on or before date.
func StartOfWeek(date time.Time) time.Time {
	d := StartOfDay(date)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekDays returns the seven dates, Sunday through Saturday, of the week
// containing date.
func WeekDays(date time.Time) []time.Time {
	start := StartOfWeek(date)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthGridDays returns every date from the Sunday on or before the first of
// date's month through the Saturday on or after its last day.
func MonthGridDays(date time.Time) []time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)
	start := StartOfWeek(first)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDateRange renders the calendar header for date in mode. Weekly and
// minimal views collapse the shared month and year of the week.
func FormatDateRange(date time.Time, mode ViewMode) string {
	switch mode {
	case ViewDaily:
		return date.Format(constants.DisplayDayFormat)
	case ViewMonthly:
		return date.Format(constants.DisplayMonthFormat)
	}

	days := WeekDays(date)
	start, end := days[0], days[len(days)-1]
	switch {
	case start.Year() != end.Year():
		return fmt.Sprintf("%s - %s", start.Format(constants.DisplayDayFormat), end.Format(constants.DisplayDayFormat))
	case start.Month() != end.Month():
		return fmt.Sprintf("%s - %s", start.Format("January 2"), end.Format(constants.DisplayDayFormat))
	default:
		return fmt.Sprintf("%s %d - %d, %d", start.Format("January"), start.Day(), end.Day(), end.Year())
	}
}

// Step moves date by delta units of mode: days, weeks or months.
func Step(date time.Time, mode ViewMode, delta int) time.Time {
	switch mode {
	case ViewDaily:
		return date.AddDate(0, 0, delta)
	case ViewMonthly:
		// Anchor on the first so that Jan 31 + 1 month stays in February.
		first := time.Date(date.Year(), date.Month(), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
		return first.AddDate(0, delta, 0)
	default:
		return date.AddDate(0, 0, 7*delta)
	}
}
