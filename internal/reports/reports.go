// Package reports derives dashboard and reporting figures from the
// appointment map. Every function is pure; callers supply the clock.
package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

// Range selects the window used by FilterByDateRange.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange parses a report range name.
func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case RangeWeek, RangeMonth, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want week, month or all)", s)
}

// Entry pairs an appointment with its slot.
type Entry struct {
	Key         models.SlotKey
	Appointment models.Appointment
}

// Count is a labelled tally.
type Count struct {
	Name  string
	Count int
}

// Empty is returned by the max reductions when there is nothing to count.
var Empty = Count{Name: constants.NotAvailableLabel, Count: 0}

// TodaysAppointments returns the appointments dated today, ordered by time.
func TodaysAppointments(appts map[models.SlotKey]models.Appointment, now time.Time) []Entry {
	today := now.Format(constants.DateFormat)
	var out []Entry
	for k, a := range appts {
		if k.Date == today {
			out = append(out, Entry{Key: k, Appointment: a})
		}
	}
	sortEntries(out)
	return out
}

// NextAppointment returns the first of today's appointments at or after now.
func NextAppointment(appts map[models.SlotKey]models.Appointment, now time.Time) (Entry, bool) {
	current := now.Format(constants.TimeFormat)
	for _, e := range TodaysAppointments(appts, now) {
		if e.Key.Time >= current {
			return e, true
		}
	}
	return Entry{}, false
}

// ProcedureSummary counts appointments per effective procedure name, highest
// count first. Equal counts are ordered by name.
func ProcedureSummary(appts map[models.SlotKey]models.Appointment) []Count {
	tally := make(map[string]int)
	for _, a := range appts {
		tally[a.ProcedureName()]++
	}

	out := make([]Count, 0, len(tally))
	for name, n := range tally {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// FilterByDateRange keeps the appointments whose date falls in the week
// (Sunday to Saturday) or calendar month containing now. RangeAll returns a
// copy of the input. Keys with an unparseable date are dropped from the
// bounded ranges.
func FilterByDateRange(appts map[models.SlotKey]models.Appointment, r Range, now time.Time) map[models.SlotKey]models.Appointment {
	out := make(map[models.SlotKey]models.Appointment)
	if r == RangeAll || r == "" {
		for k, a := range appts {
			out[k] = a
		}
		return out
	}

	var start, end time.Time
	switch r {
	case RangeWeek:
		start = schedule.StartOfWeek(now)
		end = start.AddDate(0, 0, 6)
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	}

	for k, a := range appts {
		day, err := k.Day(now.Location())
		if err != nil {
			continue
		}
		if schedule.InRange(day, start, end) {
			out[k] = a
		}
	}
	return out
}

// AppointmentsByDayOfWeek tallies appointments per weekday. The result always
// has seven buckets, Sun through Sat.
func AppointmentsByDayOfWeek(appts map[models.SlotKey]models.Appointment) []Count {
	var counts [7]int
	for k := range appts {
		day, err := k.Day(time.UTC)
		if err != nil {
			continue
		}
		counts[day.Weekday()]++
	}

	out := make([]Count, 7)
	for i, name := range constants.WeekdayShortNames {
		out[i] = Count{Name: name, Count: counts[i]}
	}
	return out
}

// BusiestDay returns the weekday with the most appointments. Ties keep the
// earliest weekday; no appointments yields Empty.
func BusiestDay(appts map[models.SlotKey]models.Appointment) Count {
	return maxCount(AppointmentsByDayOfWeek(appts))
}

// TopProcedure returns the most booked procedure, or Empty.
func TopProcedure(appts map[models.SlotKey]models.Appointment) Count {
	return maxCount(ProcedureSummary(appts))
}

func maxCount(counts []Count) Count {
	best := Empty
	for _, c := range counts {
		if c.Count > best.Count {
			best = c
		}
	}
	return best
}

// CountByDay tallies appointments per YYYY-MM-DD date.
func CountByDay(appts map[models.SlotKey]models.Appointment) map[string]int {
	out := make(map[string]int)
	for k := range appts {
		out[k.Date]++
	}
	return out
}

// ForDay returns the appointments on day, ordered by time.
func ForDay(appts map[models.SlotKey]models.Appointment, day time.Time) []Entry {
	date := day.Format(constants.DateFormat)
	var out []Entry
	for k, a := range appts {
		if k.Date == date {
			out = append(out, Entry{Key: k, Appointment: a})
		}
	}
	sortEntries(out)
	return out
}

// WeekAgenda lists the appointments of the working days in days, ordered by
// day then time.
func WeekAgenda(settings models.Settings, appts map[models.SlotKey]models.Appointment, days []time.Time) []Entry {
	var out []Entry
	for _, day := range days {
		ds, ok := settings.Day(day.Weekday())
		if !ok || !ds.IsWorkingDay {
			continue
		}
		out = append(out, ForDay(appts, day)...)
	}
	return out
}

// PatientName resolves id against patients, falling back to "Unknown Patient".
func PatientName(patients map[string]models.Patient, id string) string {
	if p, ok := patients[id]; ok && id != "" {
		return p.Name
	}
	return constants.UnknownPatientLabel
}

// Orphaned returns the keys of appointments whose patient no longer exists,
// in slot order.
func Orphaned(appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient) []models.SlotKey {
	var out []models.SlotKey
	for k, a := range appts {
		if _, ok := patients[a.PatientID]; !ok || a.PatientID == "" {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// SortedEntries returns every appointment in slot order.
func SortedEntries(appts map[models.SlotKey]models.Appointment) []Entry {
	out := make([]Entry, 0, len(appts))
	for k, a := range appts {
		out = append(out, Entry{Key: k, Appointment: a})
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Compare(entries[j].Key) < 0
	})
}

// SearchByPatient keeps the appointments whose patient name contains query,
// ignoring case. An empty query keeps everything; orphaned appointments only
// survive an empty query.
func SearchByPatient(appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, query string) map[models.SlotKey]models.Appointment {
	out := make(map[models.SlotKey]models.Appointment, len(appts))
	blank := strings.TrimSpace(query) == ""
	for k, a := range appts {
		if blank {
			out[k] = a
			continue
		}
		if p, ok := patients[a.PatientID]; ok && a.PatientID != "" && p.Matches(query) {
			out[k] = a
		}
	}
	return out
}
