// Package calendar renders the appointment calendar in its four layouts and
// provides the interactive bubbletea component built on them.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

const nameWidth = 14

// Data is everything a calendar view needs. Appointments should already be
// narrowed by any search.
type Data struct {
	Settings     models.Settings
	Appointments map[models.SlotKey]models.Appointment
	Patients     map[string]models.Patient
	Today        time.Time
}

// Selection marks the focused cell. Slot is an index into the slot grid and
// is ignored by the monthly view.
type Selection struct {
	Date time.Time
	Slot int
}

// Render draws the view for mode around date. sel may be nil.
func Render(d Data, mode schedule.ViewMode, date time.Time, sel *Selection) string {
	header := headerStyle.Render(schedule.FormatDateRange(date, mode))

	var body string
	switch mode {
	case schedule.ViewDaily:
		body = renderDaily(d, date, sel)
	case schedule.ViewMonthly:
		body = renderMonthly(d, date, sel)
	case schedule.ViewMinimal:
		body = renderMinimal(d, date)
	default:
		body = renderWeekly(d, date, sel)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderDaily(d Data, day time.Time, sel *Selection) string {
	ds, ok := d.Settings.Day(day.Weekday())
	if !ok || !ds.IsWorkingDay {
		return closedStyle.Render("Closed")
	}

	slots := schedule.GenerateTimeSlots(d.Settings)
	var lines []string
	for i, label := range slots {
		if !schedule.IsWorkingSlot(d.Settings, day.Weekday(), label) {
			continue
		}
		cell := mutedStyle.Render("available")
		if a, ok := d.Appointments[models.NewSlotKey(day, label)]; ok {
			cell = fmt.Sprintf("%s  %s", reports.PatientName(d.Patients, a.PatientID), ProcedureStyle(a.Procedure).Render(a.ProcedureName()))
			if a.Notes != "" {
				cell += mutedStyle.Render("  " + a.Notes)
			}
		}
		line := timeStyle.Render(label) + cell
		if isSelected(sel, day, i) {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderWeekly(d Data, date time.Time, sel *Selection) string {
	days := schedule.WeekDays(date)
	slots := schedule.GenerateTimeSlots(d.Settings)

	headers := []string{"Time"}
	for _, day := range days {
		h := day.Format(constants.DisplayShortDay)
		if schedule.SameDay(day, d.Today) {
			h = todayStyle.Render(h)
		}
		headers = append(headers, h)
	}

	t := table.New().
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	for i, label := range slots {
		row := []string{label}
		for _, day := range days {
			cell := weeklyCell(d, day, label)
			if isSelected(sel, day, i) {
				cell = selectedStyle.Render(padRight(lipgloss.Width(cell), cell))
			}
			row = append(row, cell)
		}
		t.Row(row...)
	}
	if len(slots) == 0 {
		return mutedStyle.Render("No working hours configured.")
	}
	return t.Render()
}

func weeklyCell(d Data, day time.Time, label string) string {
	if !schedule.IsWorkingSlot(d.Settings, day.Weekday(), label) {
		return closedStyle.Render("·")
	}
	a, ok := d.Appointments[models.NewSlotKey(day, label)]
	if !ok {
		return ""
	}
	name := truncate(reports.PatientName(d.Patients, a.PatientID), nameWidth)
	return ProcedureStyle(a.Procedure).Render(name)
}

func renderMonthly(d Data, date time.Time, sel *Selection) string {
	counts := reports.CountByDay(d.Appointments)

	t := table.New().
		Headers(constants.WeekdayShortNames[:]...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })

	days := schedule.MonthGridDays(date)
	for w := 0; w+7 <= len(days); w += 7 {
		row := make([]string, 7)
		for i, day := range days[w : w+7] {
			row[i] = monthlyCell(d, day, date.Month(), counts[day.Format(constants.DateFormat)], sel)
		}
		t.Row(row...)
	}
	return t.Render()
}

func monthlyCell(d Data, day time.Time, month time.Month, count int, sel *Selection) string {
	label := fmt.Sprintf("%2d", day.Day())
	if count > 0 {
		label += " (" + strconv.Itoa(count) + ")"
	}

	switch {
	case sel != nil && schedule.SameDay(sel.Date, day):
		return selectedStyle.Render(label)
	case schedule.SameDay(day, d.Today):
		return todayStyle.Render(label)
	case day.Month() != month:
		return closedStyle.Render(label)
	}
	if ds, ok := d.Settings.Day(day.Weekday()); !ok || !ds.IsWorkingDay {
		return mutedStyle.Render(label)
	}
	return label
}

func renderMinimal(d Data, date time.Time) string {
	entries := reports.WeekAgenda(d.Settings, d.Appointments, schedule.WeekDays(date))
	if len(entries) == 0 {
		return mutedStyle.Render("No appointments this week.")
	}

	var lines []string
	current := ""
	for _, e := range entries {
		if e.Key.Date != current {
			current = e.Key.Date
			if day, err := e.Key.Day(date.Location()); err == nil {
				if len(lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, dayHeaderStyle.Render(day.Format(constants.DisplayHeaderFormat)))
			}
		}
		a := e.Appointment
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			timeStyle.Render(e.Key.Time),
			reports.PatientName(d.Patients, a.PatientID),
			ProcedureStyle(a.Procedure).Render(a.ProcedureName()),
		))
	}
	return strings.Join(lines, "\n")
}

func isSelected(sel *Selection, day time.Time, slot int) bool {
	return sel != nil && sel.Slot == slot && schedule.SameDay(sel.Date, day)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// padRight keeps a highlighted empty cell visible.
func padRight(width int, s string) string {
	if width >= nameWidth {
		return s
	}
	return s + strings.Repeat(" ", nameWidth-width)
}
