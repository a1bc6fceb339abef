// Package export renders a week of appointments as a plain-text schedule.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

// WeeklySchedule renders the schedule for weekDays. Only working days are
// listed, and only appointments on a grid slot inside that day's hours.
func WeeklySchedule(settings models.Settings, appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, weekDays []time.Time) string {
	var b strings.Builder
	if len(weekDays) == 0 {
		return b.String()
	}

	b.WriteString(constants.ExportTitlePrefix)
	b.WriteString(schedule.FormatDateRange(weekDays[0], schedule.ViewWeekly))
	b.WriteString("\n\n")

	slots := schedule.GenerateTimeSlots(settings)
	found := false
	for _, day := range weekDays {
		ds, ok := settings.Day(day.Weekday())
		if !ok || !ds.IsWorkingDay {
			continue
		}

		var lines []string
		for _, label := range slots {
			if !schedule.IsWorkingSlot(settings, day.Weekday(), label) {
				continue
			}
			a, ok := appts[models.NewSlotKey(day, label)]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s - %s - %s", label, reports.PatientName(patients, a.PatientID), procedureLabel(a)))
		}
		if len(lines) == 0 {
			continue
		}

		found = true
		fmt.Fprintf(&b, "--- %s ---\n", day.Format(constants.DisplayHeaderFormat))
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if !found {
		b.WriteString(constants.ExportEmptyWeek)
	}
	return b.String()
}

// Custom appointments without a name print as N/A here, unlike the
// dashboards which fall back to "Custom".
func procedureLabel(a models.Appointment) string {
	name := a.Procedure
	if a.Procedure == constants.ProcedureCustom {
		name = strings.TrimSpace(a.CustomProcedureName)
	}
	if name == "" {
		return constants.NotAvailableLabel
	}
	return name
}

// FileName returns the download name for the week starting at weekStart.
func FileName(weekStart time.Time) string {
	return constants.ExportFilePrefix + weekStart.Format(constants.DateFormat) + constants.ExportFileSuffix
}

// WriteFile renders the week and writes it into dir, returning the path.
func WriteFile(dir string, settings models.Settings, appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, weekDays []time.Time) (string, error) {
	if len(weekDays) == 0 {
		return "", fmt.Errorf("no days to export")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(weekDays[0]))
	content := WeeklySchedule(settings, appts, patients, weekDays)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write schedule: %w", err)
	}
	return path, nil
}
