package reports

import (
	"time"

	"github.com/julianstephens/dentaplan/internal/models"
)

// Report is the figure set shown on the reports screen.
type Report struct {
	Range             Range
	TotalAppointments int
	TotalPatients     int
	Procedures        []Count
	ByDayOfWeek       []Count
	BusiestDay        Count
	TopProcedure      Count
}

// Summary computes the report for r anchored at now.
func Summary(appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, r Range, now time.Time) Report {
	filtered := FilterByDateRange(appts, r, now)
	return Report{
		Range:             r,
		TotalAppointments: len(filtered),
		TotalPatients:     len(patients),
		Procedures:        ProcedureSummary(filtered),
		ByDayOfWeek:       AppointmentsByDayOfWeek(filtered),
		BusiestDay:        BusiestDay(filtered),
		TopProcedure:      TopProcedure(filtered),
	}
}
