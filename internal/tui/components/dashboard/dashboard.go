// Package dashboard summarises the current day.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/scheduler"
	"github.com/julianstephens/dentaplan/internal/tui/components/calendar"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Data feeds the dashboard.
type Data struct {
	Settings     models.Settings
	Appointments map[models.SlotKey]models.Appointment
	Patients     map[string]models.Patient
	Now          time.Time
	TopN         int
}

// Render draws the dashboard for d.Now.
func Render(d Data) string {
	if d.TopN <= 0 {
		d.TopN = constants.DefaultDashboardTopN
	}
	today := reports.TodaysAppointments(d.Appointments, d.Now)

	var sections []string
	sections = append(sections, titleStyle.Render(d.Now.Format(constants.DisplayHeaderFormat)))

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(fmt.Sprintf("Today\n%d", len(today))),
		statStyle.Render(fmt.Sprintf("Patients\n%d", len(d.Patients))),
		statStyle.Render(fmt.Sprintf("Booked\n%d", len(d.Appointments))),
	)
	sections = append(sections, stats, "")

	sections = append(sections, sectionStyle.Render("Next Patient"))
	if next, ok := reports.NextAppointment(d.Appointments, d.Now); ok {
		sections = append(sections, entryLine(next, d.Patients))
	} else {
		sections = append(sections, mutedStyle.Render("No more appointments today."))
	}
	sections = append(sections, "")

	if d.Settings.HasWorkingDay() {
		sections = append(sections, sectionStyle.Render("Next Free Slot"))
		if k, ok := scheduler.New(d.Settings).NextFree(d.Appointments, d.Now, 0); ok {
			sections = append(sections, fmt.Sprintf("  %s at %s", k.Date, k.Time))
		} else {
			sections = append(sections, mutedStyle.Render("Fully booked."))
		}
		sections = append(sections, "")
	}

	sections = append(sections, sectionStyle.Render(fmt.Sprintf("Today's Appointments (%d)", len(today))))
	if len(today) == 0 {
		sections = append(sections, mutedStyle.Render("Nothing booked today."))
	}
	for _, e := range today {
		sections = append(sections, entryLine(e, d.Patients))
	}
	sections = append(sections, "")

	sections = append(sections, sectionStyle.Render("Top Procedures"))
	summary := reports.ProcedureSummary(d.Appointments)
	if len(summary) == 0 {
		sections = append(sections, mutedStyle.Render("No appointments yet."))
	}
	if len(summary) > d.TopN {
		summary = summary[:d.TopN]
	}
	for i, c := range summary {
		sections = append(sections, fmt.Sprintf("  %d. %-16s %d", i+1, c.Name, c.Count))
	}

	if orphaned := reports.Orphaned(d.Appointments, d.Patients); len(orphaned) > 0 {
		sections = append(sections, "", warningStyle.Render(fmt.Sprintf("⚠ %d appointment(s) have no patient", len(orphaned))))
	}

	return strings.Join(sections, "\n")
}

func entryLine(e reports.Entry, patients map[string]models.Patient) string {
	a := e.Appointment
	return fmt.Sprintf("  %s  %s  %s",
		e.Key.Time,
		reports.PatientName(patients, a.PatientID),
		calendar.ProcedureStyle(a.Procedure).Render(a.ProcedureName()),
	)
}

type Model struct {
	data   Data
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetData(d Data) {
	m.data = d
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(Render(m.data))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
