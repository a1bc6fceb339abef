// Package reports renders appointment statistics.
package reports

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
)

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// Render draws a report summary.
func Render(r reports.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Report: %s", rangeTitle(r.Range))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total appointments: %d\n", r.TotalAppointments)
	fmt.Fprintf(&b, "Total patients:     %d\n", r.TotalPatients)
	fmt.Fprintf(&b, "Busiest day:        %s (%d)\n", r.BusiestDay.Name, r.BusiestDay.Count)
	fmt.Fprintf(&b, "Top procedure:      %s (%d)\n\n", r.TopProcedure.Name, r.TopProcedure.Count)

	b.WriteString(sectionStyle.Render("Procedures"))
	b.WriteString("\n")
	if len(r.Procedures) == 0 {
		b.WriteString(mutedStyle.Render("No appointments in range."))
		b.WriteString("\n")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Procedure", "Count", "Share").
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
		for _, c := range r.Procedures {
			t.Row(c.Name, fmt.Sprintf("%d", c.Count), share(c.Count, r.TotalAppointments))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("By Day of Week"))
	b.WriteString("\n")
	b.WriteString(Bars(r.ByDayOfWeek))

	return b.String()
}

// Bars draws one horizontal bar per count, scaled to the largest.
func Bars(counts []reports.Count) string {
	peak := 0
	for _, c := range counts {
		if c.Count > peak {
			peak = c.Count
		}
	}

	var b strings.Builder
	for _, c := range counts {
		n := 0
		if peak > 0 {
			n = c.Count * barWidth / peak
		}
		if c.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%-4s %s %d\n", c.Name, barStyle.Render(strings.Repeat("█", n)), c.Count)
	}
	return b.String()
}

func share(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(n)*100/float64(total))
}

func rangeTitle(r reports.Range) string {
	switch r {
	case reports.RangeWeek:
		return "This Week"
	case reports.RangeMonth:
		return "This Month"
	}
	return "All Time"
}

// Model shows a report and cycles its range with "r".
type Model struct {
	appts    map[models.SlotKey]models.Appointment
	patients map[string]models.Patient
	now      time.Time
	rng      reports.Range
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{rng: reports.RangeWeek, width: width, height: height}
}

func (m *Model) SetData(appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, now time.Time) {
	m.appts = appts
	m.patients = patients
	m.now = now
}

func (m Model) Range() reports.Range { return m.rng }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "r" {
		switch m.rng {
		case reports.RangeWeek:
			m.rng = reports.RangeMonth
		case reports.RangeMonth:
			m.rng = reports.RangeAll
		default:
			m.rng = reports.RangeWeek
		}
	}
	return m, nil
}

func (m Model) View() string {
	out := Render(reports.Summary(m.appts, m.patients, m.rng, m.now))
	out += "\n" + mutedStyle.Render("r: change range")
	return lipgloss.NewStyle().MaxWidth(m.width).MaxHeight(m.height).Render(out)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
