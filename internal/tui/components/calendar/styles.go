package calendar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dentaplan/internal/constants"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	dayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

var procedureColors = map[string]lipgloss.Color{
	constants.ProcedureFilling:      lipgloss.Color("33"),
	constants.ProcedureCleaning:     lipgloss.Color("42"),
	constants.ProcedureExtraction:   lipgloss.Color("196"),
	constants.ProcedureConsultation: lipgloss.Color("141"),
	constants.ProcedureRootCanal:    lipgloss.Color("208"),
	constants.ProcedureCrown:        lipgloss.Color("220"),
	constants.ProcedureWhitening:    lipgloss.Color("255"),
	constants.ProcedureBraces:       lipgloss.Color("51"),
	constants.ProcedureCustom:       lipgloss.Color("205"),
}

// ProcedureStyle colors text by procedure. Unknown procedures are unstyled.
func ProcedureStyle(procedure string) lipgloss.Style {
	if c, ok := procedureColors[procedure]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}
