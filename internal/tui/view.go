package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dentaplan/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case constants.StateCalendar:
		content = docStyle.Render(m.viewCalendar())
	case constants.StatePatients:
		content = docStyle.Render(m.patientsModel.View())
	case constants.StateReports:
		content = docStyle.Render(m.reportsModel.View())
	case constants.StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case constants.StatePatientForm, constants.StateBookingForm, constants.StateSettingsForm:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)

	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.activeTab() == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.validationWarning != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", warningStyle.Render(m.validationWarning))
	}
	return row
}

// activeTab maps overlay states back to the tab they were opened from.
func (m Model) activeTab() constants.SessionState {
	if m.state > constants.StateSettings {
		return m.previousState
	}
	return m.state
}

func (m Model) viewCalendar() string {
	if m.searching {
		return lipgloss.JoinVertical(lipgloss.Left, m.search.View(), m.calendarModel.View())
	}
	if q := m.calendarModel.Search(); q != "" {
		return lipgloss.JoinVertical(lipgloss.Left, warningStyle.Render("Filtered by: "+q+" (/ to change)"), m.calendarModel.View())
	}
	return m.calendarModel.View()
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("❌ " + m.status)
	}
	return statusStyle.Render("✓ " + m.status)
}

func (m Model) viewConfirmDelete() string {
	prompt := ""
	if m.pending != nil {
		prompt = m.pending.prompt
	}
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
