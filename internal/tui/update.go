package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/tui/components/calendar"
	"github.com/julianstephens/dentaplan/internal/tui/components/patients"
	"github.com/julianstephens/dentaplan/internal/tui/components/settings"
)

const tabCount = int(constants.StateSettings) + 1

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case calendar.BookSlotMsg:
		cmd := m.openBookingForm(msg.Key, "")
		return m, cmd
	case calendar.EditAppointmentMsg:
		cmd := m.openBookingForm(msg.Key, "")
		return m, cmd
	case calendar.CancelAppointmentMsg:
		m.askCancel(msg.Key)
		return m, nil
	case patients.AddPatientMsg:
		cmd := m.openPatientForm(models.Patient{})
		return m, cmd
	case patients.EditPatientMsg:
		cmd := m.openPatientForm(msg.Patient)
		return m, cmd
	case patients.DeletePatientMsg:
		m.askDeletePatient(msg.ID)
		return m, nil
	case patients.BookPatientMsg:
		cmd := m.bookForPatient(msg.ID)
		return m, cmd
	case settings.EditSettingsMsg:
		cmd := m.openSettingsForm()
		return m, cmd
	}

	switch m.state {
	case constants.StatePatientForm, constants.StateBookingForm, constants.StateSettingsForm:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirm(msg)
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateActive(msg)
	}

	if m.state == constants.StatePatients && m.patientsModel.Filtering() {
		return m.updateActive(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
		return m, nil
	case m.state == constants.StateCalendar && key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.calendarModel.Search())
		cmd := m.search.Focus()
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m *Model) switchTab(delta int) {
	m.state = constants.SessionState((int(m.state) + delta + tabCount) % tabCount)
	m.status = ""
	// the dashboard and reports track the clock
	m.refresh()
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case constants.StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	case constants.StatePatients:
		m.patientsModel, cmd = m.patientsModel.Update(msg)
	case constants.StateReports:
		m.reportsModel, cmd = m.reportsModel.Update(msg)
	case constants.StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		m.closeForm()
		m.setStatus("Cancelled")
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		m.setStatus("Cancelled")
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitForm() {
	switch m.state {
	case constants.StatePatientForm:
		m.submitPatient()
	case constants.StateBookingForm:
		m.submitBooking()
	case constants.StateSettingsForm:
		m.submitSettings()
	}
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.calendarModel.SetSearch(m.search.Value())
			m.searching = false
			m.search.Blur()
			return m, nil
		case tea.KeyEsc:
			m.calendarModel.SetSearch("")
			m.search.SetValue("")
			m.searching = false
			m.search.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) askCancel(k models.SlotKey) {
	st := m.session.State()
	a, ok := st.Appointment(k)
	if !ok {
		return
	}
	slot := k
	m.pending = &pendingDelete{
		slot: &slot,
		prompt: fmt.Sprintf("Cancel %s for %s on %s at %s?",
			a.ProcedureName(), reports.PatientName(st.Patients, a.PatientID), k.Date, k.Time),
	}
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

func (m *Model) askDeletePatient(id string) {
	st := m.session.State()
	p, ok := st.Patient(id)
	if !ok {
		return
	}
	prompt := fmt.Sprintf("Delete patient %s?", p.Name)
	if n := len(st.AppointmentsFor(id)); n > 0 {
		prompt += fmt.Sprintf(" %d appointment(s) will be left without a patient.", n)
	}
	m.pending = &pendingDelete{patientID: id, prompt: prompt}
	m.previousState = m.state
	m.state = constants.StateConfirmDelete
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Confirm):
		p := m.pending
		m.pending = nil
		m.state = m.previousState
		if p.slot != nil {
			m.dispatch(state.CancelAppointment{Key: *p.slot}, fmt.Sprintf("Cancelled appointment %s %s", p.slot.Date, p.slot.Time))
		} else {
			m.dispatch(state.DeletePatient{ID: p.patientID}, "Deleted patient")
		}
	case key.Matches(k, m.keys.Deny):
		m.pending = nil
		m.state = m.previousState
	}
	return m, nil
}

// bookForPatient opens the booking form on the calendar's focused slot, or
// the first slot of the focused day.
func (m *Model) bookForPatient(id string) tea.Cmd {
	k, ok := m.calendarModel.SelectedKey()
	if !ok {
		st := m.session.State()
		slots := schedule.GenerateTimeSlots(st.Settings)
		if len(slots) == 0 {
			m.setError(fmt.Errorf("%w: no working hours configured", models.ErrInvalidSettings))
			return nil
		}
		k = models.NewSlotKey(m.calendarModel.Date(), slots[0])
	}
	return m.openBookingForm(k, id)
}
