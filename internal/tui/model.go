package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/tui/components/calendar"
	"github.com/julianstephens/dentaplan/internal/tui/components/dashboard"
	"github.com/julianstephens/dentaplan/internal/tui/components/patients"
	"github.com/julianstephens/dentaplan/internal/tui/components/reports"
	"github.com/julianstephens/dentaplan/internal/tui/components/settings"
	"github.com/julianstephens/dentaplan/internal/validation"
)

var tabTitles = []string{"Dashboard", "Calendar", "Patients", "Reports", "Settings"}

// BookingFormModel backs the booking form. Original is set when an existing
// appointment is being edited.
type BookingFormModel struct {
	Date       string
	Time       string
	PatientID  string
	Procedure  string
	CustomName string
	Notes      string
	Original   *models.SlotKey
}

// pendingDelete is what StateConfirmDelete will remove on "y".
type pendingDelete struct {
	patientID string
	slot      *models.SlotKey
	prompt    string
}

type Model struct {
	session       *state.Session
	now           func() time.Time
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	dashboardModel dashboard.Model
	calendarModel  calendar.Model
	patientsModel  patients.Model
	reportsModel   reports.Model
	settingsModel  settings.Model

	form           *huh.Form
	patientForm    *models.Patient
	bookingForm    *BookingFormModel
	settingsValues *settings.Values

	search    textinput.Model
	searching bool

	pending             *pendingDelete
	status              string
	statusErr           bool
	validationWarning   string
	validationConflicts []validation.Conflict

	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI over session. now supplies the clock; nil uses
// time.Now. An unconfigured clinic opens straight into the setup form.
func NewModel(session *state.Session, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	today := now()

	search := textinput.New()
	search.Placeholder = "patient name"
	search.Prompt = "Search: "

	m := Model{
		session:        session,
		now:            now,
		state:          constants.StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(0, 0),
		calendarModel:  calendar.New(today, 0, 0),
		patientsModel:  patients.New(0, 0),
		reportsModel:   reports.New(0, 0),
		settingsModel:  settings.New(0, 0),
		search:         search,
	}
	m.refresh()

	if !session.State().Settings.IsConfigured {
		m.openSettingsForm()
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCalendar:
		keys = append(keys, m.keys.View, m.keys.Book, m.keys.Delete, m.keys.Search)
	case constants.StatePatients:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	case constants.StatePatientForm, constants.StateBookingForm, constants.StateSettingsForm:
		keys = []key.Binding{m.keys.Back}
	case constants.StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Deny}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateCalendar:
		actions = []key.Binding{m.keys.View, m.keys.Today, m.keys.Prev, m.keys.Next, m.keys.Book, m.keys.Delete, m.keys.Search}
	case constants.StatePatients:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// refresh pushes the session state into every view and re-runs validation.
func (m *Model) refresh() {
	st := m.session.State()
	now := m.now()

	m.dashboardModel.SetData(dashboard.Data{
		Settings:     st.Settings,
		Appointments: st.Appointments,
		Patients:     st.Patients,
		Now:          now,
	})
	m.calendarModel.SetData(st.Settings, st.Appointments, st.Patients, now)
	m.reportsModel.SetData(st.Appointments, st.Patients, now)
	m.settingsModel.SetSettings(st.Settings)

	counts := make(map[string]int, len(st.Patients))
	for _, a := range st.Appointments {
		counts[a.PatientID]++
	}
	m.patientsModel.SetPatients(st.Patients, counts)

	m.updateValidationStatus(st)
}

func (m *Model) updateValidationStatus(st state.State) {
	result := validation.New().ValidateState(st)
	m.validationConflicts = result.Conflicts
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

// dispatch applies a and records the outcome in the status line.
func (m *Model) dispatch(a state.Action, success string) bool {
	if _, err := m.session.Dispatch(a); err != nil {
		logger.Error("TUI action failed", "action", fmt.Sprintf("%T", a), "error", err)
		m.setError(err)
		return false
	}
	m.refresh()
	m.setStatus(success)
	return true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) contentSize() (int, int) {
	return max(m.width-4, 0), max(m.height-6, 0)
}

func (m *Model) resize() {
	w, h := m.contentSize()
	m.dashboardModel.SetSize(w, h)
	m.calendarModel.SetSize(w, h)
	m.patientsModel.SetSize(w, h)
	m.reportsModel.SetSize(w, h)
	m.settingsModel.SetSize(w, h)
	m.help.Width = m.width
}
