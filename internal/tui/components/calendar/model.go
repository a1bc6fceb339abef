package calendar

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/reports"
	"github.com/julianstephens/dentaplan/internal/schedule"
)

// BookSlotMsg asks the parent to open the booking form for an empty slot.
type BookSlotMsg struct{ Key models.SlotKey }

// EditAppointmentMsg asks the parent to edit the booked slot.
type EditAppointmentMsg struct{ Key models.SlotKey }

// CancelAppointmentMsg asks the parent to confirm cancelling the slot.
type CancelAppointmentMsg struct{ Key models.SlotKey }

type Model struct {
	viewport viewport.Model
	data     Data
	search   string
	mode     schedule.ViewMode
	date     time.Time
	slot     int
	width    int
	height   int
}

func New(today time.Time, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		mode:     schedule.ViewWeekly,
		date:     schedule.StartOfDay(today),
		width:    width,
		height:   height,
	}
}

// SetData replaces the calendar contents and re-applies the search.
func (m *Model) SetData(settings models.Settings, appts map[models.SlotKey]models.Appointment, patients map[string]models.Patient, today time.Time) {
	m.data = Data{
		Settings:     settings,
		Appointments: appts,
		Patients:     patients,
		Today:        schedule.StartOfDay(today),
	}
	if n := len(schedule.GenerateTimeSlots(settings)); m.slot >= n {
		m.slot = max(n-1, 0)
	}
	m.render()
}

// SetSearch narrows the calendar to patients whose name contains q.
func (m *Model) SetSearch(q string) {
	m.search = q
	m.render()
}

func (m Model) Search() string          { return m.search }
func (m Model) Mode() schedule.ViewMode { return m.mode }
func (m Model) Date() time.Time         { return m.date }
func (m Model) SelectedSlot() int       { return m.slot }

// SelectedKey returns the focused slot. The second result is false in the
// views without a slot cursor.
func (m Model) SelectedKey() (models.SlotKey, bool) {
	if m.mode == schedule.ViewMonthly || m.mode == schedule.ViewMinimal {
		return models.SlotKey{}, false
	}
	slots := schedule.GenerateTimeSlots(m.data.Settings)
	if m.slot < 0 || m.slot >= len(slots) {
		return models.SlotKey{}, false
	}
	return models.NewSlotKey(m.date, slots[m.slot]), true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch keyMsg.String() {
	case "v":
		m.mode = m.mode.Next()
	case "t":
		m.date = m.data.Today
	case "[", "pgup":
		m.date = schedule.Step(m.date, m.mode, -1)
	case "]", "pgdown":
		m.date = schedule.Step(m.date, m.mode, 1)
	case "left", "h":
		m.moveDays(-1)
	case "right", "l":
		m.moveDays(1)
	case "up", "k":
		m.moveVertical(-1)
	case "down", "j":
		m.moveVertical(1)
	case "enter":
		cmd = m.activate()
	case "d", "delete":
		if key, ok := m.SelectedKey(); ok {
			if _, booked := m.data.Appointments[key]; booked {
				cmd = func() tea.Msg { return CancelAppointmentMsg{Key: key} }
			}
		}
	}
	m.render()
	return m, cmd
}

func (m *Model) moveDays(delta int) {
	switch m.mode {
	case schedule.ViewMinimal:
		m.date = schedule.Step(m.date, m.mode, delta)
	default:
		m.date = m.date.AddDate(0, 0, delta)
	}
}

func (m *Model) moveVertical(delta int) {
	switch m.mode {
	case schedule.ViewMonthly:
		m.date = m.date.AddDate(0, 0, 7*delta)
	case schedule.ViewMinimal:
		if delta < 0 {
			m.viewport.ScrollUp(1)
		} else {
			m.viewport.ScrollDown(1)
		}
	default:
		n := len(schedule.GenerateTimeSlots(m.data.Settings))
		if n == 0 {
			return
		}
		m.slot = (m.slot + delta + n) % n
	}
}

func (m *Model) activate() tea.Cmd {
	if m.mode == schedule.ViewMonthly {
		m.mode = schedule.ViewDaily
		return nil
	}
	key, ok := m.SelectedKey()
	if !ok {
		return nil
	}
	if _, booked := m.data.Appointments[key]; booked {
		return func() tea.Msg { return EditAppointmentMsg{Key: key} }
	}
	day, err := key.Day(m.date.Location())
	if err != nil || !schedule.IsWorkingSlot(m.data.Settings, day.Weekday(), key.Time) {
		return nil
	}
	return func() tea.Msg { return BookSlotMsg{Key: key} }
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) render() {
	d := m.data
	d.Appointments = reports.SearchByPatient(d.Appointments, d.Patients, m.search)
	m.viewport.SetContent(Render(d, m.mode, m.date, &Selection{Date: m.date, Slot: m.slot}))
}
