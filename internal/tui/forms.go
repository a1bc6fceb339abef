package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/schedule"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/tui/components/patients"
	"github.com/julianstephens/dentaplan/internal/tui/components/settings"
	"github.com/julianstephens/dentaplan/internal/utils"
)

var errNoPatients = errors.New("add a patient before booking")

func (m *Model) enterForm(s constants.SessionState, form *huh.Form) tea.Cmd {
	if m.state < constants.StatePatientForm {
		m.previousState = m.state
	}
	m.state = s
	m.form = form
	return form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.patientForm = nil
	m.bookingForm = nil
	m.settingsValues = nil
	m.state = m.previousState
}

func (m *Model) openPatientForm(p models.Patient) tea.Cmd {
	m.patientForm = &p
	return m.enterForm(constants.StatePatientForm, patients.Form(m.patientForm))
}

func (m *Model) submitPatient() {
	p := *m.patientForm
	verb := "Updated"
	if p.ID == "" {
		verb = "Added"
	}
	m.dispatch(state.SavePatient{Patient: p}, fmt.Sprintf("%s patient %s", verb, strings.TrimSpace(p.Name)))
}

// openBookingForm prefills the form from key, or from the appointment
// already in key when editing.
func (m *Model) openBookingForm(key models.SlotKey, patientID string) tea.Cmd {
	st := m.session.State()
	if len(st.Patients) == 0 {
		m.setError(errNoPatients)
		return nil
	}

	b := &BookingFormModel{
		Date:      key.Date,
		Time:      key.Time,
		PatientID: patientID,
		Procedure: constants.Procedures[0],
	}
	if a, ok := st.Appointment(key); ok {
		original := key
		b.Original = &original
		if patientID == "" {
			b.PatientID = a.PatientID
		}
		b.Procedure = a.Procedure
		b.CustomName = a.CustomProcedureName
		b.Notes = a.Notes
	}
	if b.PatientID == "" {
		b.PatientID = patients.Filter(st.Patients, "")[0].ID
	}
	m.bookingForm = b
	return m.enterForm(constants.StateBookingForm, m.bookingHuhForm(st))
}

func (m *Model) bookingHuhForm(st state.State) *huh.Form {
	b := m.bookingForm

	patientOptions := make([]huh.Option[string], 0, len(st.Patients))
	for _, p := range patients.Filter(st.Patients, "") {
		patientOptions = append(patientOptions, huh.NewOption(p.Name, p.ID))
	}
	timeOptions := huh.NewOptions(schedule.GenerateTimeSlots(st.Settings)...)
	procOptions := huh.NewOptions(append(append([]string{}, constants.Procedures...), constants.ProcedureCustom)...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Patient").
				Options(patientOptions...).
				Value(&b.PatientID),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&b.Date).
				Validate(func(s string) error {
					_, err := utils.ParseDateInLocation(s, m.now().Location())
					return err
				}),
			huh.NewSelect[string]().
				Title("Time").
				Options(timeOptions...).
				Value(&b.Time),
			huh.NewSelect[string]().
				Title("Procedure").
				Options(procOptions...).
				Value(&b.Procedure),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Custom procedure").
				Value(&b.CustomName),
		).WithHideFunc(func() bool { return b.Procedure != constants.ProcedureCustom }),
		huh.NewGroup(
			huh.NewText().
				Title("Notes").
				Value(&b.Notes),
		),
	)
}

func (m *Model) submitBooking() {
	b := *m.bookingForm
	st := m.session.State()

	day, err := utils.ParseDateInLocation(b.Date, m.now().Location())
	if err != nil {
		m.setError(err)
		return
	}
	if !schedule.IsWorkingSlot(st.Settings, day.Weekday(), b.Time) {
		m.setError(fmt.Errorf("%w: %s %s is outside working hours", models.ErrInvalidAppointment, day.Weekday(), b.Time))
		return
	}

	key := models.NewSlotKey(day, b.Time)
	appt := models.Appointment{
		PatientID: b.PatientID,
		Procedure: b.Procedure,
		Notes:     strings.TrimSpace(b.Notes),
	}
	if b.Procedure == constants.ProcedureCustom {
		appt.CustomProcedureName = strings.TrimSpace(b.CustomName)
	}

	if b.Original != nil {
		msg := fmt.Sprintf("Updated %s at %s %s", appt.ProcedureName(), key.Date, key.Time)
		if *b.Original != key {
			msg = fmt.Sprintf("Moved appointment to %s %s", key.Date, key.Time)
		}
		m.dispatch(state.MoveAppointment{From: *b.Original, To: key, Appointment: appt}, msg)
		return
	}
	if _, taken := st.Appointment(key); taken {
		m.setError(fmt.Errorf("%w: %s %s, cancel it first", state.ErrSlotTaken, key.Date, key.Time))
		return
	}
	m.dispatch(state.BookAppointment{Key: key, Appointment: appt}, fmt.Sprintf("Booked %s at %s %s", appt.ProcedureName(), key.Date, key.Time))
}

func (m *Model) openSettingsForm() tea.Cmd {
	v := settings.DefaultValues(m.session.State().Settings)
	m.settingsValues = &v
	return m.enterForm(constants.StateSettingsForm, settings.Form(m.settingsValues))
}

func (m *Model) submitSettings() {
	s, err := m.settingsValues.Settings()
	if err != nil {
		m.setError(err)
		return
	}
	m.dispatch(state.SaveSettings{Settings: s}, "Settings saved")
}
