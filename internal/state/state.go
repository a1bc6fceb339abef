// Package state holds the in-memory scheduling state and the pure
// transitions applied to it.
package state

import (
	"errors"

	"github.com/julianstephens/dentaplan/internal/models"
)

var (
	ErrInvalidSettings    = models.ErrInvalidSettings
	ErrInvalidPatient     = models.ErrInvalidPatient
	ErrInvalidAppointment = models.ErrInvalidAppointment

	ErrSlotNotFound = errors.New("no appointment in slot")
	ErrSlotTaken    = errors.New("slot is already booked")
)

// State is the complete application state.
type State struct {
	Settings     models.Settings
	Patients     map[string]models.Patient
	Appointments map[models.SlotKey]models.Appointment
}

// New returns the state of a fresh installation.
func New() State {
	return State{
		Settings:     models.DefaultSettings(),
		Patients:     map[string]models.Patient{},
		Appointments: map[models.SlotKey]models.Appointment{},
	}
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	out := State{
		Settings:     st.Settings.Clone(),
		Patients:     make(map[string]models.Patient, len(st.Patients)),
		Appointments: make(map[models.SlotKey]models.Appointment, len(st.Appointments)),
	}
	for k, v := range st.Patients {
		out.Patients[k] = v
	}
	for k, v := range st.Appointments {
		out.Appointments[k] = v
	}
	return out
}

// Patient looks up a patient by ID.
func (st State) Patient(id string) (models.Patient, bool) {
	if id == "" {
		return models.Patient{}, false
	}
	p, ok := st.Patients[id]
	return p, ok
}

// Appointment looks up the appointment in slot k.
func (st State) Appointment(k models.SlotKey) (models.Appointment, bool) {
	a, ok := st.Appointments[k]
	return a, ok
}

// AppointmentsFor returns the slots booked for a patient.
func (st State) AppointmentsFor(patientID string) []models.SlotKey {
	var out []models.SlotKey
	for k, a := range st.Appointments {
		if a.PatientID == patientID {
			out = append(out, k)
		}
	}
	return out
}
