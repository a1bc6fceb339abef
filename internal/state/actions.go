package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dentaplan/internal/models"
)

// Collection is a bit set naming the persisted collections.
type Collection uint8

const (
	CollectionSettings Collection = 1 << iota
	CollectionPatients
	CollectionAppointments

	CollectionAll = CollectionSettings | CollectionPatients | CollectionAppointments
)

// Has reports whether c includes other.
func (c Collection) Has(other Collection) bool {
	return c&other != 0
}

// newID allows tests to use deterministic identifiers.
var newID = uuid.NewString

// Action is a state transition.
type Action interface {
	// Touches reports which collections the action may change.
	Touches() Collection
}

// SaveSettings replaces the settings and marks onboarding complete.
type SaveSettings struct {
	Settings models.Settings
}

// SavePatient creates a patient when ID is empty, otherwise overwrites it.
type SavePatient struct {
	Patient models.Patient
}

// DeletePatient removes a patient. Their appointments are kept with an
// empty patient reference.
type DeletePatient struct {
	ID string
}

// BookAppointment stores an appointment in a slot, replacing any occupant.
type BookAppointment struct {
	Key         models.SlotKey
	Appointment models.Appointment
}

// MoveAppointment replaces the appointment in From with Appointment stored
// in To. The appointment keeps its ID. To must be From or an empty slot.
type MoveAppointment struct {
	From        models.SlotKey
	To          models.SlotKey
	Appointment models.Appointment
}

// CancelAppointment empties a slot.
type CancelAppointment struct {
	Key models.SlotKey
}

// Reset restores a fresh installation.
type Reset struct{}

func (SaveSettings) Touches() Collection      { return CollectionSettings }
func (SavePatient) Touches() Collection       { return CollectionPatients }
func (DeletePatient) Touches() Collection     { return CollectionPatients | CollectionAppointments }
func (BookAppointment) Touches() Collection   { return CollectionAppointments }
func (MoveAppointment) Touches() Collection   { return CollectionAppointments }
func (CancelAppointment) Touches() Collection { return CollectionAppointments }
func (Reset) Touches() Collection             { return CollectionAll }

// Reduce applies a to st and returns the new state. st is never modified;
// on error the returned state is st itself.
func Reduce(st State, a Action) (State, error) {
	switch a := a.(type) {
	case SaveSettings:
		if err := a.Settings.Validate(); err != nil {
			return st, err
		}
		next := st.Clone()
		next.Settings = a.Settings.Clone()
		next.Settings.IsConfigured = true
		return next, nil

	case SavePatient:
		p := a.Patient
		p.Name = strings.TrimSpace(p.Name)
		if err := p.Validate(); err != nil {
			return st, err
		}
		if p.ID == "" {
			p.ID = newID()
		}
		next := st.Clone()
		next.Patients[p.ID] = p
		return next, nil

	case DeletePatient:
		if _, ok := st.Patients[a.ID]; !ok || a.ID == "" {
			return st, nil
		}
		next := st.Clone()
		delete(next.Patients, a.ID)
		for k, appt := range next.Appointments {
			if appt.PatientID == a.ID {
				appt.PatientID = ""
				next.Appointments[k] = appt
			}
		}
		return next, nil

	case BookAppointment:
		if err := checkKey(a.Key); err != nil {
			return st, err
		}
		appt := a.Appointment
		if err := appt.Validate(); err != nil {
			return st, err
		}
		if appt.ID == "" {
			appt.ID = newID()
		}
		next := st.Clone()
		next.Appointments[a.Key] = appt
		return next, nil

	case MoveAppointment:
		current, ok := st.Appointments[a.From]
		if !ok {
			return st, fmt.Errorf("%w: %s", ErrSlotNotFound, a.From)
		}
		if err := checkKey(a.To); err != nil {
			return st, err
		}
		if _, taken := st.Appointments[a.To]; taken && a.To != a.From {
			return st, fmt.Errorf("%w: %s", ErrSlotTaken, a.To)
		}
		appt := a.Appointment
		appt.ID = current.ID
		if err := appt.Validate(); err != nil {
			return st, err
		}
		if appt.ID == "" {
			appt.ID = newID()
		}
		next := st.Clone()
		delete(next.Appointments, a.From)
		next.Appointments[a.To] = appt
		return next, nil

	case CancelAppointment:
		if _, ok := st.Appointments[a.Key]; !ok {
			return st, nil
		}
		next := st.Clone()
		delete(next.Appointments, a.Key)
		return next, nil

	case Reset:
		return New(), nil

	default:
		return st, fmt.Errorf("unknown action %T", a)
	}
}

func checkKey(k models.SlotKey) error {
	if _, err := models.ParseSlotKey(k.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppointment, err)
	}
	if k.Hour() < 0 {
		return fmt.Errorf("%w: invalid time %q", ErrInvalidAppointment, k.Time)
	}
	return nil
}
