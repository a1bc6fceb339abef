package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dentaplan/internal/constants"
)

// ErrInvalidAppointment is returned by Appointment.Validate.
var ErrInvalidAppointment = errors.New("invalid appointment")

type Appointment struct {
	ID                  string `json:"id"`
	PatientID           string `json:"patientId"` // empty once the patient has been deleted
	Procedure           string `json:"procedure"` // a preset procedure or "Custom"
	CustomProcedureName string `json:"customProcedureName,omitempty"`
	Notes               string `json:"notes"`
}

// ProcedureName returns the name shown for the appointment. Custom
// appointments without a name fall back to the literal "Custom".
func (a Appointment) ProcedureName() string {
	if a.Procedure == constants.ProcedureCustom {
		if name := strings.TrimSpace(a.CustomProcedureName); name != "" {
			return name
		}
		return constants.ProcedureCustom
	}
	return a.Procedure
}

// IsOrphaned reports whether the appointment lost its patient.
func (a Appointment) IsOrphaned() bool {
	return a.PatientID == ""
}

// Validate checks the fields required to book the appointment.
func (a Appointment) Validate() error {
	if strings.TrimSpace(a.PatientID) == "" {
		return fmt.Errorf("%w: patient is required", ErrInvalidAppointment)
	}
	if strings.TrimSpace(a.Procedure) == "" {
		return fmt.Errorf("%w: procedure is required", ErrInvalidAppointment)
	}
	if a.Procedure == constants.ProcedureCustom && strings.TrimSpace(a.CustomProcedureName) == "" {
		return fmt.Errorf("%w: custom procedure name is required", ErrInvalidAppointment)
	}
	return nil
}
