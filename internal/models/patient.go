package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPatient is returned by Patient.Validate.
var ErrInvalidPatient = errors.New("invalid patient")

type Patient struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"dateOfBirth"` // YYYY-MM-DD, free text allowed
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
}

// Validate requires a non-blank name.
func (p Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPatient)
	}
	return nil
}

// Matches reports whether the patient's name contains query, ignoring case.
func (p Patient) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q)
}
