package storage

import (
	"errors"

	"github.com/julianstephens/dentaplan/internal/models"
)

// ErrNotInitialized is returned by Load when the backing store does not exist yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'dentaplan init' first")

// Provider persists the three application collections. Each collection is
// stored and replaced as a whole.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Patients
	GetPatients() (map[string]models.Patient, error)
	SavePatients(map[string]models.Patient) error

	// Appointments
	GetAppointments() (map[models.SlotKey]models.Appointment, error)
	SaveAppointments(map[models.SlotKey]models.Appointment) error

	// Utils
	GetConfigPath() string
}

// KV is the raw key/value surface every backend exposes. A missing key
// reports ok=false with a nil error.
type KV interface {
	GetValue(key string) (value string, ok bool, err error)
	SetValue(key, value string) error
	Keys() ([]string, error)
}
