package storage

import (
	"fmt"
	"sort"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/models"
)

// Collections implements the collection half of Provider on top of a KV.
// Backends embed it and point KV at themselves.
type Collections struct {
	KV KV
}

func (c Collections) GetSettings() (models.Settings, error) {
	value, _, err := c.KV.GetValue(constants.KeySettings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return DecodeSettings([]byte(value))
}

func (c Collections) SaveSettings(settings models.Settings) error {
	return c.put(constants.KeySettings, settings)
}

func (c Collections) GetPatients() (map[string]models.Patient, error) {
	value, _, err := c.KV.GetValue(constants.KeyPatients)
	if err != nil {
		return nil, fmt.Errorf("failed to read patients: %w", err)
	}
	return DecodePatients([]byte(value))
}

func (c Collections) SavePatients(patients map[string]models.Patient) error {
	if patients == nil {
		patients = map[string]models.Patient{}
	}
	return c.put(constants.KeyPatients, patients)
}

func (c Collections) GetAppointments() (map[models.SlotKey]models.Appointment, error) {
	value, _, err := c.KV.GetValue(constants.KeyAppointments)
	if err != nil {
		return nil, fmt.Errorf("failed to read appointments: %w", err)
	}
	appts, skipped, err := DecodeAppointments([]byte(value))
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		logger.Warn("Skipping appointments with malformed slot keys", "keys", skipped)
	}
	return appts, nil
}

func (c Collections) SaveAppointments(appts map[models.SlotKey]models.Appointment) error {
	if appts == nil {
		appts = map[models.SlotKey]models.Appointment{}
	}
	return c.put(constants.KeyAppointments, appts)
}

// Dump returns every stored value keyed by collection name.
func (c Collections) Dump() (map[string]string, error) {
	keys, err := c.KV.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := c.KV.GetValue(k)
		if err != nil {
			return nil, err
		}
		if ok {
			out[k] = v
		}
	}
	return out, nil
}

func (c Collections) put(key string, v any) error {
	value, err := encode(key, v)
	if err != nil {
		return err
	}
	if err := c.KV.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	logger.Debug("Saved collection", "key", key, "bytes", len(value))
	return nil
}
