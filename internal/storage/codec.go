package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/dentaplan/internal/models"
)

// DecodeSettings decodes a stored settings value over the defaults. Missing
// fields, weekdays and fields inside a weekday keep their default values.
func DecodeSettings(data []byte) (models.Settings, error) {
	settings := models.DefaultSettings()
	if len(data) == 0 {
		return settings, nil
	}

	var stored struct {
		WorkingHours map[time.Weekday]json.RawMessage `json:"workingHours"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	defaults := settings.Clone()
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	// json replaces map values wholesale, so each weekday is decoded again
	// over its own default.
	hours := defaults.WorkingHours
	for d, raw := range stored.WorkingHours {
		ds := hours[d]
		if err := json.Unmarshal(raw, &ds); err != nil {
			return models.Settings{}, fmt.Errorf("failed to decode %s hours: %w", d, err)
		}
		hours[d] = ds
	}
	settings.WorkingHours = hours
	return settings, nil
}

// DecodePatients decodes a stored patient map. Empty input yields an empty map.
func DecodePatients(data []byte) (map[string]models.Patient, error) {
	patients := make(map[string]models.Patient)
	if len(data) == 0 {
		return patients, nil
	}
	if err := json.Unmarshal(data, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	return patients, nil
}

// DecodeAppointments decodes a stored appointment map. Entries whose key does
// not parse are skipped and returned so the caller can report them.
func DecodeAppointments(data []byte) (map[models.SlotKey]models.Appointment, []string, error) {
	appts := make(map[models.SlotKey]models.Appointment)
	if len(data) == 0 {
		return appts, nil, nil
	}

	var raw map[string]models.Appointment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	var skipped []string
	for k, a := range raw {
		key, err := models.ParseSlotKey(k)
		if err != nil {
			skipped = append(skipped, k)
			continue
		}
		appts[key] = a
	}
	return appts, skipped, nil
}

func encode(key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return string(data), nil
}
