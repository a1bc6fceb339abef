package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// DaySetting holds the working window for a single weekday.
type DaySetting struct {
	IsWorkingDay bool `json:"isWorkingDay"`
	StartTime    int  `json:"startTime"` // hour of the day, 0-23
	EndTime      int  `json:"endTime"`   // hour of the day, 1-24, exclusive
}

// Contains reports whether hour falls inside the working window.
func (d DaySetting) Contains(hour int) bool {
	return d.IsWorkingDay && hour >= d.StartTime && hour < d.EndTime
}

// Settings represents the clinic-wide schedule configuration
type Settings struct {
	WorkingHours map[time.Weekday]DaySetting `json:"workingHours"` // keyed 0 (Sunday) through 6 (Saturday)
	SlotDuration int                         `json:"slotDuration"` // in minutes
	IsConfigured bool                        `json:"isConfigured"` // set once onboarding has completed
}

// DefaultSettings returns the configuration used before onboarding.
func DefaultSettings() Settings {
	hours := make(map[time.Weekday]DaySetting, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		working := d != time.Sunday && d != time.Saturday
		hours[d] = DaySetting{IsWorkingDay: working, StartTime: 9, EndTime: 17}
	}
	return Settings{
		WorkingHours: hours,
		SlotDuration: 30,
		IsConfigured: false,
	}
}

// Day returns the setting for weekday. The second result is false when the
// weekday has no entry.
func (s Settings) Day(weekday time.Weekday) (DaySetting, bool) {
	d, ok := s.WorkingHours[weekday]
	return d, ok
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	out.WorkingHours = make(map[time.Weekday]DaySetting, len(s.WorkingHours))
	for k, v := range s.WorkingHours {
		out.WorkingHours[k] = v
	}
	return out
}

// Validate checks the structural invariants of the configuration.
func (s Settings) Validate() error {
	if s.SlotDuration <= 0 {
		return fmt.Errorf("%w: slot duration must be positive, got %d", ErrInvalidSettings, s.SlotDuration)
	}
	if s.SlotDuration > constants.MaxSlotDurationMin {
		return fmt.Errorf("%w: slot duration must be at most %d minutes, got %d", ErrInvalidSettings, constants.MaxSlotDurationMin, s.SlotDuration)
	}
	for day, ds := range s.WorkingHours {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidSettings, int(day))
		}
		if !ds.IsWorkingDay {
			continue
		}
		if ds.StartTime < 0 || ds.EndTime > 24 {
			return fmt.Errorf("%w: %s hours %d-%d out of range", ErrInvalidSettings, day, ds.StartTime, ds.EndTime)
		}
		if ds.StartTime >= ds.EndTime {
			return fmt.Errorf("%w: %s start %d must be before end %d", ErrInvalidSettings, day, ds.StartTime, ds.EndTime)
		}
	}
	return nil
}

// HasWorkingDay reports whether at least one weekday is a working day.
func (s Settings) HasWorkingDay() bool {
	for _, ds := range s.WorkingHours {
		if ds.IsWorkingDay {
			return true
		}
	}
	return false
}
