package schedule

import (
	"fmt"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
)

// GenerateTimeSlots returns the HH:MM labels of the shared slot grid. The grid
// spans from the earliest start to the latest end across all working days.
// The final slot is emitted whenever it starts before the latest end, even if
// it runs past it.
func GenerateTimeSlots(settings models.Settings) []string {
	if settings.SlotDuration <= 0 {
		return []string{}
	}

	earliest, latest := -1, -1
	for _, ds := range settings.WorkingHours {
		if !ds.IsWorkingDay {
			continue
		}
		if earliest == -1 || ds.StartTime < earliest {
			earliest = ds.StartTime
		}
		if latest == -1 || ds.EndTime > latest {
			latest = ds.EndTime
		}
	}
	if earliest == -1 {
		return []string{}
	}

	slots := []string{}
	for m := earliest * 60; m < latest*60; m += settings.SlotDuration {
		slots = append(slots, FormatMinutes(m))
	}
	return slots
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseLabel parses an HH:MM label into minutes since midnight.
func ParseLabel(label string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, label)
	if err != nil {
		return 0, fmt.Errorf("invalid time label %q: %w", label, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsWorkingSlot reports whether the slot labelled label falls inside the
// working window of weekday. Only the hour of the label is considered.
func IsWorkingSlot(settings models.Settings, weekday time.Weekday, label string) bool {
	ds, ok := settings.Day(weekday)
	if !ok {
		return false
	}
	m, err := ParseLabel(label)
	if err != nil {
		return false
	}
	return ds.Contains(m / 60)
}

// IsOnGrid reports whether label is one of the generated slot labels.
func IsOnGrid(settings models.Settings, label string) bool {
	for _, s := range GenerateTimeSlots(settings) {
		if s == label {
			return true
		}
	}
	return false
}

// NextSlotTime rounds the current minute up to a multiple of slotDuration
// and returns the resulting HH:MM label. Overflow carries into the hour and
// seconds are discarded.
func NextSlotTime(now time.Time, slotDuration int) string {
	if slotDuration <= 0 {
		return now.Format(constants.TimeFormat)
	}
	minutes := now.Minute()
	rounded := ((minutes + slotDuration - 1) / slotDuration) * slotDuration
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return hour.Add(time.Duration(rounded) * time.Minute).Format(constants.TimeFormat)
}
