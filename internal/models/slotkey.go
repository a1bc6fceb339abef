package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
)

// SlotKey identifies a bookable slot: a calendar date plus an HH:MM label.
// It is comparable and used directly as the appointment map key.
type SlotKey struct {
	Date string // YYYY-MM-DD
	Time string // HH:MM
}

// NewSlotKey builds the key for timeLabel on date. The time of day carried by
// date is ignored.
func NewSlotKey(date time.Time, timeLabel string) SlotKey {
	return SlotKey{Date: date.Format(constants.DateFormat), Time: timeLabel}
}

// ParseSlotKey parses the "YYYY-MM-DD_HH:MM" form. Only the first separator
// splits the key.
func ParseSlotKey(s string) (SlotKey, error) {
	date, label, ok := strings.Cut(s, constants.SlotKeySeparator)
	if !ok {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: missing separator", s)
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: %w", s, err)
	}
	return SlotKey{Date: date, Time: label}, nil
}

func (k SlotKey) String() string {
	return k.Date + constants.SlotKeySeparator + k.Time
}

// Day parses the date part in loc.
func (k SlotKey) Day(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(constants.DateFormat, k.Date, loc)
}

// Hour returns the hour of the time label, or -1 when it is not HH:MM.
func (k SlotKey) Hour() int {
	t, err := time.Parse(constants.TimeFormat, k.Time)
	if err != nil {
		return -1
	}
	return t.Hour()
}

// Compare orders keys by date, then by time label.
func (k SlotKey) Compare(other SlotKey) int {
	if c := strings.Compare(k.Date, other.Date); c != 0 {
		return c
	}
	return strings.Compare(k.Time, other.Time)
}

func (k SlotKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SlotKey) UnmarshalText(b []byte) error {
	parsed, err := ParseSlotKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
