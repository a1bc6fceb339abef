package schedule

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/models"
)

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("default week", func(t *testing.T) {
		slots := GenerateTimeSlots(models.DefaultSettings())
		if len(slots) != 16 {
			t.Fatalf("len(slots) = %d, want 16", len(slots))
		}
		if slots[0] != "09:00" || slots[1] != "09:30" || slots[15] != "16:30" {
			t.Errorf("unexpected slots: %v", slots)
		}
	})

	t.Run("union of working days", func(t *testing.T) {
		s := models.Settings{
			SlotDuration: 45,
			WorkingHours: map[time.Weekday]models.DaySetting{
				time.Monday:  {IsWorkingDay: true, StartTime: 8, EndTime: 12},
				time.Tuesday: {IsWorkingDay: true, StartTime: 13, EndTime: 18},
				time.Sunday:  {IsWorkingDay: false, StartTime: 5, EndTime: 23},
			},
		}
		slots := GenerateTimeSlots(s)
		if len(slots) != 14 {
			t.Fatalf("len(slots) = %d, want 14: %v", len(slots), slots)
		}
		if slots[0] != "08:00" || slots[1] != "08:45" {
			t.Errorf("unexpected first slots: %v", slots[:2])
		}
		// 17:45 + 45 runs past 18:00 but the slot still starts inside the span.
		if slots[13] != "17:45" {
			t.Errorf("last slot = %q, want 17:45", slots[13])
		}
	})

	t.Run("no working days", func(t *testing.T) {
		s := models.DefaultSettings()
		for d, ds := range s.WorkingHours {
			ds.IsWorkingDay = false
			s.WorkingHours[d] = ds
		}
		if slots := GenerateTimeSlots(s); len(slots) != 0 {
			t.Errorf("expected no slots, got %v", slots)
		}
	})

	t.Run("non-positive duration", func(t *testing.T) {
		s := models.DefaultSettings()
		s.SlotDuration = 0
		if slots := GenerateTimeSlots(s); len(slots) != 0 {
			t.Errorf("expected no slots, got %v", slots)
		}
	})

	t.Run("round the clock", func(t *testing.T) {
		s := models.Settings{
			SlotDuration: 60,
			WorkingHours: map[time.Weekday]models.DaySetting{
				time.Friday: {IsWorkingDay: true, StartTime: 0, EndTime: 24},
			},
		}
		slots := GenerateTimeSlots(s)
		if len(slots) != 24 || slots[23] != "23:00" {
			t.Errorf("unexpected slots: %v", slots)
		}
	})
}

// gridSettings covers single windows, split windows and full days.
var gridSettings = []struct {
	name  string
	hours map[time.Weekday]models.DaySetting
}{
	{"office hours", map[time.Weekday]models.DaySetting{
		time.Monday: {IsWorkingDay: true, StartTime: 9, EndTime: 17},
	}},
	{"single hour", map[time.Weekday]models.DaySetting{
		time.Wednesday: {IsWorkingDay: true, StartTime: 7, EndTime: 8},
	}},
	{"split days", map[time.Weekday]models.DaySetting{
		time.Monday:  {IsWorkingDay: true, StartTime: 8, EndTime: 12},
		time.Tuesday: {IsWorkingDay: true, StartTime: 13, EndTime: 18},
		time.Sunday:  {IsWorkingDay: false, StartTime: 0, EndTime: 24},
	}},
	{"early and late", map[time.Weekday]models.DaySetting{
		time.Thursday: {IsWorkingDay: true, StartTime: 0, EndTime: 5},
		time.Friday:   {IsWorkingDay: true, StartTime: 20, EndTime: 24},
	}},
	{"round the clock", map[time.Weekday]models.DaySetting{
		time.Saturday: {IsWorkingDay: true, StartTime: 0, EndTime: 24},
	}},
}

func TestGenerateTimeSlots_Sweep(t *testing.T) {
	for _, g := range gridSettings {
		for _, duration := range constants.SlotDurationOptions {
			t.Run(fmt.Sprintf("%s/%dmin", g.name, duration), func(t *testing.T) {
				s := models.Settings{SlotDuration: duration, WorkingHours: g.hours}

				earliest, latest := 24*60, 0
				for _, ds := range g.hours {
					if ds.IsWorkingDay {
						earliest = min(earliest, ds.StartTime*60)
						latest = max(latest, ds.EndTime*60)
					}
				}

				slots := GenerateTimeSlots(s)
				if len(slots) == 0 {
					t.Fatal("expected slots")
				}
				if slots[0] != FormatMinutes(earliest) {
					t.Errorf("first slot = %q, want %q", slots[0], FormatMinutes(earliest))
				}
				prev := -1
				for _, label := range slots {
					m, err := ParseLabel(label)
					if err != nil {
						t.Fatalf("ParseLabel(%q): %v", label, err)
					}
					if m <= prev {
						t.Errorf("%q does not follow %s", label, FormatMinutes(prev))
					}
					if m < earliest || m >= latest {
						t.Errorf("%q outside [%s, %s)", label, FormatMinutes(earliest), FormatMinutes(latest))
					}
					prev = m
				}
			})
		}
	}
}

func TestSlotKeyRoundTrip_Sweep(t *testing.T) {
	dates := []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC),
	}
	for _, g := range gridSettings {
		for _, duration := range constants.SlotDurationOptions {
			t.Run(fmt.Sprintf("%s/%dmin", g.name, duration), func(t *testing.T) {
				s := models.Settings{SlotDuration: duration, WorkingHours: g.hours}
				for _, date := range dates {
					for _, label := range GenerateTimeSlots(s) {
						key := models.NewSlotKey(date, label)
						text := key.String()

						datePart, timePart, ok := strings.Cut(text, constants.SlotKeySeparator)
						if !ok || timePart != label {
							t.Fatalf("%q: time part = %q, want %q", text, timePart, label)
						}
						day, err := time.Parse(constants.DateFormat, datePart)
						if err != nil {
							t.Fatalf("%q: date part: %v", text, err)
						}
						if day.Year() != date.Year() || day.Month() != date.Month() || day.Day() != date.Day() {
							t.Errorf("%q: date part = %s, want %s", text, day.Format(constants.DateFormat), date.Format(constants.DateFormat))
						}

						parsed, err := models.ParseSlotKey(text)
						if err != nil || parsed != key {
							t.Errorf("ParseSlotKey(%q) = %+v, %v", text, parsed, err)
						}
					}
				}
			})
		}
	}
}

func TestIsWorkingSlot(t *testing.T) {
	s := models.DefaultSettings()
	s.WorkingHours[time.Tuesday] = models.DaySetting{IsWorkingDay: true, StartTime: 12, EndTime: 15}

	tests := []struct {
		name    string
		weekday time.Weekday
		label   string
		want    bool
	}{
		{"inside monday", time.Monday, "09:00", true},
		{"half hour before close", time.Monday, "16:30", true},
		{"closing hour", time.Monday, "17:00", false},
		{"before tuesday opens", time.Tuesday, "09:30", false},
		{"tuesday afternoon", time.Tuesday, "14:30", true},
		{"day off", time.Sunday, "10:00", false},
		{"bad label", time.Monday, "ten", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWorkingSlot(s, tt.weekday, tt.label); got != tt.want {
				t.Errorf("IsWorkingSlot(%s, %q) = %v, want %v", tt.weekday, tt.label, got, tt.want)
			}
		})
	}
}

func TestIsOnGrid(t *testing.T) {
	s := models.DefaultSettings()
	if !IsOnGrid(s, "10:30") {
		t.Error("10:30 should be on a 30 minute grid")
	}
	if IsOnGrid(s, "10:15") {
		t.Error("10:15 should not be on a 30 minute grid")
	}
}

func TestNextSlotTime(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		duration int
		want     string
	}{
		{"rounds up", time.Date(2025, 6, 2, 10, 7, 42, 0, time.UTC), 30, "10:30"},
		{"exact boundary", time.Date(2025, 6, 2, 10, 0, 12, 0, time.UTC), 30, "10:00"},
		{"carries into hour", time.Date(2025, 6, 2, 10, 45, 0, 0, time.UTC), 30, "11:00"},
		{"quarter hours", time.Date(2025, 6, 2, 9, 1, 0, 0, time.UTC), 15, "09:15"},
		{"wraps midnight", time.Date(2025, 6, 2, 23, 50, 0, 0, time.UTC), 15, "00:00"},
		{"longer than an hour", time.Date(2025, 6, 2, 10, 10, 0, 0, time.UTC), 90, "11:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSlotTime(tt.now, tt.duration); got != tt.want {
				t.Errorf("NextSlotTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
