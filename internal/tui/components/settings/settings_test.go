package settings

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dentaplan/internal/models"
)

func TestDefaultValues(t *testing.T) {
	v := DefaultValues(models.DefaultSettings())
	if got := v.Working(); len(got) != 5 || got[0] != time.Monday {
		t.Errorf("Working() = %v", got)
	}
	if v.SlotDuration != "30" {
		t.Errorf("SlotDuration = %q", v.SlotDuration)
	}
	if sun := v.Days[time.Sunday]; sun.Working || sun.Start != "9" || sun.End != "17" {
		t.Errorf("Sunday = %+v", sun)
	}
}

func TestDefaultValuesRoundTrip(t *testing.T) {
	s := models.DefaultSettings()
	s.SlotDuration = 20
	s.WorkingHours[time.Monday] = models.DaySetting{IsWorkingDay: true, StartTime: 8, EndTime: 12}
	s.WorkingHours[time.Tuesday] = models.DaySetting{IsWorkingDay: true, StartTime: 13, EndTime: 18}
	s.WorkingHours[time.Friday] = models.DaySetting{IsWorkingDay: false, StartTime: 7, EndTime: 11}
	s.WorkingHours[time.Saturday] = models.DaySetting{IsWorkingDay: true, StartTime: 0, EndTime: 24}

	got, err := DefaultValues(s).Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if got.SlotDuration != 20 {
		t.Errorf("SlotDuration = %d, want 20", got.SlotDuration)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if got.WorkingHours[d] != s.WorkingHours[d] {
			t.Errorf("%s: got %+v, want %+v", d, got.WorkingHours[d], s.WorkingHours[d])
		}
	}
}

func TestValuesSetWorkingAndHours(t *testing.T) {
	s := models.DefaultSettings()
	s.WorkingHours[time.Monday] = models.DaySetting{IsWorkingDay: true, StartTime: 8, EndTime: 12}
	v := DefaultValues(s)

	v.SetWorking([]time.Weekday{time.Monday, time.Saturday})
	end := 14
	v.SetHours(nil, &end)

	got, err := v.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if mon := got.WorkingHours[time.Monday]; mon != (models.DaySetting{IsWorkingDay: true, StartTime: 8, EndTime: 14}) {
		t.Errorf("Monday = %+v", mon)
	}
	if sat := got.WorkingHours[time.Saturday]; sat != (models.DaySetting{IsWorkingDay: true, StartTime: 9, EndTime: 14}) {
		t.Errorf("Saturday = %+v", sat)
	}
	if tue := got.WorkingHours[time.Tuesday]; tue != (models.DaySetting{IsWorkingDay: false, StartTime: 9, EndTime: 17}) {
		t.Errorf("Tuesday = %+v, closed days keep their hours", tue)
	}
}

func TestValuesSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *Values)
	}{
		{"bad start", func(v *Values) { v.Days[time.Monday].Start = "x" }},
		{"bad end", func(v *Values) { v.Days[time.Monday].End = "" }},
		{"bad slot", func(v *Values) { v.SlotDuration = "half" }},
		{"no working day", func(v *Values) { v.SetWorking(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultValues(models.DefaultSettings())
			tt.mutate(&v)
			if _, err := v.Settings(); !errors.Is(err, models.ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestValidateHours(t *testing.T) {
	tests := []struct {
		name    string
		day     DayValues
		wantErr bool
	}{
		{"open ok", DayValues{Working: true, Start: "9", End: "17"}, false},
		{"open inverted", DayValues{Working: true, Start: "17", End: "9"}, true},
		{"open empty window", DayValues{Working: true, Start: "9", End: "9"}, true},
		{"closed inverted", DayValues{Working: false, Start: "17", End: "9"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHours(&tt.day)("")
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out := Render(models.DefaultSettings())
	for _, want := range []string{"Slot Duration:  30 min", "Monday", "09:00 - 17:00", "Sunday     closed"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestModelEdit(t *testing.T) {
	m := New(80, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(EditSettingsMsg); !ok {
		t.Error("expected EditSettingsMsg")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}); cmd != nil {
		t.Error("unexpected command for x")
	}
}
