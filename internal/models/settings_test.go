package models

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.IsConfigured {
		t.Error("default settings should not be configured")
	}
	if s.SlotDuration != 30 {
		t.Errorf("SlotDuration = %d, want 30", s.SlotDuration)
	}
	if len(s.WorkingHours) != 7 {
		t.Fatalf("len(WorkingHours) = %d, want 7", len(s.WorkingHours))
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		ds := s.WorkingHours[d]
		wantWorking := d != time.Sunday && d != time.Saturday
		if ds.IsWorkingDay != wantWorking {
			t.Errorf("%s IsWorkingDay = %v, want %v", d, ds.IsWorkingDay, wantWorking)
		}
		if ds.StartTime != 9 || ds.EndTime != 17 {
			t.Errorf("%s hours = %d-%d, want 9-17", d, ds.StartTime, ds.EndTime)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings failed validation: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{
			name:    "defaults",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name:    "zero duration",
			mutate:  func(s *Settings) { s.SlotDuration = 0 },
			wantErr: true,
		},
		{
			name:    "negative duration",
			mutate:  func(s *Settings) { s.SlotDuration = -15 },
			wantErr: true,
		},
		{
			name:    "full day duration",
			mutate:  func(s *Settings) { s.SlotDuration = 1440 },
			wantErr: false,
		},
		{
			name:    "duration longer than a day",
			mutate:  func(s *Settings) { s.SlotDuration = 1441 },
			wantErr: true,
		},
		{
			name: "start equals end",
			mutate: func(s *Settings) {
				s.WorkingHours[time.Monday] = DaySetting{IsWorkingDay: true, StartTime: 10, EndTime: 10}
			},
			wantErr: true,
		},
		{
			name: "end past midnight",
			mutate: func(s *Settings) {
				s.WorkingHours[time.Monday] = DaySetting{IsWorkingDay: true, StartTime: 10, EndTime: 25}
			},
			wantErr: true,
		},
		{
			name: "inverted hours on a day off are ignored",
			mutate: func(s *Settings) {
				s.WorkingHours[time.Sunday] = DaySetting{IsWorkingDay: false, StartTime: 20, EndTime: 3}
			},
			wantErr: false,
		},
		{
			name: "unknown weekday",
			mutate: func(s *Settings) {
				s.WorkingHours[time.Weekday(7)] = DaySetting{IsWorkingDay: true, StartTime: 9, EndTime: 17}
			},
			wantErr: true,
		},
		{
			name: "round the clock",
			mutate: func(s *Settings) {
				s.WorkingHours[time.Saturday] = DaySetting{IsWorkingDay: true, StartTime: 0, EndTime: 24}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() error = %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestSettingsClone(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.WorkingHours[time.Monday] = DaySetting{IsWorkingDay: false}

	if !s.WorkingHours[time.Monday].IsWorkingDay {
		t.Error("mutating the clone changed the original")
	}
}

func TestDaySettingContains(t *testing.T) {
	ds := DaySetting{IsWorkingDay: true, StartTime: 9, EndTime: 17}

	if !ds.Contains(9) {
		t.Error("start hour should be inside the window")
	}
	if ds.Contains(17) {
		t.Error("end hour should be outside the window")
	}
	if ds.Contains(8) {
		t.Error("hour before start should be outside the window")
	}

	off := DaySetting{IsWorkingDay: false, StartTime: 9, EndTime: 17}
	if off.Contains(10) {
		t.Error("a day off contains no hours")
	}
}
