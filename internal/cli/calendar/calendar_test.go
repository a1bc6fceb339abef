package calendar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/storage/sqlite"
)

// Wednesday 4 June 2025
var testNow = time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, tempDir, time.UTC)
	ctx.Clock = func() time.Time { return testNow }

	actions := []state.Action{
		state.SaveSettings{Settings: models.DefaultSettings()},
		state.SavePatient{Patient: models.Patient{ID: "p1", Name: "Jane Doe"}},
		state.BookAppointment{
			Key:         models.SlotKey{Date: "2025-06-04", Time: "11:00"},
			Appointment: models.Appointment{PatientID: "p1", Procedure: "Cleaning"},
		},
	}
	for _, a := range actions {
		if _, err := ctx.Session.Dispatch(a); err != nil {
			t.Fatalf("dispatch %T: %v", a, err)
		}
	}
	return ctx
}

func TestCalendarCmd(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name    string
		cmd     CalendarCmd
		wantErr bool
	}{
		{"weekly default", CalendarCmd{View: "weekly"}, false},
		{"daily tomorrow", CalendarCmd{View: "daily", Date: "tomorrow"}, false},
		{"monthly", CalendarCmd{View: "monthly", Date: "2025-07-01"}, false},
		{"minimal search", CalendarCmd{View: "minimal", Search: "jane"}, false},
		{"bad view", CalendarCmd{View: "yearly"}, true},
		{"bad date", CalendarCmd{View: "weekly", Date: "06/04/2025"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDashboardCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if err := (&DashboardCmd{Top: 5}).Run(ctx); err != nil {
		t.Errorf("dashboard failed: %v", err)
	}
}

func TestReportCmd(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name    string
		cmd     ReportCmd
		wantErr bool
	}{
		{"week", ReportCmd{Range: "week"}, false},
		{"month json", ReportCmd{Range: "month", JSON: true}, false},
		{"all", ReportCmd{Range: "all"}, false},
		{"bad range", ReportCmd{Range: "year"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportCmd(t *testing.T) {
	ctx := setupTestDB(t)
	out := t.TempDir()

	if err := (&ExportCmd{Out: out}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// the week of 4 June 2025 starts on Sunday 1 June
	path := filepath.Join(out, "DentaPlan_Schedule_2025-06-01.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "Jane Doe") || !strings.Contains(content, "Cleaning") {
		t.Errorf("export content missing appointment:\n%s", content)
	}

	if err := (&ExportCmd{Out: out, Date: "not-a-date"}).Run(ctx); err == nil {
		t.Error("expected error for invalid date")
	}
}
