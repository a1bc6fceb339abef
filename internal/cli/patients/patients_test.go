package patients

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := cli.NewContext(store, tempDir, time.UTC)
	ctx.Clock = func() time.Time { return time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC) }
	return ctx
}

func strPtr(s string) *string { return &s }

func addPatient(t *testing.T, ctx *cli.Context, name string) models.Patient {
	t.Helper()
	if err := (&PatientAddCmd{Name: name, Phone: "555-0100"}).Run(ctx); err != nil {
		t.Fatalf("add %s failed: %v", name, err)
	}
	p, err := cli.ResolvePatient(ctx.Session.State(), name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPatientAddCmd(t *testing.T) {
	ctx := setupTestDB(t)
	p := addPatient(t, ctx, "Jane Doe")

	stored, err := ctx.Store.GetPatients()
	if err != nil {
		t.Fatal(err)
	}
	got, ok := stored[p.ID]
	if !ok {
		t.Fatalf("patient %s not persisted", p.ID)
	}
	if got.Name != "Jane Doe" || got.Phone != "555-0100" {
		t.Errorf("stored patient = %+v", got)
	}
}

func TestPatientEditCmd(t *testing.T) {
	ctx := setupTestDB(t)
	p := addPatient(t, ctx, "Jane Doe")

	cmd := &PatientEditCmd{Patient: p.ID, Email: strPtr("jane@example.com"), Name: strPtr("Jane Smith")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	st := ctx.Session.State()
	got := st.Patients[p.ID]
	if got.Name != "Jane Smith" || got.Email != "jane@example.com" || got.Phone != "555-0100" {
		t.Errorf("edited patient = %+v", got)
	}
	if len(st.Patients) != 1 {
		t.Errorf("edit must not create a patient, have %d", len(st.Patients))
	}
}

func TestPatientEditCmd_RejectsBlankName(t *testing.T) {
	ctx := setupTestDB(t)
	p := addPatient(t, ctx, "Jane Doe")

	if err := (&PatientEditCmd{Patient: p.ID, Name: strPtr("  ")}).Run(ctx); err == nil {
		t.Error("expected blank name to be rejected")
	}
	if ctx.Session.State().Patients[p.ID].Name != "Jane Doe" {
		t.Error("rejected edit changed the patient")
	}
}

func TestPatientDeleteCmd_OrphansAppointments(t *testing.T) {
	ctx := setupTestDB(t)
	p := addPatient(t, ctx, "Jane Doe")
	key := models.SlotKey{Date: "2025-06-05", Time: "10:00"}
	if _, err := ctx.Session.Dispatch(state.BookAppointment{
		Key:         key,
		Appointment: models.Appointment{PatientID: p.ID, Procedure: "Crown"},
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&PatientDeleteCmd{Patient: "jane doe", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	st := ctx.Session.State()
	if len(st.Patients) != 0 {
		t.Error("patient still present")
	}
	a, ok := st.Appointments[key]
	if !ok || !a.IsOrphaned() {
		t.Errorf("appointment should remain without a patient, got %+v ok=%v", a, ok)
	}
}

func TestPatientListAndShow(t *testing.T) {
	ctx := setupTestDB(t)
	p := addPatient(t, ctx, "Jane Doe")
	addPatient(t, ctx, "John Roe")

	if err := (&PatientListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
	if err := (&PatientListCmd{Search: "zzz"}).Run(ctx); err != nil {
		t.Errorf("empty list failed: %v", err)
	}
	if err := (&PatientShowCmd{Patient: p.ID}).Run(ctx); err != nil {
		t.Errorf("show failed: %v", err)
	}
	if err := (&PatientShowCmd{Patient: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown patient")
	}
}
