package state

import (
	"errors"
	"testing"

	"github.com/julianstephens/dentaplan/internal/models"
)

type fakeStore struct {
	settings     models.Settings
	patients     map[string]models.Patient
	appointments map[models.SlotKey]models.Appointment

	saves   map[string]int
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings:     models.DefaultSettings(),
		patients:     map[string]models.Patient{},
		appointments: map[models.SlotKey]models.Appointment{},
		saves:        map[string]int{},
	}
}

func (f *fakeStore) Init() error           { return nil }
func (f *fakeStore) Load() error           { return nil }
func (f *fakeStore) Close() error          { return nil }
func (f *fakeStore) GetConfigPath() string { return "memory" }

func (f *fakeStore) GetSettings() (models.Settings, error) { return f.settings, nil }
func (f *fakeStore) SaveSettings(s models.Settings) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.saves["settings"]++
	f.settings = s
	return nil
}

func (f *fakeStore) GetPatients() (map[string]models.Patient, error) { return f.patients, nil }
func (f *fakeStore) SavePatients(p map[string]models.Patient) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.saves["patients"]++
	f.patients = p
	return nil
}

func (f *fakeStore) GetAppointments() (map[models.SlotKey]models.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeStore) SaveAppointments(a map[models.SlotKey]models.Appointment) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.saves["appointments"]++
	f.appointments = a
	return nil
}

func TestSessionLoad(t *testing.T) {
	store := newFakeStore()
	store.patients["p1"] = models.Patient{ID: "p1", Name: "Jane"}

	s := NewSession(store)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if s.State().Patients["p1"].Name != "Jane" {
		t.Errorf("state = %+v", s.State())
	}
}

func TestSessionDispatchPersistsTouchedCollections(t *testing.T) {
	sequentialIDs(t)
	store := newFakeStore()
	s := NewSession(store)

	if _, err := s.Dispatch(SavePatient{Patient: models.Patient{Name: "Jane"}}); err != nil {
		t.Fatal(err)
	}
	if store.saves["patients"] != 1 || store.saves["appointments"] != 0 || store.saves["settings"] != 0 {
		t.Errorf("saves = %v", store.saves)
	}

	if _, err := s.Dispatch(BookAppointment{Key: monday9, Appointment: models.Appointment{PatientID: "id-1", Procedure: "Filling"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch(DeletePatient{ID: "id-1"}); err != nil {
		t.Fatal(err)
	}
	if store.saves["patients"] != 2 || store.saves["appointments"] != 2 {
		t.Errorf("saves = %v", store.saves)
	}
	if store.appointments[monday9].PatientID != "" {
		t.Errorf("persisted appointment not orphaned: %+v", store.appointments[monday9])
	}
}

func TestSessionDispatchKeepsStateOnStoreFailure(t *testing.T) {
	store := newFakeStore()
	s := NewSession(store)
	store.failErr = errors.New("disk full")

	_, err := s.Dispatch(SavePatient{Patient: models.Patient{ID: "p1", Name: "Jane"}})
	if err == nil {
		t.Fatal("expected store error")
	}
	if len(s.State().Patients) != 0 {
		t.Error("state advanced despite failed write")
	}
}

func TestSessionDispatchValidationError(t *testing.T) {
	store := newFakeStore()
	s := NewSession(store)

	_, err := s.Dispatch(BookAppointment{Key: monday9})
	if !errors.Is(err, ErrInvalidAppointment) {
		t.Errorf("error = %v", err)
	}
	if store.saves["appointments"] != 0 {
		t.Error("rejected action was persisted")
	}
}

func TestSessionStateIsACopy(t *testing.T) {
	s := NewSession(newFakeStore())
	st := s.State()
	st.Patients["x"] = models.Patient{ID: "x", Name: "X"}
	if len(s.State().Patients) != 0 {
		t.Error("callers can mutate session state")
	}
}
