package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/julianstephens/dentaplan/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	store := NewWithDB(db)
	t.Cleanup(func() {
		store.Close()
	})
	return store, mock
}

func TestGetSettingsMissingReturnsDefaults(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("dentalSettings").
		WillReturnError(sql.ErrNoRows)

	s, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error: %v", err)
	}
	if s.SlotDuration != 30 || s.IsConfigured {
		t.Errorf("expected defaults, got %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetAppointments(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"value"}).
		AddRow(`{"2025-06-02_09:00":{"id":"a1","patientId":"p1","procedure":"Cleaning","notes":"x-ray"}}`)
	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("dentalAppointments").
		WillReturnRows(rows)

	appts, err := store.GetAppointments()
	if err != nil {
		t.Fatalf("GetAppointments() error: %v", err)
	}
	a := appts[models.SlotKey{Date: "2025-06-02", Time: "09:00"}]
	if a.ID != "a1" || a.Notes != "x-ray" {
		t.Errorf("GetAppointments() = %+v", appts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSavePatientsUpserts(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO kv_store .* ON CONFLICT \(key\) DO UPDATE`).
		WithArgs("dentalPatients", `{"p1":{"id":"p1","name":"Jane","phone":"","email":"","dateOfBirth":"","address":"","medicalHistory":""}}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SavePatients(map[string]models.Patient{"p1": {ID: "p1", Name: "Jane"}})
	if err != nil {
		t.Fatalf("SavePatients() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestKeys(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT key FROM kv_store ORDER BY key").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("dentalPatients").AddRow("dentalSettings"))

	keys, err := store.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "dentalPatients" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestGetConfigPathHidesConnectionString(t *testing.T) {
	store := New("postgres://clinic@db.internal:5432/dentaplan")
	if store.GetConfigPath() != "postgresql" {
		t.Errorf("GetConfigPath() = %q", store.GetConfigPath())
	}
}
