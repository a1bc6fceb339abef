package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/storage/sqlite"
)

func setupStore(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dentaplan.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := store.SavePatients(map[string]models.Patient{"p1": {ID: "p1", Name: "Jane"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func fixedClock(t *testing.T, start time.Time) {
	t.Helper()
	current := start
	saved := nowFunc
	nowFunc = func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
	t.Cleanup(func() { nowFunc = saved })
}

func patients(t *testing.T, dbPath string) map[string]models.Patient {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer store.Close()
	p, err := store.GetPatients()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written to %s", path)
	}
	if got := patients(t, path); got["p1"].Name != "Jane" {
		t.Errorf("backup contents = %+v", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestSameSecondBackupsGetCounter(t *testing.T) {
	dbPath := setupStore(t)
	saved := nowFunc
	nowFunc = func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local) }
	defer func() { nowFunc = saved }()

	mgr := NewManager(dbPath)
	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("backups overwrote each other")
	}
	if filepath.Base(second) != "dentaplan-20250602-090000-1.db" {
		t.Errorf("second backup = %s", filepath.Base(second))
	}

	list, err := mgr.ListBackups()
	if err != nil || len(list) != 2 {
		t.Errorf("ListBackups() = %v, %v", list, err)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupStore(t)
	fixedClock(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local))

	mgr := NewManager(dbPath)
	mgr.keep = 3
	for i := 0; i < 5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}

	list, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("kept %d backups, want 3", len(list))
	}
	if list[0].Name != "dentaplan-20250602-090004.db" {
		t.Errorf("newest backup = %s", list[0].Name)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "dentaplan-yesterday.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	list, err := mgr.ListBackups()
	if err != nil || len(list) != 0 {
		t.Errorf("ListBackups() = %v, %v", list, err)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupStore(t)
	fixedClock(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local))
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePatients(map[string]models.Patient{}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	safety, err := mgr.RestoreBackup(mgr.Resolve(filepath.Base(backupPath)))
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if safety == "" {
		t.Error("expected a safety backup of the replaced database")
	}
	if got := patients(t, dbPath); got["p1"].Name != "Jane" {
		t.Errorf("restored patients = %+v", got)
	}
	if got := patients(t, safety); len(got) != 0 {
		t.Errorf("safety backup should hold the pre-restore data, got %+v", got)
	}
}

func TestRestoreRejectsInvalidFile(t *testing.T) {
	dbPath := setupStore(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected error for invalid backup")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected error for missing backup")
	}
}
