package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/dentaplan/internal/backup"
	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/keyring"
	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/models"
	"github.com/julianstephens/dentaplan/internal/state"
	"github.com/julianstephens/dentaplan/internal/storage"
	"github.com/julianstephens/dentaplan/internal/storage/jsonfile"
	"github.com/julianstephens/dentaplan/internal/storage/postgres"
	"github.com/julianstephens/dentaplan/internal/storage/sqlite"
)

type Context struct {
	Store     storage.Provider
	Session   *state.Session
	Location  *time.Location
	ConfigDir string

	// Clock overrides the wall clock, mostly for tests.
	Clock func() time.Time
}

// NewContext wires a session over store. Location defaults to time.Local.
func NewContext(store storage.Provider, configDir string, loc *time.Location) *Context {
	if loc == nil {
		loc = time.Local
	}
	return &Context{
		Store:     store,
		Session:   state.NewSession(store),
		Location:  loc,
		ConfigDir: configDir,
	}
}

// Now returns the current time in the clinic's timezone.
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock().In(c.Location)
	}
	return time.Now().In(c.Location)
}

// State loads the session state from the store.
func (c *Context) State() (state.State, error) {
	if err := c.Session.Load(); err != nil {
		return state.State{}, fmt.Errorf("failed to load data: %w", err)
	}
	return c.Session.State(), nil
}

// IsSQLite reports whether the store is a SQLite file, the only backend
// with file backups.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore picks a backend for config: a PostgreSQL URL or DSN, a .json
// file, or a SQLite file. An empty config falls back to a connection string
// from the environment or keyring, then to the default SQLite path.
func OpenStore(config string) (storage.Provider, error) {
	if config == "" {
		if connStr, source, err := keyring.ResolveConnectionString(""); err == nil {
			logger.Debug("Using PostgreSQL connection", "source", source)
			config = connStr
		} else {
			config = constants.DefaultConfigPath
		}
	}

	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return jsonfile.New(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ConfigDir returns the directory holding the lockfile and logs for store.
// Non-file stores use the default config directory.
func ConfigDir(store storage.Provider) string {
	switch store.(type) {
	case *sqlite.Store, *jsonfile.Store:
		return filepath.Dir(store.GetConfigPath())
	}
	dir, err := ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return dir
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// ResolvePatient finds a patient by ID, or by a name that matches exactly
// one patient ignoring case.
func ResolvePatient(st state.State, ref string) (models.Patient, error) {
	ref = strings.TrimSpace(ref)
	if p, ok := st.Patient(ref); ok {
		return p, nil
	}

	var matches []models.Patient
	for _, p := range st.Patients {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.Patient{}, fmt.Errorf("patient not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Patient{}, fmt.Errorf("%d patients are named %q, use the patient ID", len(matches), ref)
	}
}
