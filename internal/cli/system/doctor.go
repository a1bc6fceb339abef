package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dentaplan/internal/backup"
	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/lock"
	"github.com/julianstephens/dentaplan/internal/storage/sqlite"
	"github.com/julianstephens/dentaplan/internal/validation"
)

// errSkipped marks a check that does not apply to the current backend.
var errSkipped = errors.New("not applicable")

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Data readable", run: checkDataReadable, needsDB: true},
	{name: "Clinic configured", run: checkConfigured, needsDB: true, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Session lock", run: checkLock, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			cli.Success("%s: OK", c.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			cli.Warn("%s: WARNING", c.name)
			fmt.Printf("   %v\n", err)
		default:
			cli.Fail("%s: FAIL", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == checks[0].name {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("%w: schema checks run on SQLite only", errSkipped)
	}

	current, latest, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'dentaplan migrate')", current, latest)
	}
	return nil
}

func checkDataReadable(ctx *cli.Context) error {
	_, err := ctx.State()
	return err
}

func checkConfigured(ctx *cli.Context) error {
	st := ctx.Session.State()
	if !st.Settings.IsConfigured {
		return fmt.Errorf("working hours have not been set up - run 'dentaplan setup'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	result := validation.New().ValidateState(ctx.Session.State())
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s) - run 'dentaplan validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return fmt.Errorf("%w: backups cover SQLite files only", errSkipped)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dentaplan backup create'")
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	if holder, held := lock.IsHeld(ctx.ConfigDir); held {
		return fmt.Errorf("a session (pid %d) has been running since %s", holder.PID, holder.Created.Format(time.RFC3339))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return fmt.Errorf("no timezone configured")
	}
	return nil
}
