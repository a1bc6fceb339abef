package main

import (
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/dentaplan/internal/cli"
	"github.com/julianstephens/dentaplan/internal/cli/appointments"
	"github.com/julianstephens/dentaplan/internal/cli/backups"
	"github.com/julianstephens/dentaplan/internal/cli/calendar"
	"github.com/julianstephens/dentaplan/internal/cli/patients"
	"github.com/julianstephens/dentaplan/internal/cli/settings"
	"github.com/julianstephens/dentaplan/internal/cli/system"
	"github.com/julianstephens/dentaplan/internal/constants"
	"github.com/julianstephens/dentaplan/internal/errors"
	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, .json file or PostgreSQL URL. Empty uses the keyring, then ${default_path}." env:"DENTAPLAN_CONFIG"`
	Debug    bool   `help:"Log debug output to stderr."`
	Timezone string `help:"IANA timezone for dates, e.g. Europe/Berlin." env:"DENTAPLAN_TZ"`

	Init       system.InitCmd     `cmd:"" help:"Initialize dentaplan storage."`
	Migrate    system.MigrateCmd  `cmd:"" help:"Apply pending database migrations."`
	Doctor     system.DoctorCmd   `cmd:"" help:"Run health checks."`
	Tui        system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	DebugTools system.DebugCmd    `cmd:"" name:"debug" help:"Debugging helpers."`
	Validate   system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Keyring    system.ConfigCmd   `cmd:"" name:"config" help:"Manage the stored database connection."`

	Setup    settings.SetupCmd    `cmd:"" help:"Configure working days and hours."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change settings."`

	Patient patients.PatientCmd  `cmd:"" help:"Manage patients."`
	Appt    appointments.ApptCmd `cmd:"" help:"Book and cancel appointments."`
	Backup  backups.BackupCmd    `cmd:"" help:"Manage database backups."`

	Calendar  calendar.CalendarCmd  `cmd:"" help:"Show the appointment calendar."`
	Dashboard calendar.DashboardCmd `cmd:"" help:"Show today's overview."`
	Report    calendar.ReportCmd    `cmd:"" help:"Show appointment statistics."`
	Export    calendar.ExportCmd    `cmd:"" help:"Write a week's schedule to a text file."`
}

// skipLoad lists commands that manage the store themselves.
var skipLoad = []string{"init", "migrate", "doctor", "config", "debug db-path", "debug log-path"}

func needsLoad(command string) bool {
	for _, prefix := range skipLoad {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Dental clinic appointment scheduler"),
		kong.UsageOnError(),
		kong.Vars{
			"version":      constants.Version,
			"default_path": constants.DefaultConfigPath,
		},
	)

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	configDir := cli.ConfigDir(store)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "store", store.GetConfigPath())

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	if needsLoad(kctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatalf("failed to open storage (run 'dentaplan init' first?): %v", err)
		}
	}

	appCtx := cli.NewContext(store, configDir, loc)
	errors.Fatal(kctx.Run(appCtx))
}
