package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "dentaplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dentaplan/dentaplan.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Display layouts
	DisplayDayFormat     = "January 2, 2006"
	DisplayMonthFormat   = "January 2006"
	DisplayHeaderFormat  = "Monday, January 2, 2006"
	DisplayShortDay      = "Mon 01/02"
	SlotKeySeparator     = "_"
	ExportFilePrefix     = "DentaPlan_Schedule_"
	ExportFileSuffix     = ".txt"
	ExportTitlePrefix    = "Dental Appointments - Week of "
	ExportEmptyWeek      = "No appointments scheduled for this week."
	UnknownPatientLabel  = "Unknown Patient"
	NotAvailableLabel    = "N/A"
	EnvConfig            = "DENTAPLAN_CONFIG"
	EnvTimezone          = "DENTAPLAN_TZ"
	EnvDBConnection      = "DENTAPLAN_DB_CONNECTION"
	LockfileName         = "dentaplan.lock"
	MinutesPerDay        = 24 * 60
	MaxSlotDurationMin   = MinutesPerDay
	DefaultDashboardTopN = 5

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dentaplan-"
	BackupFileSuffix = ".db"

	// Persisted collection keys. Snapshot files share them.
	KeySettings     = "dentalSettings"
	KeyPatients     = "dentalPatients"
	KeyAppointments = "dentalAppointments"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateCalendar
	StatePatients
	StateReports
	StateSettings
	StatePatientForm
	StateBookingForm
	StateSettingsForm
	StateConfirmDelete
)

// SlotDurationOptions are the durations offered by the settings forms.
var SlotDurationOptions = []int{15, 20, 30, 45, 60}

// WeekdayShortNames are the bucket labels used by per-weekday reports.
var WeekdayShortNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// LockStaleAfter is how old a lockfile may get before it is ignored even if
// the recorded PID happens to be alive.
const LockStaleAfter = 12 * time.Hour
