package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "headcount"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/headcount/headcount.db"
	Version            = "v0.3.0"

	// Local persistence keys. These match the keys used by the browser
	// edition so exported state files stay interchangeable.
	RecordsKey    = "churchAttendance"
	LastBackupKey = "lastBackup"

	// Backup constants
	MaxBackups        = 14
	BackupDirName     = "backups"
	BackupFilePrefix  = "headcount-"
	BackupFileSuffix  = ".json"
	BackupFormatVer   = "2.0"
	BackupFreshWindow = 24 * time.Hour
	BackupDueWindow   = 72 * time.Hour

	// Reporting
	DefaultChurchName = "IMPACTO SPS"
	NotAvailable      = "N/A"
	NotRecorded       = "N/D"

	// Notify constants
	NotificationDurationMs = 5000
	NotifyTimeout          = 5 * time.Second

	// TUI refresh intervals
	BackupStatusInterval = time.Minute
	ClockInterval        = time.Second
)

// Session States
const (
	StateDashboard SessionState = iota
	StateSunday
	StateToday
	StateHistory
	StateSettings
	StateAddRecord
	StateEditSettings
)
