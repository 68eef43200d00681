package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/headcount/internal/models"
)

// ErrNotLoaded is returned when a provider is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider persists the attendance record sequence, the last backup time
// and settings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Records are returned in the order they were saved.
	GetAllRecords() ([]models.AttendanceRecord, error)
	// SaveRecords replaces the stored sequence with recs.
	SaveRecords(recs []models.AttendanceRecord) error

	// GetLastBackup returns the zero time when no backup was recorded.
	GetLastBackup() (time.Time, error)
	SetLastBackup(time.Time) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by providers backed by a versioned SQL schema.
type Migrator interface {
	Ping() error
	// SchemaVersion reports the applied and the newest embedded version.
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
}
