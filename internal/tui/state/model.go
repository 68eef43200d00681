package state

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/persistence"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/tui/components/dashboard"
	"github.com/julianstephens/headcount/internal/tui/components/history"
	"github.com/julianstephens/headcount/internal/tui/components/settings"
	"github.com/julianstephens/headcount/internal/tui/components/sunday"
	"github.com/julianstephens/headcount/internal/tui/components/today"
	"github.com/julianstephens/headcount/internal/utils"
	"github.com/julianstephens/headcount/internal/validation"
)

// Options wires a Model to storage and the loaded records.
type Options struct {
	Store    storage.Provider
	Bridge   *persistence.Bridge
	Records  *records.Store
	Settings models.Settings
	Location *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model represents the shared state for the TUI
type Model struct {
	Store    storage.Provider
	Bridge   *persistence.Bridge
	Records  *records.Store
	Settings models.Settings
	Location *time.Location
	Clock    func() time.Time

	State         constants.SessionState
	PreviousState constants.SessionState
	Help          help.Model

	DashboardModel dashboard.Model
	SundayModel    sunday.Model
	TodayModel     today.Model
	HistoryModel   history.Model
	SettingsModel  settings.Model

	Form         *huh.Form
	RecordForm   *RecordFormModel
	SettingsForm *SettingsFormModel

	BackupStatus        backup.Status
	ValidationWarning   string                // Validation warning message to display
	ValidationConflicts []validation.Conflict // Detailed conflict information
	FormError           string                // Error message to display for form operations
	StatusMessage       string                // Result of the last action
	Quitting            bool
	Width               int
	Height              int
}

// New creates a new state Model
func New(opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	rs := opts.Records
	if rs == nil {
		rs = records.New()
	}

	recs := rs.All()
	m := Model{
		Store:          opts.Store,
		Bridge:         opts.Bridge,
		Records:        rs,
		Settings:       opts.Settings,
		Location:       loc,
		Clock:          clock,
		State:          constants.StateDashboard,
		Help:           help.New(),
		DashboardModel: dashboard.New(opts.Settings.ChurchName, recs, 0, 0),
		SundayModel:    sunday.New(0, 0),
		TodayModel:     today.New(loc, clock()),
		HistoryModel:   history.New(recs, 0, 0),
		SettingsModel:  settings.New(opts.Settings, 0, 0),
	}
	m.Refresh()
	m.RefreshBackupStatus()
	return m
}

// Now returns the current time in the configured timezone.
func (m *Model) Now() time.Time {
	return m.Clock().In(m.Location)
}

// Refresh pushes the current records into every view.
func (m *Model) Refresh() {
	recs := m.Records.All()
	m.DashboardModel.SetRecords(m.Settings.ChurchName, recs)
	m.SundayModel.SetRecords(recs)
	m.TodayModel.SetRecords(recs)
	m.HistoryModel.SetRecords(recs)
	m.UpdateValidationStatus()
}

// RefreshBackupStatus re-reads the last backup time.
func (m *Model) RefreshBackupStatus() {
	if m.Bridge == nil {
		return
	}
	status, err := m.Bridge.BackupStatus(m.Now())
	if err != nil {
		return
	}
	m.BackupStatus = status
	m.DashboardModel.SetBackupStatus(status)
}

// SetSize resizes every view to the space left by the tabs and help.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
	h := height - 4
	m.DashboardModel.SetSize(width, h)
	m.SundayModel.SetSize(width, h)
	m.TodayModel.SetSize(width, h)
	m.HistoryModel.SetSize(width, h)
	m.SettingsModel.SetSize(width, h)
}

// AddRecord validates e, appends it and persists the record set.
func (m *Model) AddRecord(e validation.Entry) (models.AttendanceRecord, error) {
	if m.Bridge == nil {
		return models.AttendanceRecord{}, fmt.Errorf("storage is not available")
	}
	rec, err := validation.New().ValidateEntry(e)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	saved, err := m.Bridge.Append(m.Records, rec)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	m.Refresh()
	return saved, nil
}

// SaveSettings validates and stores the settings form.
func (m *Model) SaveSettings(fm *SettingsFormModel) error {
	next := m.Settings
	fm.Apply(&next)

	if next.ChurchName == "" {
		return fmt.Errorf("church name cannot be empty")
	}
	loc, err := utils.LoadLocation(next.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q", next.Timezone)
	}
	if err := backup.ValidateSchedule(next.BackupSchedule); err != nil {
		return err
	}

	if err := m.Store.SaveSettings(next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	m.Settings = next
	m.Location = loc
	m.TodayModel.SetLocation(loc)
	m.SettingsModel.SetSettings(next)
	m.Refresh()
	return nil
}

// CreateBackup writes a backup file of the current records.
func (m *Model) CreateBackup() (string, error) {
	if m.Bridge == nil {
		return "", fmt.Errorf("storage is not available")
	}
	path, err := m.Bridge.CreateBackup(m.Records)
	m.RefreshBackupStatus()
	return path, err
}
