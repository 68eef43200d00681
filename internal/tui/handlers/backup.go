package handlers

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/tui/components/dashboard"
	"github.com/julianstephens/headcount/internal/tui/state"
)

// BackupStatusTickMsg triggers a re-read of the backup status.
type BackupStatusTickMsg time.Time

// BackupStatusTick schedules the next backup status refresh.
func BackupStatusTick() tea.Cmd {
	return tea.Tick(constants.BackupStatusInterval, func(t time.Time) tea.Msg {
		return BackupStatusTickMsg(t)
	})
}

// HandleBackupMessages handles backup requests and status ticks
func HandleBackupMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case BackupStatusTickMsg:
		m.RefreshBackupStatus()
		return true, BackupStatusTick()
	case dashboard.CreateBackupMsg:
		path, err := m.CreateBackup()
		if err != nil {
			logger.Warn("Backup from dashboard failed", "error", err)
			m.StatusMessage = "❌ Backup failed: " + err.Error()
			return true, nil
		}
		m.StatusMessage = "✓ Backup created: " + path
		return true, nil
	}
	return false, nil
}
