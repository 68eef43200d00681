package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/tui/components/today"
	"github.com/julianstephens/headcount/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The clock keeps ticking whatever view is shown
	if msg, ok := msg.(today.TickMsg); ok {
		var cmd tea.Cmd
		m.TodayModel, cmd = m.TodayModel.Update(msg)
		return m, cmd
	}

	if handled, cmd := handlers.HandleBackupMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
		m.Help.Width = msg.Width
		if m.Form != nil {
			m.Form = m.Form.WithWidth(msg.Width)
		}
		return m, nil
	}

	// Forms own every key while open
	switch m.State {
	case constants.StateAddRecord:
		return m, handlers.HandleAddRecordState(&m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	}

	if handled, cmd := handlers.HandleHistoryMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSettingsMessages(&m.Model, msg); handled {
		return m, cmd
	}

	filtering := m.State == constants.StateHistory && m.HistoryModel.Filtering()
	if msg, ok := msg.(tea.KeyMsg); ok && !filtering {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		case m.State == constants.StateDashboard && key.Matches(msg, m.keys.Refresh):
			m.reload()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateDashboard:
		m.DashboardModel, cmd = m.DashboardModel.Update(msg)
	case constants.StateSunday:
		m.SundayModel, cmd = m.SundayModel.Update(msg)
	case constants.StateHistory:
		m.HistoryModel, cmd = m.HistoryModel.Update(msg)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	return m, cmd
}

// reload re-reads the seed dataset and local storage.
func (m *Model) reload() {
	if m.Bridge == nil {
		return
	}
	rs, err := m.Bridge.Load(context.Background())
	if err != nil {
		logger.Warn("Reload failed", "error", err)
		m.StatusMessage = "❌ Reload failed: " + err.Error()
		return
	}
	m.Records = rs
	m.Refresh()
	m.RefreshBackupStatus()
	m.StatusMessage = "✓ Data reloaded"
}
