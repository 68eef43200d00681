package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/tui/components/settings"
	"github.com/julianstephens/headcount/internal/tui/state"
)

// HandleEditSettingsState drives the settings form until it is saved or
// cancelled. A failed save reopens the form with the entered values.
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		closeSettingsForm(m)
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}

	switch m.Form.State {
	case huh.StateCompleted:
		before := m.Settings
		if err := m.SaveSettings(m.SettingsForm); err != nil {
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form = NewSettingsForm(m.SettingsForm)
			return m.Form.Init()
		}
		closeSettingsForm(m)
		m.StatusMessage = "✓ Settings saved"
		if before.SeedSource != m.Settings.SeedSource || before.NotifyWebhook != m.Settings.NotifyWebhook {
			m.StatusMessage += ". Seed and webhook changes apply on next start."
		}
	case huh.StateAborted:
		closeSettingsForm(m)
	}
	return cmd
}

func closeSettingsForm(m *state.Model) {
	m.FormError = ""
	m.Form = nil
	m.SettingsForm = nil
	m.State = constants.StateSettings
}

// HandleSettingsMessages opens the settings form from the settings tab.
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	if _, ok := msg.(settings.EditSettingsMsg); !ok {
		return false, nil
	}
	m.FormError = ""
	m.SettingsForm = state.NewSettingsFormModel(m.Settings)
	m.Form = NewSettingsForm(m.SettingsForm)
	m.State = constants.StateEditSettings
	return true, m.Form.Init()
}
