package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/tui/handlers"
	"github.com/julianstephens/headcount/internal/tui/state"
)

type Model struct {
	state.Model
	keys KeyMap
}

func NewModel(opts state.Options) Model {
	return Model{
		Model: state.New(opts),
		keys:  DefaultKeyMap(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.State {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Backup, m.keys.Refresh)
	case constants.StateHistory:
		keys = append(keys, m.keys.Add)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.State {
	case constants.StateDashboard:
		actions = []key.Binding{m.keys.Backup, m.keys.Refresh}
	case constants.StateHistory:
		actions = []key.Binding{m.keys.Add}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.TodayModel.Init(), handlers.BackupStatusTick())
}
