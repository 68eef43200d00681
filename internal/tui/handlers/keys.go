package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/tui/state"
)

// Tabs lists the main views in tab order.
var Tabs = []constants.SessionState{
	constants.StateDashboard,
	constants.StateSunday,
	constants.StateToday,
	constants.StateHistory,
	constants.StateSettings,
}

func tabIndex(s constants.SessionState) int {
	for i, t := range Tabs {
		if t == s {
			return i
		}
	}
	return -1
}

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return true, tea.Quit
	case "tab", "shift+tab":
		i := tabIndex(m.State)
		if i < 0 {
			// In a sub-state (like a form), tab belongs to the form
			return false, nil
		}
		step := 1
		if msg.String() == "shift+tab" {
			step = len(Tabs) - 1
		}
		m.State = Tabs[(i+step)%len(Tabs)]
		m.StatusMessage = ""
		return true, nil
	}
	return false, nil
}
