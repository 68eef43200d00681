package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/tui/handlers"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateDashboard: "Resumen",
	constants.StateSunday:    "Domingo",
	constants.StateToday:     "Hoy",
	constants.StateHistory:   "Historial",
	constants.StateSettings:  "Ajustes",
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateDashboard:
		content = m.DashboardModel.View()
	case constants.StateSunday:
		content = docStyle.Render(m.SundayModel.View())
	case constants.StateToday:
		content = m.TodayModel.View()
	case constants.StateHistory:
		content = docStyle.Render(m.HistoryModel.View())
	case constants.StateSettings:
		content = m.SettingsModel.View()
	case constants.StateAddRecord, constants.StateEditSettings:
		content = m.viewForm()
	}

	var banner string
	if m.ValidationWarning != "" && m.State == constants.StateDashboard {
		banner = m.viewConflictBanner()
	}

	var status string
	if m.StatusMessage != "" {
		status = statusStyle.Render(m.StatusMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		status,
		content,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, s := range handlers.Tabs {
		if m.State == s {
			tabs = append(tabs, activeTabStyle.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	if m.Form == nil {
		return ""
	}
	form := m.Form.View()
	if m.FormError != "" {
		form = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.FormError), form)
	}
	return docStyle.Render(form)
}

func (m Model) viewConflictBanner() string {
	return bannerStyle.Render(m.ValidationWarning + " · run 'headcount validate' for details")
}
