package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/headcount/internal/models"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, width, height int) Model {
	return Model{
		settings: settings,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sections []string

	// General Settings
	generalTitle := titleStyle.Render("General Settings")
	generalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("Church Name:"), valueStyle.Render(m.settings.ChurchName)),
		fmt.Sprintf("%s %s", labelStyle.Render("Timezone:"), valueStyle.Render(m.settings.Timezone)),
		fmt.Sprintf("%s %s", labelStyle.Render("Seed Source:"), valueStyle.Render(orNone(m.settings.SeedSource))),
	)
	sections = append(sections, sectionStyle.Render(generalTitle+"\n"+generalContent))

	// Backup Settings
	backupTitle := titleStyle.Render("Backups & Notifications")
	backupContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("Backup Schedule:"), valueStyle.Render(m.settings.BackupSchedule)),
		fmt.Sprintf("%s %s", labelStyle.Render("Notification Webhook:"), valueStyle.Render(orNone(m.settings.NotifyWebhook))),
	)
	sections = append(sections, sectionStyle.Render(backupTitle+"\n"+backupContent))

	// Help text
	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit settings")

	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(2, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
