package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/report"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

// CreateBackupMsg asks for a backup to be written now.
type CreateBackupMsg struct{}

const barWidth = 24

type Model struct {
	church   string
	recs     []models.AttendanceRecord
	status   backup.Status
	width    int
	height   int
	viewport viewport.Model
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1)

	statusStyles = map[backup.Level]lipgloss.Style{
		backup.Fresh:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		backup.Due:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		backup.Overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func New(church string, recs []models.AttendanceRecord, width, height int) Model {
	m := Model{
		church:   church,
		recs:     recs,
		status:   backup.StatusAt(time.Time{}, time.Now()),
		width:    width,
		height:   height,
		viewport: viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

func (m *Model) SetRecords(church string, recs []models.AttendanceRecord) {
	m.church = church
	m.recs = recs
	m.updateViewportContent()
}

func (m *Model) SetBackupStatus(status backup.Status) {
	m.status = status
	m.updateViewportContent()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "b":
			return m, func() tea.Msg { return CreateBackupMsg{} }
		}
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

// Content renders the dashboard without the viewport.
func (m Model) Content() string {
	var sections []string

	sections = append(sections, titleStyle.Render(utils.Upper(m.church)))
	sections = append(sections, report.QuickSummary(m.recs))

	if len(m.recs) > 0 {
		sections = append(sections, sectionStyle.Render(
			sectionTitleStyle.Render("Distribución por servicio")+"\n"+m.distribution()))
		sections = append(sections, sectionStyle.Render(
			sectionTitleStyle.Render("Tendencia mensual")+"\n"+m.trend()))
	} else {
		sections = append(sections, sectionStyle.Render(
			emptyStyle.Render("No hay registros. Press 'a' in History to add one.")))
	}

	status := statusStyles[m.status.Level].Render(
		fmt.Sprintf("Backup %s: %s", m.status.Level, m.status.Describe()))
	sections = append(sections, sectionStyle.Render(status))

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(1).
		Render("Press 'b' to back up now")
	sections = append(sections, helpText)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) distribution() string {
	d := stats.ServiceDistribution(m.recs)
	rows := []struct {
		label string
		value int
	}{
		{models.Service9AM.Label(), d.NineAM},
		{models.Service11AM.Label(), d.ElevenAM},
		{models.Service5PM.Label(), d.FivePM},
		{"Otros", d.Other},
	}

	max := 0
	for _, r := range rows {
		if r.value > max {
			max = r.value
		}
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-9s %s %d (%s%%)", r.label,
			barStyle.Render(report.Bar(r.value, max, barWidth)), r.value, report.Percent(r.value, d.Total())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) trend() string {
	t, err := trend.MonthOverMonth(stats.MonthlyRollup(m.recs))
	if errors.Is(err, trend.ErrInsufficientData) {
		return emptyStyle.Render("Se necesitan al menos dos meses de datos.")
	}
	if err != nil {
		return emptyStyle.Render(err.Error())
	}
	return report.TrendMessage(t)
}

func (m *Model) updateViewportContent() {
	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 2).Render(m.Content()))
}
