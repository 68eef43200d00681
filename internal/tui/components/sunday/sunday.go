package sunday

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

type Model struct {
	viewport viewport.Model
	Summary  *trend.SundaySummary
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{
		viewport: vp,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Summary == nil {
		return "No Sunday records yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetRecords selects the most recent Sunday of recs.
func (m *Model) SetRecords(recs []models.AttendanceRecord) {
	if s, ok := trend.LastSunday(recs); ok {
		m.Summary = &s
	} else {
		m.Summary = nil
	}
	m.Render()
}

func line(label, value string) string {
	return fmt.Sprintf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

// Content renders the Sunday card.
func (m Model) Content() string {
	if m.Summary == nil {
		return "No Sunday records yet."
	}
	s := *m.Summary

	var b strings.Builder
	b.WriteString(dateStyle.Render(utils.FormatLongDate(s.Date)) + "\n\n")

	b.WriteString("Asistencia\n")
	for _, svc := range models.SundayServices {
		value := constants.NotRecorded
		if n, ok := s.ServiceAttendees(svc); ok {
			value = fmt.Sprintf("%d", n)
		}
		b.WriteString(line(svc.Label(), value))
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("TOTAL"), totalStyle.Render(fmt.Sprintf("%d", s.TotalAttendees()))))

	b.WriteString("Vehículos\n")
	b.WriteString(line("Impacto", fmt.Sprintf("%d", s.PrimaryVehicles())))
	b.WriteString(line("Little Feet", fmt.Sprintf("%d", s.SecondaryVehicles())))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("TOTAL"), totalStyle.Render(fmt.Sprintf("%d", s.TotalVehicles()))))
	return b.String()
}

func (m *Model) Render() {
	m.viewport.SetContent(m.Content())
}
