package today

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			MarginTop(1)
)

type Model struct {
	recs   []models.AttendanceRecord
	loc    *time.Location
	Time   time.Time
	width  int
	height int
}

func New(loc *time.Location, now time.Time) Model {
	if loc == nil {
		loc = time.Local
	}
	return Model{
		loc:  loc,
		Time: now.In(loc),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetRecords(recs []models.AttendanceRecord) {
	m.recs = recs
}

// SetLocation changes the timezone "today" is computed in.
func (m *Model) SetLocation(loc *time.Location) {
	m.loc = loc
	m.Time = m.Time.In(loc)
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.ClockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Time = time.Time(msg).In(m.loc)
		return m, tick()
	}
	return m, nil
}

// Summary returns today's records in the configured timezone.
func (m Model) Summary() trend.DaySummary {
	return trend.Today(m.recs, m.Time)
}

func (m Model) View() string {
	d := m.Summary()

	var content string
	if len(d.Records) == 0 {
		content = "No records for today."
	} else {
		var cards []string
		for _, r := range d.Records {
			card := fmt.Sprintf("%s\n%d asistentes · %d niños · %d vehículos",
				r.Service.Label(), r.Attendees, r.Children, r.VehiclesTotal)
			if r.Notes != "" {
				card += "\n" + r.Notes
			}
			cards = append(cards, recordStyle.Render(card))
		}
		cards = append(cards, totalStyle.Render(
			fmt.Sprintf("TOTAL: %d asistentes · %d vehículos", d.Attendees, d.Vehicles)))
		content = lipgloss.JoinVertical(lipgloss.Center, cards...)
	}

	content = lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Hoy: %02d:%02d", m.Time.Hour(), m.Time.Minute())),
		dateStyle.Render(utils.FormatLongDate(d.Date)),
		content,
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
