package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/utils"
)

// AddRecordMsg asks for the record form. An empty Date means today.
type AddRecordMsg struct {
	Date string
}

type Item struct {
	Day stats.DayGroup
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · %d asistentes · %d vehículos",
		utils.FormatLongDate(i.Day.Date), i.Day.Attendees, i.Day.Vehicles)
}

func (i Item) Description() string {
	parts := make([]string, 0, len(i.Day.Records))
	for _, r := range i.Day.Records {
		parts = append(parts, fmt.Sprintf("%s: %d", r.Service.ShortLabel(), r.Attendees))
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Day.Date }

type KeyMap struct {
	Add       key.Binding
	AddForDay key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add record"),
		),
		AddForDay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add to this day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// items groups recs by day, newest first.
func items(recs []models.AttendanceRecord) []list.Item {
	days := stats.GroupByDate(recs)
	out := make([]list.Item, len(days))
	for i, d := range days {
		out[len(days)-1-i] = Item{Day: d}
	}
	return out
}

func New(recs []models.AttendanceRecord, width, height int) Model {
	l := list.New(items(recs), list.NewDefaultDelegate(), width, height)
	l.Title = "Historial"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.AddForDay}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.AddForDay}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetRecords(recs []models.AttendanceRecord) {
	m.list.SetItems(items(recs))
}

// Days returns the listed days in display order.
func (m Model) Days() []stats.DayGroup {
	var out []stats.DayGroup
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i.Day)
		}
	}
	return out
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddRecordMsg{} }
		case key.Matches(msg, m.keys.AddForDay):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AddRecordMsg{Date: i.Day.Date} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No records yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
