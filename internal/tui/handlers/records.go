package handlers

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/tui/components/history"
	"github.com/julianstephens/headcount/internal/tui/state"
	"github.com/julianstephens/headcount/internal/utils"
)

// HandleAddRecordState handles the add record state
func HandleAddRecordState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
		m.State = m.PreviousState
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		cmds = append(cmds, SubmitRecordForm(m))
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		m.State = m.PreviousState
	}
	return tea.Batch(cmds...)
}

// SubmitRecordForm saves the completed record form. On failure the form is
// reopened with the error shown.
func SubmitRecordForm(m *state.Model) tea.Cmd {
	entry, err := m.RecordForm.Entry()
	if err == nil {
		rec, addErr := m.AddRecord(entry)
		if addErr == nil {
			m.FormError = ""
			m.StatusMessage = fmt.Sprintf("✓ Recorded %s, %s: %d attendees",
				utils.FormatLongDate(rec.Date), rec.Service.Label(), rec.Attendees)
			m.State = m.PreviousState
			return nil
		}
		err = addErr
	}

	if errors.Is(err, records.ErrDuplicate) {
		m.FormError = fmt.Sprintf("%s already has a %s record",
			utils.FormatLongDate(m.RecordForm.Date), m.RecordForm.Service.Label())
	} else {
		m.FormError = "Failed to add record: " + err.Error()
	}

	// Stay in form state to allow retry
	m.Form = NewRecordForm(m.RecordForm)
	return m.Form.Init()
}

// OpenRecordForm switches to the add record form for date, or today when
// date is empty.
func OpenRecordForm(m *state.Model, date string) tea.Cmd {
	if date == "" {
		date = utils.DateOf(m.Now())
	}
	m.RecordForm = state.NewRecordFormModel(date)
	m.Form = NewRecordForm(m.RecordForm)
	m.FormError = ""
	m.PreviousState = m.State
	m.State = constants.StateAddRecord
	return m.Form.Init()
}

// HandleHistoryMessages handles messages from the history component
func HandleHistoryMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case history.AddRecordMsg:
		return true, OpenRecordForm(m, msg.Date)
	}
	return false, nil
}
