package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/validation"
)

// RecordFormModel represents the form model for a new attendance record.
// Counts are kept as text so the form can show empty fields.
type RecordFormModel struct {
	Date      string
	Service   models.Service
	Attendees string
	Children  string
	Primary   string
	Secondary string
	Offering  string
	Notes     string
}

// NewRecordFormModel returns a form model for a record dated today.
func NewRecordFormModel(today string) *RecordFormModel {
	return &RecordFormModel{
		Date:    today,
		Service: models.Service9AM,
	}
}

// ParseCount parses an optional non-negative count; empty means zero.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("must be a whole number")
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}

// Entry converts the form into an entry ready for validation.
func (fm *RecordFormModel) Entry() (validation.Entry, error) {
	e := validation.Entry{
		Date:     strings.TrimSpace(fm.Date),
		Service:  string(fm.Service),
		Offering: fm.Offering,
		Notes:    fm.Notes,
	}

	fields := []struct {
		name string
		in   string
		out  *int
	}{
		{"attendees", fm.Attendees, &e.Attendees},
		{"children", fm.Children, &e.Children},
		{"main vehicles", fm.Primary, &e.Primary},
		{"Little Feet vehicles", fm.Secondary, &e.Secondary},
	}
	for _, f := range fields {
		n, err := ParseCount(f.in)
		if err != nil {
			return validation.Entry{}, fmt.Errorf("%s %w", f.name, err)
		}
		*f.out = n
	}
	return e, nil
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	ChurchName     string
	SeedSource     string
	Timezone       string
	BackupSchedule string
	NotifyWebhook  string
}

// NewSettingsFormModel copies s into a form model.
func NewSettingsFormModel(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		ChurchName:     s.ChurchName,
		SeedSource:     s.SeedSource,
		Timezone:       s.Timezone,
		BackupSchedule: s.BackupSchedule,
		NotifyWebhook:  s.NotifyWebhook,
	}
}

// Apply writes the form values onto s.
func (fm *SettingsFormModel) Apply(s *models.Settings) {
	s.ChurchName = strings.TrimSpace(fm.ChurchName)
	s.SeedSource = strings.TrimSpace(fm.SeedSource)
	s.Timezone = strings.TrimSpace(fm.Timezone)
	s.BackupSchedule = strings.TrimSpace(fm.BackupSchedule)
	s.NotifyWebhook = strings.TrimSpace(fm.NotifyWebhook)
}
