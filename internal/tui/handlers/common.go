package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/tui/state"
	"github.com/julianstephens/headcount/internal/utils"
)

func validateCount(s string) error {
	_, err := state.ParseCount(s)
	return err
}

// serviceOptions lists every service with its display label.
func serviceOptions() []huh.Option[models.Service] {
	opts := make([]huh.Option[models.Service], 0, len(models.AllServices))
	for _, s := range models.AllServices {
		opts = append(opts, huh.NewOption(s.Label(), s))
	}
	return opts
}

// NewRecordForm creates a new form for entering an attendance record
func NewRecordForm(fm *state.RecordFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fecha (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if !utils.ValidateDateFormat(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[models.Service]().
				Title("Servicio").
				Options(serviceOptions()...).
				Value(&fm.Service),
			huh.NewInput().
				Title("Asistentes").
				Value(&fm.Attendees).
				Validate(validateCount),
			huh.NewInput().
				Title("Niños").
				Value(&fm.Children).
				Validate(validateCount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Vehículos Impacto").
				Value(&fm.Primary).
				Validate(validateCount),
			huh.NewInput().
				Title("Vehículos Little Feet").
				Description("Leave empty when the shuttle did not run").
				Value(&fm.Secondary).
				Validate(validateCount),
			huh.NewInput().
				Title("Ofrenda").
				Value(&fm.Offering),
			huh.NewText().
				Title("Notas (optional)").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Church Name").
				Value(&fm.ChurchName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("church name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Seed Source").
				Description("Path or URL of the seed dataset. Leave empty to disable.").
				Value(&fm.SeedSource),
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Examples: Local, UTC, America/Tegucigalpa").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Backup Schedule").
				Description("Cron spec, e.g. @daily or 0 22 * * 0").
				Value(&fm.BackupSchedule).
				Validate(func(s string) error {
					return backup.ValidateSchedule(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Notification Webhook").
				Description("Leave empty to print notifications").
				Value(&fm.NotifyWebhook),
		),
	).WithTheme(huh.ThemeDracula())
}
