package settings

import (
	"fmt"
	"net/url"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Church   *string `help:"Church name used in share messages and reports."`
	Seed     *string `help:"Seed dataset path or URL. Empty disables seeding."`
	Timezone *string `help:"IANA timezone used for 'today' (or 'Local')."`
	Schedule *string `help:"Cron schedule for automatic backups (e.g. '@daily' or '0 22 * * 0')."`
	Webhook  *string `help:"URL that receives notifications. Empty prints them to stderr."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		seed := settings.SeedSource
		if seed == "" {
			seed = "(none)"
		}
		webhook := settings.NotifyWebhook
		if webhook == "" {
			webhook = "(stderr)"
		}
		ctx.Println("Current Settings:")
		ctx.Printf("  Church Name:      %s\n", settings.ChurchName)
		ctx.Printf("  Seed Source:      %s\n", seed)
		ctx.Printf("  Timezone:         %s\n", settings.Timezone)
		ctx.Println("\nBackup Settings:")
		ctx.Printf("  Backup Schedule:  %s\n", settings.BackupSchedule)
		ctx.Printf("  Notify Webhook:   %s\n", webhook)
		return nil
	}

	updated := false
	if c.Church != nil {
		if *c.Church == "" {
			return fmt.Errorf("church name cannot be empty")
		}
		settings.ChurchName = *c.Church
		updated = true
	}
	if c.Seed != nil {
		settings.SeedSource = *c.Seed
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Schedule != nil {
		if err := backup.ValidateSchedule(*c.Schedule); err != nil {
			return err
		}
		settings.BackupSchedule = *c.Schedule
		updated = true
	}
	if c.Webhook != nil {
		if *c.Webhook != "" {
			u, err := url.Parse(*c.Webhook)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid webhook URL: %s", *c.Webhook)
			}
		}
		settings.NotifyWebhook = *c.Webhook
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.InvalidateSettings()
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
