package models

import (
	"github.com/julianstephens/headcount/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingChurchName:
			settings.ChurchName = value
		case constants.SettingSeedSource:
			settings.SeedSource = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingBackupSchedule:
			settings.BackupSchedule = value
		case constants.SettingNotifyWebhook:
			settings.NotifyWebhook = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingChurchName:     settings.ChurchName,
		constants.SettingSeedSource:     settings.SeedSource,
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingBackupSchedule: settings.BackupSchedule,
		constants.SettingNotifyWebhook:  settings.NotifyWebhook,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.ChurchName == "" {
		settings.ChurchName = constants.DefaultChurchName
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.BackupSchedule == "" {
		settings.BackupSchedule = constants.DefaultBackupSchedule
	}
}
