package constants

const (
	// Settings keys
	SettingChurchName     = "church_name"
	SettingSeedSource     = "seed_source"
	SettingTimezone       = "timezone"
	SettingBackupSchedule = "backup_schedule"
	SettingNotifyWebhook  = "notify_webhook"

	// Default Settings Values
	DefaultSeedSource     = ""
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultBackupSchedule = "@daily"
)
