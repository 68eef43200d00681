package models

// Settings represents application-wide settings
type Settings struct {
	ChurchName     string `json:"church_name"`     // heading used in share messages, e.g. "IMPACTO SPS"
	SeedSource     string `json:"seed_source"`     // path or http(s) URL of the seed dataset; empty disables seeding
	Timezone       string `json:"timezone"`        // IANA timezone name (e.g. "America/Tegucigalpa", or "Local" for system timezone)
	BackupSchedule string `json:"backup_schedule"` // cron spec for automatic backups, e.g. "@daily"
	NotifyWebhook  string `json:"notify_webhook"`  // URL that receives restore and backup notifications; empty prints to stderr
}
