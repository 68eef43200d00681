package constants

// Environment variables read by the CLI. Each mirrors a global flag.
const (
	EnvConfig       = "HEADCOUNT_CONFIG"
	EnvSeed         = "HEADCOUNT_SEED"
	EnvTimezone     = "HEADCOUNT_TIMEZONE"
	EnvDebug        = "HEADCOUNT_DEBUG"
	EnvDBConnection = "HEADCOUNT_DB_CONNECTION"
)
