package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/cli/attendance"
	"github.com/julianstephens/headcount/internal/cli/backups"
	"github.com/julianstephens/headcount/internal/cli/reports"
	"github.com/julianstephens/headcount/internal/cli/settings"
	"github.com/julianstephens/headcount/internal/cli/system"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/errors"
	"github.com/julianstephens/headcount/internal/keyring"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/storage/postgres"
	"github.com/julianstephens/headcount/internal/utils"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Storage path (.db for SQLite, .json for a JSON file) or PostgreSQL connection string without a password." type:"string" default:"~/.config/headcount/headcount.db" env:"HEADCOUNT_CONFIG"`
	DBConnection string `help:"PostgreSQL connection string. Falls back to HEADCOUNT_DB_CONNECTION, then the OS keyring." name:"db-connection"`
	Seed         string `help:"Seed dataset path or URL overriding the seed_source setting." env:"HEADCOUNT_SEED"`
	Timezone     string `help:"IANA timezone overriding the timezone setting." env:"HEADCOUNT_TIMEZONE"`
	Debug        bool   `help:"Write debug logs to stderr." env:"HEADCOUNT_DEBUG"`

	Init   system.InitCmd     `cmd:"" help:"Initialize headcount storage."`
	Add    attendance.AddCmd  `cmd:"" help:"Record attendance for a service."`
	List   attendance.ListCmd `cmd:"" help:"List recorded days, newest first."`
	Stats  reports.StatsCmd   `cmd:"" help:"Show attendance statistics."`
	Trend  reports.TrendCmd   `cmd:"" help:"Compare the last two months."`
	Sunday reports.SundayCmd  `cmd:"" help:"Summarize the most recent Sunday."`
	Today  reports.TodayCmd   `cmd:"" help:"Show today's records."`
	Export reports.ExportCmd  `cmd:"" help:"Export a report as CSV, XLSX or JSON."`
	Share  reports.ShareCmd   `cmd:"" help:"Build a share message and link."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
		Status  backups.BackupStatusCmd  `cmd:"" help:"Show how recent the last backup is."`
	} `cmd:"" help:"Manage backups."`
	Watch    backups.WatchCmd     `cmd:"" help:"Run automatic backups on a schedule."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check records for duplicates and invalid values."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd   `cmd:"" hidden:"" help:"Send a notification (used internally)."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Church attendance tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := openStore()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		SeedSource: CLI.Seed,
		Timezone:   CLI.Timezone,
	}

	// Init handles its own loading; keyring commands never touch storage
	if needsStore(ctx) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func needsStore(ctx *kong.Context) bool {
	cmd := ctx.Command()
	return !strings.HasPrefix(cmd, "init") && !strings.HasPrefix(cmd, "keyring")
}

// openStore prefers a PostgreSQL connection from the flag, the environment
// or the keyring, and otherwise opens the configured path. Credentials from
// those sources never appear on the command line, so they may carry a
// password.
func openStore() (storage.Provider, error) {
	conn, source := keyring.ResolveConnectionString(CLI.DBConnection, os.Getenv(constants.EnvDBConnection))
	switch source {
	case keyring.SourceNone:
	case keyring.SourceFlag:
		if _, err := postgres.ValidateConnString(conn); err != nil {
			return nil, err
		}
		return postgres.New(conn), nil
	default:
		logger.Debug("Using PostgreSQL connection", "source", source)
		return postgres.New(conn), nil
	}

	path := CLI.Config
	if !storage.IsPostgres(path) {
		expanded, err := utils.ExpandHome(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		path = expanded
	}
	return storage.Open(path)
}

// configDir is where logs live: beside a file store, or under the default
// config directory for PostgreSQL.
func configDir(config string) string {
	if storage.IsPostgres(config) {
		config = constants.DefaultConfigPath
	}
	if expanded, err := utils.ExpandHome(config); err == nil {
		config = expanded
	}
	return filepath.Dir(config)
}
