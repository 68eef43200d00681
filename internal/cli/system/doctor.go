package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/utils"
	"github.com/julianstephens/headcount/internal/validation"
)

type DoctorCmd struct{}

// checkResult is the outcome of one diagnostic. A warning is reported but
// does not fail the run.
type checkResult struct {
	err     error
	warning bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, res checkResult) {
		switch {
		case res.err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case res.warning:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", res.err)
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", res.err)
			hasError = true
		}
	}
	skip := func(name string) {
		ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", name)
	}

	// Check 1: storage reachable
	dbReachable := false
	if err := checkDBReachable(ctx); err != nil {
		report("Storage reachable", checkResult{err: err})
	} else {
		report("Storage reachable", checkResult{})
		dbReachable = true
	}

	// Checks 2 and 3 only apply to SQL-backed storage
	if dbReachable {
		report("Schema version", checkResult{err: checkSchemaVersion(ctx)})
		report("Migrations complete", checkResult{err: checkMigrationsComplete(ctx)})
	} else {
		skip("Schema version")
		skip("Migrations complete")
	}

	// Check 4: backups present (warning only)
	report("Backups present", checkResult{err: checkBackupsPresent(ctx), warning: true})

	// Check 5: backup freshness (warning only)
	if dbReachable {
		report("Backup freshness", checkResult{err: checkBackupFreshness(ctx), warning: true})
	} else {
		skip("Backup freshness")
	}

	// Check 6: duplicate records
	if dbReachable {
		dupes, warnings := checkRecords(ctx)
		report("Unique records", checkResult{err: dupes})
		report("Data validation", checkResult{err: warnings, warning: true})
	} else {
		skip("Unique records")
		skip("Data validation")
	}

	// Check 7: clock and timezone
	report("Clock/timezone", checkResult{err: checkClockTimezone(ctx)})

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if m, ok := ctx.Store.(storage.Migrator); ok {
		return m.Ping()
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON store doesn't have a schema version
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkBackupFreshness(ctx *cli.Context) error {
	last, err := ctx.Store.GetLastBackup()
	if err != nil {
		return fmt.Errorf("failed to read last backup time: %w", err)
	}

	status := backup.StatusAt(last, time.Now())
	if status.Level == backup.Overdue {
		return fmt.Errorf("backup overdue: %s", status.Describe())
	}
	return nil
}

// checkRecords splits record problems into duplicates, which break the
// (date, service) key, and everything else, which aggregation tolerates.
func checkRecords(ctx *cli.Context) (dupes error, warnings error) {
	recs, err := ctx.Store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records: %w", err), nil
	}

	result := validation.New().ValidateRecords(recs)
	var nDupes, nOther int
	for _, c := range result.Conflicts {
		if c.Type == validation.ConflictDuplicateRecord {
			nDupes++
		} else {
			nOther++
		}
	}

	if nDupes > 0 {
		dupes = fmt.Errorf("found %d duplicated (date, service) keys (run '%s validate --fix')", nDupes, constants.AppName)
	}
	if nOther > 0 {
		warnings = fmt.Errorf("found %d record issue(s) (run '%s validate' for details)", nOther, constants.AppName)
	}
	return dupes, warnings
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	return nil
}
