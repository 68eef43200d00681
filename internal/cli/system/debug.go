package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show storage path."`
	DumpRecords  *DebugDumpRecordsCmd  `cmd:"" help:"Dump stored records as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	DumpBackup   *DebugDumpBackupCmd   `cmd:"" help:"Validate a backup file and dump its summary as JSON."`
}

func printJSON(ctx *cli.Context, v interface{}, what string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path":    ctx.Store.GetConfigPath(),
		"backups": ctx.Backups().GetBackupDir(),
	}
	return printJSON(ctx, output, "output")
}

type DebugDumpRecordsCmd struct {
	Date string `arg:"" optional:"" help:"Only dump records of this date (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpRecordsCmd) Run(ctx *cli.Context) error {
	recs, err := ctx.Store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records: %w", err)
	}

	date := cmd.Date
	if date == "today" {
		now, err := ctx.Clock()
		if err != nil {
			return err
		}
		date = utils.DateOf(now)
	}
	if date != "" {
		if !utils.ValidateDateFormat(date) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
		}
		filtered := []models.AttendanceRecord{}
		for _, r := range recs {
			if r.Date == date {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}

	return printJSON(ctx, recs, "records")
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings, "settings")
}

type DebugDumpBackupCmd struct {
	File string `arg:"" help:"Path or filename of the backup to inspect."`
}

func (cmd *DebugDumpBackupCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	path, err := mgr.Resolve(cmd.File)
	if err != nil {
		return err
	}

	f, err := mgr.Load(path)
	if err != nil {
		return err
	}

	output := map[string]interface{}{
		"path":         path,
		"timestamp":    f.Timestamp,
		"version":      f.Version,
		"totalRecords": f.TotalRecords,
		"summary":      f.Summary,
	}
	return printJSON(ctx, output, "backup summary")
}
