package backups

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	rs, err := b.Load(context.Background())
	if err != nil {
		return err
	}

	backupPath, err := b.CreateBackup(rs)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s (%d records)\n", filepath.Base(backupPath), rs.Len())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.Backups()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		filename := filepath.Base(b.Path)
		ctx.Printf("  %s  %s  (%s)\n", timestamp, filename, humanize.Bytes(uint64(b.Size)))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	backupPath, err := ctx.Backups().Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	rs, err := b.Load(context.Background())
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace all current records with the backup.")
		ctx.Println("A backup of your current records will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// Read the backup first; the safety copy below may rotate it away
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	// Safety copy of the current records
	if rs.Len() > 0 {
		safety, err := b.CreateBackup(rs)
		if err != nil {
			return fmt.Errorf("failed to back up current records before restore: %w", err)
		}
		ctx.Printf("✓ Current records saved to: %s\n", filepath.Base(safety))
	}

	f, err := b.Restore(rs, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Printf("✓ Restored %d records from backup taken %s\n", f.TotalRecords, describeTimestamp(f))
	return nil
}

func describeTimestamp(f backup.File) string {
	if f.Timestamp.IsZero() {
		return "at an unknown time"
	}
	return humanize.Time(f.Timestamp)
}

type BackupStatusCmd struct{}

func (c *BackupStatusCmd) Run(ctx *cli.Context) error {
	b, err := ctx.Bridge()
	if err != nil {
		return err
	}
	now, err := ctx.Clock()
	if err != nil {
		return err
	}

	status, err := b.BackupStatus(now)
	if err != nil {
		return fmt.Errorf("failed to read backup status: %w", err)
	}

	icon := map[backup.Level]string{
		backup.Fresh:   "✓",
		backup.Due:     "⚠",
		backup.Overdue: "❌",
	}[status.Level]
	ctx.Printf("%s Backup %s: %s\n", icon, status.Level, status.Describe())

	if status.Level != backup.Fresh {
		ctx.Printf("  Run '%s backup create' to back up now.\n", constants.AppName)
	}
	return nil
}
