package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/storage"
)

// MigrateCmd brings the SQL schema up to date. Pending migrations are
// preceded by a backup of the current attendance records.
type MigrateCmd struct {
	DryRun bool `help:"Only report the schema versions."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate only supports SQLite and PostgreSQL storage")
	}

	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current >= latest {
		ctx.Printf("Schema version %d. Database is up to date.\n", current)
		return nil
	}
	ctx.Printf("Schema version %d, latest %d.\n", current, latest)
	if c.DryRun {
		return nil
	}

	if rs, err := ctx.LoadRecords(context.Background()); err == nil && rs.Len() > 0 {
		b, err := ctx.Bridge()
		if err != nil {
			return err
		}
		path, err := b.CreateBackup(rs)
		if err != nil {
			return fmt.Errorf("backup before migration failed: %w", err)
		}
		ctx.Printf("✓ Backup created: %s\n", path)
	}

	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("\n✓ Applied %d migration(s).\n", count)
	return nil
}
