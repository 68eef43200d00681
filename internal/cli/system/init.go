package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Source storage path or connection string to copy records and settings from."`
	Church string `help:"Church name used in share messages and reports."`
	Seed   string `help:"Seed dataset path or URL merged into the records on every load."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing storage
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			// Normalize paths to absolute for accurate comparison
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Storage exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	// If source is provided, migrate data
	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	if c.Church != "" || c.Seed != "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if c.Church != "" {
			settings.ChurchName = c.Church
		}
		if c.Seed != "" {
			settings.SeedSource = c.Seed
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.InvalidateSettings()
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := storage.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source storage: %w", err)
	}
	defer sourceStore.Close()

	ctx.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating records...")
	recs, err := sourceStore.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records from source: %w", err)
	}
	if err := ctx.Store.SaveRecords(recs); err != nil {
		return fmt.Errorf("failed to save records to destination: %w", err)
	}
	ctx.Printf("    Migrated %d records\n", len(recs))

	last, err := sourceStore.GetLastBackup()
	if err != nil {
		return fmt.Errorf("failed to get last backup time from source: %w", err)
	}
	if !last.IsZero() {
		if err := ctx.Store.SetLastBackup(last); err != nil {
			return fmt.Errorf("failed to save last backup time: %w", err)
		}
	}

	return nil
}
