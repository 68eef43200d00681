package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/notifier"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{
		Store:    store,
		Notifier: &notifier.Recorder{},
		Out:      &bytes.Buffer{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	err := cmd.Run(ctx)

	if err != nil {
		t.Errorf("init command failed: %v", err)
	}

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}

	// Run init second time - should be idempotent
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_SetsChurchAndSeed(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Church: "Iglesia Central", Seed: "/data/seed.json"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.ChurchName != "Iglesia Central" {
		t.Errorf("expected church name to be saved, got %q", settings.ChurchName)
	}
	if settings.SeedSource != "/data/seed.json" {
		t.Errorf("expected seed source to be saved, got %q", settings.SeedSource)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	// Modify settings and records to verify they get wiped
	initialSettings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get initial settings: %v", err)
	}
	initialSettings.ChurchName = "Old Name"
	if err := ctx.Store.SaveSettings(initialSettings); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}
	if err := ctx.Store.SaveRecords([]models.AttendanceRecord{{Date: "2024-01-07", Service: models.Service9AM, Attendees: 10}}); err != nil {
		t.Fatalf("failed to save records: %v", err)
	}

	// Now run init with force flag
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	newSettings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if newSettings.ChurchName != constants.DefaultChurchName {
		t.Errorf("expected default church name, got %q", newSettings.ChurchName)
	}

	recs, err := ctx.Store.GetAllRecords()
	if err != nil {
		t.Fatalf("failed to get records after force: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records after force, got %d", len(recs))
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Force: true, Source: dbPath}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_MigratesFromJSONSource(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	// Prepare a JSON source store
	srcPath := filepath.Join(t.TempDir(), "state.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	recs := []models.AttendanceRecord{
		{ID: "a", Date: "2024-01-07", Service: models.Service9AM, Attendees: 120, VehiclesTotal: 30},
		{ID: "b", Date: "2024-01-07", Service: models.Service11AM, Attendees: 150, VehiclesTotal: 40},
	}
	if err := src.SaveRecords(recs); err != nil {
		t.Fatalf("failed to save source records: %v", err)
	}
	backupAt := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	if err := src.SetLastBackup(backupAt); err != nil {
		t.Fatalf("failed to set source backup time: %v", err)
	}
	srcSettings, _ := src.GetSettings()
	srcSettings.ChurchName = "Migrated Church"
	if err := src.SaveSettings(srcSettings); err != nil {
		t.Fatalf("failed to save source settings: %v", err)
	}

	cmd := &InitCmd{Source: srcPath}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetAllRecords()
	if err != nil {
		t.Fatalf("failed to get migrated records: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 migrated records, got %d", len(got))
	}

	settings, _ := ctx.Store.GetSettings()
	if settings.ChurchName != "Migrated Church" {
		t.Errorf("expected migrated church name, got %q", settings.ChurchName)
	}

	last, err := ctx.Store.GetLastBackup()
	if err != nil {
		t.Fatalf("failed to get last backup: %v", err)
	}
	if !last.Equal(backupAt) {
		t.Errorf("expected last backup %v, got %v", backupAt, last)
	}
}
