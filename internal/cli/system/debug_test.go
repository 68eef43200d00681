package system

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/storage/sqlite"
)

func setupTestDebugDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Out:   out,
		Now:   func() time.Time { return time.Date(2024, 1, 7, 10, 0, 0, 0, time.Local) },
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, out, cleanup
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDBPathCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("path = %q, want %q", got["path"], ctx.Store.GetConfigPath())
	}
	if !strings.HasSuffix(got["backups"], "backups") {
		t.Errorf("unexpected backup dir %q", got["backups"])
	}
}

func TestDebugDumpRecordsCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	recs := []models.AttendanceRecord{
		{ID: "a", Date: "2024-01-06", Service: models.Service7PM, Attendees: 40},
		{ID: "b", Date: "2024-01-07", Service: models.Service9AM, Attendees: 120},
	}
	if err := ctx.Store.SaveRecords(recs); err != nil {
		t.Fatalf("failed to save records: %v", err)
	}

	tests := []struct {
		name string
		date string
		want int
	}{
		{"all", "", 2},
		{"by date", "2024-01-06", 1},
		{"today", "today", 1},
		{"no match", "2023-12-31", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			cmd := &DebugDumpRecordsCmd{Date: tt.date}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("dump-records failed: %v", err)
			}

			var got []models.AttendanceRecord
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDebugDumpRecordsCmd_InvalidDate(t *testing.T) {
	ctx, _, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDumpRecordsCmd{Date: "01/07/2024"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for invalid date format")
	}
}

func TestDebugDumpSettingsCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDumpSettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("dump-settings failed: %v", err)
	}

	var got models.Settings
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.ChurchName == "" {
		t.Error("expected default church name in dumped settings")
	}
}

func TestDebugDumpBackupCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "backup.json")
	recs := []models.AttendanceRecord{{Date: "2024-01-07", Service: models.Service9AM, Attendees: 120, VehiclesTotal: 30}}
	if err := backup.WriteFile(path, backup.Build(recs, time.Now())); err != nil {
		t.Fatalf("failed to write backup: %v", err)
	}

	cmd := &DebugDumpBackupCmd{File: path}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("dump-backup failed: %v", err)
	}
	if !strings.Contains(out.String(), `"totalAttendees": 120`) {
		t.Errorf("expected summary in output, got:\n%s", out.String())
	}

	// Invalid backups are reported as errors
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"data": {}}`), 0600); err != nil {
		t.Fatalf("failed to write bad backup: %v", err)
	}
	if err := (&DebugDumpBackupCmd{File: bad}).Run(ctx); err == nil {
		t.Error("expected error for invalid backup")
	}
}
