package persistence

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/notifier"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/storage"
)

type fakeFetcher struct {
	recs []models.AttendanceRecord
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, src string) ([]models.AttendanceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.AttendanceRecord, len(f.recs))
	copy(out, f.recs)
	return out, nil
}

func newTestProvider(t *testing.T, recs ...models.AttendanceRecord) storage.Provider {
	t.Helper()
	p := storage.NewJSONStore(filepath.Join(t.TempDir(), "headcount.json"))
	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if len(recs) > 0 {
		if err := p.SaveRecords(recs); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

type failingSaveProvider struct {
	storage.Provider
	err error
}

func (p *failingSaveProvider) SaveRecords([]models.AttendanceRecord) error {
	return p.err
}

func rec(date string, svc models.Service, attendees int) models.AttendanceRecord {
	return models.AttendanceRecord{Date: date, Service: svc, Attendees: attendees}
}

func TestLoadMergesSeedAndLocal(t *testing.T) {
	local := []models.AttendanceRecord{
		{ID: "local-9", Date: "2024-01-07", Service: models.Service9AM, Attendees: 1},
		{ID: "local-5", Date: "2024-01-14", Service: models.Service5PM, Attendees: 70},
	}
	seed := []models.AttendanceRecord{
		rec("2024-01-07", models.Service9AM, 120),
		rec("2024-01-03", models.Service7PM, 40),
	}

	b := New(newTestProvider(t, local...), Options{SeedSource: "seed.json", Fetcher: &fakeFetcher{recs: seed}})
	rs, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := rs.All()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Date != "2024-01-03" || got[2].Date != "2024-01-14" {
		t.Errorf("records not sorted by date: %+v", got)
	}
	// Seed wins the collision but keeps the stored id
	if got[1].Attendees != 120 || got[1].ID != "local-9" {
		t.Errorf("collision record = %+v, want seed counts with local id", got[1])
	}
}

func TestLoadSeedFailureFallsBackToLocal(t *testing.T) {
	local := []models.AttendanceRecord{rec("2024-01-07", models.Service9AM, 99)}
	b := New(newTestProvider(t, local...), Options{
		SeedSource: "https://example.invalid/asistencias.json",
		Fetcher:    &fakeFetcher{err: errors.New("connection refused")},
	})

	rs, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should not fail on seed errors: %v", err)
	}
	if rs.Len() != 1 || rs.All()[0].Attendees != 99 {
		t.Errorf("expected local records only, got %+v", rs.All())
	}
}

func TestLoadWithoutSeed(t *testing.T) {
	b := New(newTestProvider(t), Options{})
	rs, err := b.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 0 {
		t.Errorf("expected empty store, got %d records", rs.Len())
	}
}

func TestLoadLocalFailure(t *testing.T) {
	p := storage.NewJSONStore(filepath.Join(t.TempDir(), "never-initialized.json"))
	b := New(p, Options{})
	if _, err := b.Load(context.Background()); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Load() error = %v, want ErrNotLoaded", err)
	}
}

func TestAppendPersists(t *testing.T) {
	p := newTestProvider(t)
	b := New(p, Options{})
	rs := records.New()

	saved, err := b.Append(rs, rec("2024-01-07", models.Service11AM, 180))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("Append should assign an id")
	}

	stored, err := p.GetAllRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].ID != saved.ID {
		t.Errorf("stored = %+v, want the appended record", stored)
	}

	if _, err := b.Append(rs, rec("2024-01-07", models.Service11AM, 5)); !errors.Is(err, records.ErrDuplicate) {
		t.Errorf("duplicate Append() error = %v, want ErrDuplicate", err)
	}
	stored, _ = p.GetAllRecords()
	if len(stored) != 1 {
		t.Errorf("duplicate should not be persisted, got %d records", len(stored))
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	original := []models.AttendanceRecord{
		rec("2024-01-07", models.Service9AM, 120),
		rec("2024-01-07", models.Service11AM, 180),
	}
	p := newTestProvider(t, original...)
	notes := &notifier.Recorder{}
	b := New(p, Options{Notifier: notes})
	rs := records.New(original...)

	payload := `{"timestamp":"2024-02-01T00:00:00Z","data":[{"date":"2024-02-04","asistentes":10}],"version":"2.0"}`
	_, err := b.Restore(rs, strings.NewReader(payload))
	if !errors.Is(err, backup.ErrInvalidBackup) {
		t.Fatalf("Restore() error = %v, want ErrInvalidBackup", err)
	}

	if got := rs.All(); len(got) != 2 || got[0].Attendees != 120 || got[1].Attendees != 180 {
		t.Errorf("in-memory records changed: %+v", got)
	}
	stored, _ := p.GetAllRecords()
	if len(stored) != 2 {
		t.Errorf("stored records changed: %+v", stored)
	}
	last, _ := p.GetLastBackup()
	if !last.IsZero() {
		t.Errorf("last backup should not be set, got %v", last)
	}
	if len(notes.Messages) != 1 || !strings.Contains(notes.Messages[0], "Error") {
		t.Errorf("expected one failure notification, got %v", notes.Messages)
	}
}

func TestRestoreReplacesRecords(t *testing.T) {
	p := newTestProvider(t, rec("2023-12-31", models.Service9AM, 1))
	notes := &notifier.Recorder{}
	b := New(p, Options{Notifier: notes})
	now := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	rs := records.New(rec("2023-12-31", models.Service9AM, 1))

	payload := `{"data":[
		{"date":"2024-02-04","service":"11am","asistentes":200,"total_vehiculos":45},
		{"date":"2024-01-28","service":"9am","asistentes":0}
	]}`
	f, err := b.Restore(rs, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if f.TotalRecords != 2 {
		t.Errorf("TotalRecords = %d, want 2", f.TotalRecords)
	}

	got := rs.All()
	if len(got) != 2 || got[0].Date != "2024-01-28" || got[1].Attendees != 200 {
		t.Errorf("unexpected records after restore: %+v", got)
	}
	stored, _ := p.GetAllRecords()
	if len(stored) != 2 {
		t.Errorf("restore was not persisted: %+v", stored)
	}
	last, _ := p.GetLastBackup()
	if !last.Equal(now) {
		t.Errorf("last backup = %v, want %v", last, now)
	}
	if len(notes.Messages) != 1 || !strings.Contains(notes.Messages[0], "2 registros") {
		t.Errorf("unexpected notifications: %v", notes.Messages)
	}
}

func TestExportThenRestoreRoundTrip(t *testing.T) {
	p := newTestProvider(t)
	b := New(p, Options{Notifier: &notifier.Recorder{}})
	rs := records.New(
		rec("2024-01-07", models.Service9AM, 120),
		rec("2024-01-07", models.Service5PM, 0),
	)

	var buf bytes.Buffer
	stamp, err := b.Export(rs, &buf)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if stamp.IsZero() {
		t.Error("Export returned a zero timestamp")
	}
	if last, _ := p.GetLastBackup(); !last.IsZero() {
		t.Errorf("Export must not record a backup time, got %v", last)
	}

	restored := records.New()
	if _, err := b.Restore(restored, &buf); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Len() != 2 {
		t.Errorf("restored %d records, want 2", restored.Len())
	}
}

func TestAppendRollsBackWhenSaveFails(t *testing.T) {
	p := &failingSaveProvider{Provider: newTestProvider(t), err: errors.New("disk full")}
	b := New(p, Options{Notifier: &notifier.Recorder{}})
	rs := records.New(rec("2024-01-07", models.Service9AM, 120))

	next := rec("2024-01-07", models.Service11AM, 150)
	if _, err := b.Append(rs, next); err == nil {
		t.Fatal("expected Append to fail when saving fails")
	}
	if rs.Len() != 1 {
		t.Errorf("store has %d records after a failed append, want 1", rs.Len())
	}
	if _, err := b.Append(rs, next); errors.Is(err, records.ErrDuplicate) {
		t.Error("retry after a failed save reported a duplicate")
	}
}

func TestCreateBackupAndStatus(t *testing.T) {
	p := newTestProvider(t)
	mgr := backup.NewManager(p.GetConfigPath())
	b := New(p, Options{Backups: mgr, Notifier: &notifier.Recorder{}})
	rs := records.New(rec("2024-01-07", models.Service9AM, 120))

	status, err := b.BackupStatus(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if status.Level != backup.Overdue || !status.Never() {
		t.Errorf("initial status = %+v, want overdue/never", status)
	}

	path, err := b.CreateBackup(rs)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want %s", path, mgr.GetBackupDir())
	}

	status, err = b.BackupStatus(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if status.Level != backup.Fresh {
		t.Errorf("status after backup = %s, want fresh", status.Level)
	}

	f, err := mgr.Load(path)
	if err != nil {
		t.Fatalf("backup file unreadable: %v", err)
	}
	if f.TotalRecords != 1 {
		t.Errorf("backup has %d records, want 1", f.TotalRecords)
	}
}

func TestCreateBackupWithoutManager(t *testing.T) {
	b := New(newTestProvider(t), Options{})
	if _, err := b.CreateBackup(records.New()); err == nil {
		t.Error("expected error without a backup manager")
	}
}

func TestAutoBackupJob(t *testing.T) {
	p := newTestProvider(t, rec("2024-01-07", models.Service9AM, 120))
	notes := &notifier.Recorder{}
	b := New(p, Options{Backups: backup.NewManager(p.GetConfigPath()), Notifier: notes})

	path, err := b.AutoBackupJob()(context.Background())
	if err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if path == "" {
		t.Error("job returned no path")
	}
	if len(notes.Messages) != 0 {
		t.Errorf("unexpected notifications: %v", notes.Messages)
	}

	failing := New(p, Options{Notifier: notes})
	if _, err := failing.AutoBackupJob()(context.Background()); err == nil {
		t.Error("expected job error without a backup manager")
	}
	if len(notes.Messages) != 1 {
		t.Errorf("expected a failure notification, got %v", notes.Messages)
	}
}
