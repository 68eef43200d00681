// Package persistence connects the in-memory record store with local
// storage, the seed dataset and backup files.
package persistence

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/notifier"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/validation"
)

// Fetcher loads the seed dataset from src.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]models.AttendanceRecord, error)
}

// Options configures a Bridge. Zero values disable seeding, print
// notifications to stderr and skip backup files.
type Options struct {
	SeedSource string
	Fetcher    Fetcher
	Notifier   notifier.Notifier
	Backups    *backup.Manager
}

// Bridge reads and writes the record store.
type Bridge struct {
	provider  storage.Provider
	seedSrc   string
	fetcher   Fetcher
	notifier  notifier.Notifier
	backups   *backup.Manager
	validator *validation.Validator
	now       func() time.Time
}

func New(provider storage.Provider, opts Options) *Bridge {
	n := opts.Notifier
	if n == nil {
		n = notifier.New("")
	}
	return &Bridge{
		provider:  provider,
		seedSrc:   opts.SeedSource,
		fetcher:   opts.Fetcher,
		notifier:  n,
		backups:   opts.Backups,
		validator: validation.New(),
		now:       time.Now,
	}
}

// Load builds the record store from the seed dataset and local storage.
// Seed records win on (date, service) collisions; local records not in the
// seed are kept. A seed failure is logged and local records are used alone.
func (b *Bridge) Load(ctx context.Context) (*records.Store, error) {
	local, err := b.provider.GetAllRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to read local records: %w", err)
	}

	if b.seedSrc == "" || b.fetcher == nil {
		return records.New(local...), nil
	}

	seeded, err := b.fetcher.Fetch(ctx, b.seedSrc)
	if err != nil {
		logger.Warn("Seed dataset unavailable, using local records", "source", b.seedSrc, "error", err)
		return records.New(local...), nil
	}

	adoptIDs(seeded, local)
	logger.Debug("Merged seed dataset", "seed", len(seeded), "local", len(local))
	return records.New(records.Merge(seeded, local)...), nil
}

// adoptIDs gives seed records the id of the stored record with the same
// key so ids stay stable across loads.
func adoptIDs(seeded, local []models.AttendanceRecord) {
	ids := make(map[models.RecordKey]string, len(local))
	for _, r := range local {
		if r.ID != "" {
			if _, ok := ids[r.Key()]; !ok {
				ids[r.Key()] = r.ID
			}
		}
	}
	for i := range seeded {
		if id, ok := ids[seeded[i].Key()]; ok {
			seeded[i].ID = id
		}
	}
}

// Append adds rec to rs and persists the whole set. rec gets a new id when
// it has none.
func (b *Bridge) Append(rs *records.Store, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	prev := rs.All()
	if err := rs.Append(rec); err != nil {
		return models.AttendanceRecord{}, err
	}
	if err := b.Save(rs); err != nil {
		rs.Replace(prev)
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

// Save overwrites the stored records with the contents of rs.
func (b *Bridge) Save(rs *records.Store) error {
	if err := b.provider.SaveRecords(rs.All()); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Restore replaces rs with the records of the backup read from r. An
// invalid backup leaves rs and storage untouched, sends a failure
// notification and returns an error wrapping backup.ErrInvalidBackup.
func (b *Bridge) Restore(rs *records.Store, r io.Reader) (backup.File, error) {
	f, err := backup.Decode(r, b.validator)
	if err != nil {
		b.notify("Error al restaurar el backup: archivo inválido")
		return backup.File{}, err
	}

	prev := rs.All()
	rs.Replace(f.Data)
	if err := b.Save(rs); err != nil {
		rs.Replace(prev)
		b.notify("Error al restaurar el backup: no se pudo guardar")
		return backup.File{}, err
	}

	if err := b.MarkBackup(b.now()); err != nil {
		logger.Warn("Failed to record backup time", "error", err)
	}
	b.notify(fmt.Sprintf("Datos restaurados: %d registros", f.TotalRecords))
	return f, nil
}

// RestoreFile restores from the backup file at path.
func (b *Bridge) RestoreFile(rs *records.Store, path string) (backup.File, error) {
	in, err := os.Open(path)
	if err != nil {
		return backup.File{}, fmt.Errorf("failed to open backup: %w", err)
	}
	defer in.Close()
	return b.Restore(rs, in)
}

// Export encodes a backup of rs to w and returns its timestamp. The
// backup time is not recorded; callers pass the timestamp to MarkBackup
// once the output has been written in full.
func (b *Bridge) Export(rs *records.Store, w io.Writer) (time.Time, error) {
	now := b.now()
	if err := backup.Encode(w, backup.Build(rs.All(), now)); err != nil {
		return time.Time{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	return now, nil
}

// CreateBackup writes rs to a new file in the backup directory and records
// the backup time.
func (b *Bridge) CreateBackup(rs *records.Store) (string, error) {
	if b.backups == nil {
		return "", fmt.Errorf("no backup directory configured")
	}

	now := b.now()
	path, err := b.backups.CreateBackup(backup.Build(rs.All(), now))
	if err != nil {
		return "", err
	}
	if err := b.MarkBackup(now); err != nil {
		return path, err
	}
	return path, nil
}

// AutoBackupJob returns a scheduler job that reloads the records and writes
// a backup file. Failures are also sent as notifications.
func (b *Bridge) AutoBackupJob() backup.Job {
	return func(ctx context.Context) (string, error) {
		rs, err := b.Load(ctx)
		if err == nil {
			var path string
			if path, err = b.CreateBackup(rs); err == nil {
				return path, nil
			}
		}
		b.notify("Error en el backup automático")
		return "", err
	}
}

// MarkBackup stores t as the last successful backup time.
func (b *Bridge) MarkBackup(t time.Time) error {
	return b.provider.SetLastBackup(t)
}

// BackupStatus classifies the last backup relative to now.
func (b *Bridge) BackupStatus(now time.Time) (backup.Status, error) {
	last, err := b.provider.GetLastBackup()
	if err != nil {
		return backup.Status{}, err
	}
	return backup.StatusAt(last, now), nil
}

func (b *Bridge) notify(text string) {
	if err := b.notifier.Notify(text); err != nil {
		logger.Warn("Failed to send notification", "error", err)
	}
}
