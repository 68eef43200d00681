package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
)

// Store is the on-disk layout of a JSON provider. The record and backup
// keys are the ones the browser edition keeps in local storage, so a dump
// of that storage can be used directly.
type Store struct {
	Records    []models.AttendanceRecord `json:"churchAttendance"`
	LastBackup string                    `json:"lastBackup,omitempty"`
	Settings   models.Settings           `json:"settings"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Keep existing data; only fill in missing settings
	if _, err := os.Stat(s.path); err == nil {
		if err := s.Load(); err != nil {
			return err
		}
		models.ApplyDefaultSettings(&s.store.Settings)
		return s.save()
	}

	s.store = &Store{Records: []models.AttendanceRecord{}}
	models.ApplyDefaultSettings(&s.store.Settings)

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Records == nil {
		s.store.Records = []models.AttendanceRecord{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes through a temp file so a crash never leaves half a document.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetAllRecords() ([]models.AttendanceRecord, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	recs := make([]models.AttendanceRecord, len(s.store.Records))
	copy(recs, s.store.Records)
	return recs, nil
}

func (s *JSONStore) SaveRecords(recs []models.AttendanceRecord) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	s.store.Records = make([]models.AttendanceRecord, len(recs))
	copy(s.store.Records, recs)
	return s.save()
}

func (s *JSONStore) GetLastBackup() (time.Time, error) {
	if s.store == nil {
		return time.Time{}, ErrNotLoaded
	}
	if s.store.LastBackup == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s.store.LastBackup)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", constants.LastBackupKey, err)
	}
	return t, nil
}

func (s *JSONStore) SetLastBackup(t time.Time) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.LastBackup = t.UTC().Format(time.RFC3339Nano)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
