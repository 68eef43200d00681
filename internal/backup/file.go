package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/validation"
)

// ErrInvalidBackup is returned for backup files that cannot be restored.
var ErrInvalidBackup = errors.New("invalid backup file")

// Summary mirrors the summary block of a backup file.
type Summary struct {
	TotalAttendees int `json:"totalAttendees"`
	TotalVehicles  int `json:"totalVehicles"`
	TotalServices  int `json:"totalServices"`
}

// File is the JSON backup format shared with the browser edition.
type File struct {
	Timestamp    time.Time                 `json:"timestamp"`
	Data         []models.AttendanceRecord `json:"data"`
	TotalRecords int                       `json:"totalRecords"`
	Version      string                    `json:"version"`
	Summary      Summary                   `json:"summary"`
}

// Build assembles a backup of recs taken at now.
func Build(recs []models.AttendanceRecord, now time.Time) File {
	if recs == nil {
		recs = []models.AttendanceRecord{}
	}
	sum := stats.Totals(recs)
	return File{
		Timestamp:    now.UTC(),
		Data:         recs,
		TotalRecords: len(recs),
		Version:      constants.BackupFormatVer,
		Summary: Summary{
			TotalAttendees: sum.Attendees,
			TotalVehicles:  sum.Vehicles,
			TotalServices:  sum.Services,
		},
	}
}

// Encode writes f as indented JSON.
func Encode(w io.Writer, f File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// wireFile defers decoding of data so its shape can be checked first.
type wireFile struct {
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	Version   string          `json:"version"`
}

// Decode reads a backup file. It fails with ErrInvalidBackup unless data is
// present, is an array, and every record passes v. The summary block is
// recomputed rather than trusted.
func Decode(r io.Reader, v *validation.Validator) (File, error) {
	var w wireFile
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	data := bytes.TrimSpace(w.Data)
	if len(data) == 0 || data[0] != '[' {
		return File{}, fmt.Errorf("%w: missing data array", ErrInvalidBackup)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := v.ValidateRaw(raw); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var recs []models.AttendanceRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	// A missing or odd timestamp does not make the records unusable.
	ts, _ := time.Parse(time.RFC3339Nano, w.Timestamp)

	f := Build(recs, ts)
	f.Timestamp = ts
	if w.Version != "" {
		f.Version = w.Version
	}
	return f, nil
}
