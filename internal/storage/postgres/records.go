package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
)

func (s *Store) GetAllRecords() ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, service, attendees, children, vehicles_primary, vehicles_secondary,
		       vehicles_total, offering, notes
		FROM attendance_records ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []models.AttendanceRecord{}
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(
			&r.ID, &r.Date, &r.Service, &r.Attendees, &r.Children, &r.VehiclesPrimary,
			&r.VehiclesSecondary, &r.VehiclesTotal, &r.Offering, &r.Notes,
		); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// SaveRecords replaces the table contents using COPY inside one transaction.
func (s *Store) SaveRecords(recs []models.AttendanceRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM attendance_records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("attendance_records",
		"id", "date", "service", "attendees", "children", "vehicles_primary",
		"vehicles_secondary", "vehicles_total", "offering", "notes"))
	if err != nil {
		return err
	}

	for _, r := range recs {
		if _, err := stmt.Exec(
			r.ID, r.Date, string(r.Service), r.Attendees, r.Children, r.VehiclesPrimary,
			r.VehiclesSecondary, r.VehiclesTotal, r.Offering.String(), r.Notes,
		); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to save record %s: %w", r.Key(), err)
		}
	}

	// An empty Exec flushes the COPY buffer.
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetLastBackup() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = $1", constants.LastBackupKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", constants.LastBackupKey, err)
	}
	return t, nil
}

func (s *Store) SetLastBackup(t time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		constants.LastBackupKey, t.UTC().Format(time.RFC3339Nano))
	return err
}
