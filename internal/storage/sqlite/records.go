package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (s *Store) SaveRecords(recs []models.AttendanceRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM attendance_records"); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO attendance_records (id, date, service, attendees, children, vehicles_primary,
		                                vehicles_secondary, vehicles_total, offering, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err := stmt.Exec(
			r.ID, r.Date, string(r.Service), r.Attendees, r.Children, r.VehiclesPrimary,
			r.VehiclesSecondary, r.VehiclesTotal, r.Offering.String(), r.Notes,
		); err != nil {
			return fmt.Errorf("failed to save record %s: %w", r.Key(), err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetLastBackup() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", constants.LastBackupKey).Scan(&value)
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
	_, err := s.db.Exec("INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)",
		constants.LastBackupKey, t.UTC().Format(time.RFC3339Nano))
	return err
}
