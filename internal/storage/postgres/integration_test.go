package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://headcount_user@localhost:5432/headcount_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.ChurchName != constants.DefaultChurchName {
			t.Errorf("Expected church name %s, got %s", constants.DefaultChurchName, settings.ChurchName)
		}

		settings.Timezone = "America/Tegucigalpa"
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}

		updated, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get updated settings: %v", err)
		}
		if updated.Timezone != "America/Tegucigalpa" {
			t.Errorf("Expected timezone America/Tegucigalpa, got %s", updated.Timezone)
		}
	})

	t.Run("Records", func(t *testing.T) {
		recs := []models.AttendanceRecord{
			{ID: "pg-1", Date: "2024-01-07", Service: models.Service11AM, Attendees: 180, VehiclesTotal: 40,
				Offering: decimal.RequireFromString("1250.50"), Notes: "Santa cena"},
			{ID: "pg-2", Date: "2024-01-07", Service: models.Service9AM, Attendees: 120},
		}
		if err := store.SaveRecords(recs); err != nil {
			t.Fatalf("Failed to save records: %v", err)
		}

		got, err := store.GetAllRecords()
		if err != nil {
			t.Fatalf("Failed to get records: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 records, got %d", len(got))
		}
		if got[0].ID != "pg-1" || got[1].ID != "pg-2" {
			t.Errorf("Records not returned in save order: %+v", got)
		}
		if !got[0].Offering.Equal(decimal.RequireFromString("1250.50")) {
			t.Errorf("Offering = %s, want 1250.50", got[0].Offering)
		}

		if err := store.SaveRecords(nil); err != nil {
			t.Fatalf("Failed to clear records: %v", err)
		}
		got, err = store.GetAllRecords()
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("Expected no records, got %d", len(got))
		}
	})

	t.Run("LastBackup", func(t *testing.T) {
		now := time.Date(2024, 1, 7, 18, 30, 0, 0, time.UTC)
		if err := store.SetLastBackup(now); err != nil {
			t.Fatalf("Failed to set last backup: %v", err)
		}
		got, err := store.GetLastBackup()
		if err != nil {
			t.Fatalf("Failed to get last backup: %v", err)
		}
		if !got.Equal(now) {
			t.Errorf("Expected %v, got %v", now, got)
		}
	})
}
