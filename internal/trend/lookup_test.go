package trend

import (
	"testing"
	"time"

	"github.com/julianstephens/headcount/internal/models"
)

func rec(date string, svc models.Service, attendees, vehicles, secondary int) models.AttendanceRecord {
	return models.AttendanceRecord{
		Date:              date,
		Service:           svc,
		Attendees:         attendees,
		VehiclesTotal:     vehicles,
		VehiclesSecondary: secondary,
	}
}

func TestLastSunday(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2023-12-31", models.Service9AM, 80, 10, 1),
		rec("2024-01-06", models.Service7PM, 40, 5, 0), // Saturday
		rec("2024-01-07", models.Service9AM, 100, 30, 5),
		rec("2024-01-07", models.Service11AM, 150, 40, 6),
		rec("2024-01-07", models.ServiceCenaAmor, 60, 8, 2),
		rec("2024-01-08", models.Service7PM, 20, 2, 0), // Monday
	}

	got, ok := LastSunday(recs)
	if !ok {
		t.Fatal("LastSunday() found nothing")
	}
	if got.Date != "2024-01-07" {
		t.Fatalf("Date = %s, want 2024-01-07", got.Date)
	}
	if len(got.Records) != 3 {
		t.Errorf("got %d records, want only the Sunday's 3", len(got.Records))
	}

	if n, ok := got.ServiceAttendees(models.Service9AM); !ok || n != 100 {
		t.Errorf("9am = %d, %v", n, ok)
	}
	if _, ok := got.ServiceAttendees(models.Service5PM); ok {
		t.Error("5pm should be reported as not recorded")
	}

	// cena_amor is outside the Sunday totals
	if got.TotalAttendees() != 250 {
		t.Errorf("TotalAttendees() = %d, want 250", got.TotalAttendees())
	}
	if got.TotalVehicles() != 70 || got.SecondaryVehicles() != 11 || got.PrimaryVehicles() != 59 {
		t.Errorf("vehicles = %d/%d/%d", got.TotalVehicles(), got.SecondaryVehicles(), got.PrimaryVehicles())
	}
}

func TestLastSundaySecondaryExcludesEvening(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2024-01-07", models.Service5PM, 90, 20, 7),
	}

	got, _ := LastSunday(recs)
	if got.SecondaryVehicles() != 0 {
		t.Errorf("SecondaryVehicles() = %d, want 0 for a 5pm-only Sunday", got.SecondaryVehicles())
	}
	if got.PrimaryVehicles() != 20 {
		t.Errorf("PrimaryVehicles() = %d, want 20", got.PrimaryVehicles())
	}
}

func TestLastSundayNone(t *testing.T) {
	recs := []models.AttendanceRecord{rec("2024-01-06", models.Service7PM, 40, 0, 0)}
	if _, ok := LastSunday(recs); ok {
		t.Error("LastSunday() reported a Sunday for Saturday-only data")
	}
	if _, ok := LastSunday(nil); ok {
		t.Error("LastSunday(nil) reported a Sunday")
	}
}

func TestToday(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2024-03-14", models.Service7PM, 10, 1, 0),
		rec("2024-03-15", models.Service6AM, 20, 2, 1),
		rec("2024-03-15", models.Service7PM, 30, 3, 1),
	}

	loc, err := time.LoadLocation("America/Tegucigalpa")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 23:30 local is already the 16th in UTC
	now := time.Date(2024, time.March, 15, 23, 30, 0, 0, loc)

	got := Today(recs, now)
	if got.Date != "2024-03-15" {
		t.Errorf("Date = %s, want 2024-03-15", got.Date)
	}
	if len(got.Records) != 2 || got.Attendees != 50 || got.Vehicles != 5 || got.Secondary != 2 {
		t.Errorf("Today() = %+v", got)
	}

	empty := Today(recs, now.AddDate(0, 0, 5))
	if len(empty.Records) != 0 || empty.Attendees != 0 {
		t.Errorf("Today() on an empty day = %+v", empty)
	}
}

func TestLastSevenDays(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2024-03-07", models.Service9AM, 1, 0, 0),
		rec("2024-03-08", models.Service9AM, 2, 0, 0),
		rec("2024-03-15", models.Service9AM, 3, 0, 0),
	}
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	got := LastSevenDays(recs, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2024-03-08" {
		t.Errorf("boundary day 2024-03-08 should be included, first = %s", got[0].Date)
	}
}

func TestMonthFilters(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2023-12-03", models.Service9AM, 1, 0, 0),
		rec("2023-12-31", models.Service9AM, 1, 0, 0),
		rec("2024-01-07", models.Service9AM, 1, 0, 0),
		rec("2024-02-04", models.Service9AM, 1, 0, 0),
		rec("", models.Service9AM, 1, 0, 0),
	}
	now := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	if got := CurrentMonth(recs, now); len(got) != 1 || got[0].Date != "2024-01-07" {
		t.Errorf("CurrentMonth() = %+v", got)
	}
	if got := PreviousMonth(recs, now); len(got) != 2 {
		t.Errorf("PreviousMonth() in January should return December records, got %+v", got)
	}
}

func TestWeekly(t *testing.T) {
	recs := []models.AttendanceRecord{
		rec("2024-03-10", models.Service9AM, 100, 20, 0),
		rec("2024-03-10", models.Service11AM, 150, 30, 0),
		rec("2024-03-13", models.Service7PM, 50, 10, 0),
	}

	got := Weekly(recs)
	want := WeekSummary{Attendees: 300, Vehicles: 60, AvgDaily: 43, HighestDay: 150}
	if got != want {
		t.Errorf("Weekly() = %+v, want %+v", got, want)
	}
	if (Weekly(nil) != WeekSummary{}) {
		t.Error("Weekly(nil) should be the zero value")
	}
}
