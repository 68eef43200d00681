package trend

import (
	"time"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/utils"
)

// SundaySummary is the record bundle of one Sunday. Services that were not
// recorded are absent, not zero.
type SundaySummary struct {
	stats.DayGroup
}

// ServiceAttendees returns the attendance of svc and whether it was recorded.
func (s SundaySummary) ServiceAttendees(svc models.Service) (int, bool) {
	r, ok := s.Service(svc)
	return r.Attendees, ok
}

// TotalAttendees sums the 9am, 11am and 5pm services only.
func (s SundaySummary) TotalAttendees() int {
	total := 0
	for _, svc := range models.SundayServices {
		r, _ := s.Service(svc)
		total += r.Attendees
	}
	return total
}

// TotalVehicles sums vehicle totals of the 9am, 11am and 5pm services.
func (s SundaySummary) TotalVehicles() int {
	total := 0
	for _, svc := range models.SundayServices {
		r, _ := s.Service(svc)
		total += r.VehiclesTotal
	}
	return total
}

// SecondaryVehicles sums the shuttle vehicles of the 9am and 11am services.
// The shuttle does not run for the 5pm service.
func (s SundaySummary) SecondaryVehicles() int {
	nine, _ := s.Service(models.Service9AM)
	eleven, _ := s.Service(models.Service11AM)
	return nine.VehiclesSecondary + eleven.VehiclesSecondary
}

// PrimaryVehicles is the Sunday vehicle total minus the shuttle vehicles.
func (s SundaySummary) PrimaryVehicles() int {
	return s.TotalVehicles() - s.SecondaryVehicles()
}

// LastSunday returns the most recent date that falls on a Sunday together
// with all of its records. It reports false when no Sunday exists.
func LastSunday(recs []models.AttendanceRecord) (SundaySummary, bool) {
	days := stats.GroupByDate(recs)
	for i := len(days) - 1; i >= 0; i-- {
		if utils.IsSunday(days[i].Date) {
			return SundaySummary{DayGroup: days[i]}, true
		}
	}
	return SundaySummary{}, false
}

// DaySummary holds the records of a single day and their totals.
type DaySummary struct {
	Date      string
	Records   []models.AttendanceRecord
	Attendees int
	Vehicles  int
	Secondary int
}

// Today returns the records dated on now's calendar day. now should already
// be in the configured timezone.
func Today(recs []models.AttendanceRecord, now time.Time) DaySummary {
	return ForDate(recs, utils.DateOf(now))
}

// ForDate returns the records dated date with their totals.
func ForDate(recs []models.AttendanceRecord, date string) DaySummary {
	d := DaySummary{Date: date}
	for _, r := range recs {
		if r.Date != date {
			continue
		}
		d.Records = append(d.Records, r)
		d.Attendees += r.Attendees
		d.Vehicles += r.VehiclesTotal
		d.Secondary += r.VehiclesSecondary
	}
	return d
}

// LastSevenDays returns records dated on or after now minus seven days.
func LastSevenDays(recs []models.AttendanceRecord, now time.Time) []models.AttendanceRecord {
	cutoff := utils.DaysBefore(now, 7)
	var out []models.AttendanceRecord
	for _, r := range recs {
		// zero-padded ISO dates compare chronologically
		if r.Date >= cutoff {
			out = append(out, r)
		}
	}
	return out
}

// CurrentMonth returns records in now's calendar month.
func CurrentMonth(recs []models.AttendanceRecord, now time.Time) []models.AttendanceRecord {
	return inMonth(recs, now.Year(), now.Month())
}

// PreviousMonth returns records in the calendar month before now's. The
// month before January is December of the prior year.
func PreviousMonth(recs []models.AttendanceRecord, now time.Time) []models.AttendanceRecord {
	y, m := utils.PreviousMonth(now.Year(), now.Month())
	return inMonth(recs, y, m)
}

func inMonth(recs []models.AttendanceRecord, year int, month time.Month) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, r := range recs {
		t, err := utils.ParseDate(r.Date)
		if err != nil {
			continue
		}
		if t.Year() == year && t.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// WeekSummary feeds the weekly share message.
type WeekSummary struct {
	Attendees  int
	Vehicles   int
	AvgDaily   int // attendees / 7, whatever the number of days with data
	HighestDay int // highest single-record attendance
}

// Weekly summarises a week's records, usually the LastSevenDays window.
func Weekly(recs []models.AttendanceRecord) WeekSummary {
	var w WeekSummary
	for _, r := range recs {
		w.Attendees += r.Attendees
		w.Vehicles += r.VehiclesTotal
		if r.Attendees > w.HighestDay {
			w.HighestDay = r.Attendees
		}
	}
	w.AvgDaily = stats.RoundDiv(w.Attendees, 7)
	return w
}
