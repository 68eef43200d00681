// Package stats derives aggregate views from attendance records.
//
// Every function is pure: inputs are never modified, and empty input yields
// zero values rather than an error.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/utils"
)

// RoundDiv divides sum by n and rounds half away from zero. It returns 0
// when n is 0.
func RoundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// MonthSummary is one group of the monthly rollup.
type MonthSummary struct {
	Key   string // zero-padded "YYYY-MM"
	Label string // "enero de 2024"
	Year  int
	Month time.Month

	Occurrences          int
	TotalAttendees       int
	TotalVehicles        int
	TotalSecondary       int
	AvgAttendees         int
	AvgVehicles          int
	AvgSecondaryVehicles int
}

// MonthlyRollup groups records by calendar month, ascending by key.
// Averages are per service occurrence and count zero-attendance records in
// the denominator. Records without a parsable date are skipped.
func MonthlyRollup(recs []models.AttendanceRecord) []MonthSummary {
	groups := make(map[string]*MonthSummary)

	for _, r := range recs {
		if r.Date == "" {
			continue
		}
		t, err := utils.ParseDate(r.Date)
		if err != nil {
			continue
		}
		key := t.Format("2006-01")
		g, ok := groups[key]
		if !ok {
			g = &MonthSummary{
				Key:   key,
				Label: utils.MonthLabel(t.Year(), t.Month()),
				Year:  t.Year(),
				Month: t.Month(),
			}
			groups[key] = g
		}
		g.Occurrences++
		g.TotalAttendees += r.Attendees
		g.TotalVehicles += r.VehiclesTotal
		g.TotalSecondary += r.VehiclesSecondary
	}

	out := make([]MonthSummary, 0, len(groups))
	for _, g := range groups {
		g.AvgAttendees = RoundDiv(g.TotalAttendees, g.Occurrences)
		g.AvgVehicles = RoundDiv(g.TotalVehicles, g.Occurrences)
		g.AvgSecondaryVehicles = RoundDiv(g.TotalSecondary, g.Occurrences)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Distribution is the attendee total per service bucket.
type Distribution struct {
	NineAM   int
	ElevenAM int
	FivePM   int
	Other    int
}

// Total is the sum of all buckets.
func (d Distribution) Total() int {
	return d.NineAM + d.ElevenAM + d.FivePM + d.Other
}

// ServiceDistribution sums attendees into the 9am, 11am, 5pm and other buckets.
func ServiceDistribution(recs []models.AttendanceRecord) Distribution {
	var d Distribution
	for _, r := range recs {
		switch r.Service {
		case models.Service9AM:
			d.NineAM += r.Attendees
		case models.Service11AM:
			d.ElevenAM += r.Attendees
		case models.Service5PM:
			d.FivePM += r.Attendees
		default:
			d.Other += r.Attendees
		}
	}
	return d
}

// Averages holds the per-service attendance averages of the Sunday services.
type Averages struct {
	NineAM   int
	ElevenAM int
	FivePM   int
}

// For returns the average of one Sunday service, 0 for any other service.
func (a Averages) For(s models.Service) int {
	switch s {
	case models.Service9AM:
		return a.NineAM
	case models.Service11AM:
		return a.ElevenAM
	case models.Service5PM:
		return a.FivePM
	}
	return 0
}

// ServiceAverages averages attendees of the 9am, 11am and 5pm services.
// Unlike MonthlyRollup, records with zero attendees are left out of both the
// sum and the count.
func ServiceAverages(recs []models.AttendanceRecord) Averages {
	sums := make(map[models.Service]int, 3)
	counts := make(map[models.Service]int, 3)

	for _, r := range recs {
		if r.Attendees == 0 {
			continue
		}
		switch r.Service {
		case models.Service9AM, models.Service11AM, models.Service5PM:
			sums[r.Service] += r.Attendees
			counts[r.Service]++
		}
	}

	return Averages{
		NineAM:   RoundDiv(sums[models.Service9AM], counts[models.Service9AM]),
		ElevenAM: RoundDiv(sums[models.Service11AM], counts[models.Service11AM]),
		FivePM:   RoundDiv(sums[models.Service5PM], counts[models.Service5PM]),
	}
}

// VehicleStats summarises vehicle counts across all records.
type VehicleStats struct {
	Total     int
	Secondary int
	Average   int // per record, zero-vehicle records included
	Record    int // highest single-record total
}

// Vehicles computes VehicleStats; every field is 0 for empty input.
func Vehicles(recs []models.AttendanceRecord) VehicleStats {
	var v VehicleStats
	for _, r := range recs {
		v.Total += r.VehiclesTotal
		v.Secondary += r.VehiclesSecondary
		if r.VehiclesTotal > v.Record {
			v.Record = r.VehiclesTotal
		}
	}
	v.Average = RoundDiv(v.Total, len(recs))
	return v
}

// Summary is the attendee, vehicle and service count of a record set.
type Summary struct {
	Attendees int
	Vehicles  int
	Services  int
}

// Totals sums attendees and vehicles over recs.
func Totals(recs []models.AttendanceRecord) Summary {
	s := Summary{Services: len(recs)}
	for _, r := range recs {
		s.Attendees += r.Attendees
		s.Vehicles += r.VehiclesTotal
	}
	return s
}

// DayGroup is every record of one calendar date.
type DayGroup struct {
	Date      string
	Records   []models.AttendanceRecord
	Attendees int
	Vehicles  int
}

// Service returns the day's record for s, if one exists.
func (d DayGroup) Service(s models.Service) (models.AttendanceRecord, bool) {
	for _, r := range d.Records {
		if r.Service == s {
			return r, true
		}
	}
	return models.AttendanceRecord{}, false
}

// GroupByDate groups records by date, ascending. Records keep their input
// order within a day.
func GroupByDate(recs []models.AttendanceRecord) []DayGroup {
	idx := make(map[string]int)
	var out []DayGroup

	for _, r := range recs {
		i, ok := idx[r.Date]
		if !ok {
			i = len(out)
			idx[r.Date] = i
			out = append(out, DayGroup{Date: r.Date})
		}
		out[i].Records = append(out[i].Records, r)
		out[i].Attendees += r.Attendees
		out[i].Vehicles += r.VehiclesTotal
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
