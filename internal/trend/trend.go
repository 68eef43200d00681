// Package trend derives month-over-month trends and date-window lookups
// from attendance records.
package trend

import (
	"errors"
	"fmt"

	"github.com/julianstephens/headcount/internal/stats"
)

// ErrInsufficientData is returned when fewer than two monthly groups exist.
var ErrInsufficientData = errors.New("at least two months of data are required")

// Direction of a month-over-month change.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
)

// Label returns the Spanish wording used in messages.
func (d Direction) Label() string {
	if d == Increasing {
		return "aumentando"
	}
	return "disminuyendo"
}

// Trend compares the two most recent months of a rollup.
type Trend struct {
	Current  stats.MonthSummary
	Previous stats.MonthSummary

	Direction  Direction
	Difference int     // |current - previous| average attendees
	Percent    float64 // attendance change, 0 when the previous average is 0

	VehiclesPercent float64
}

// PercentString formats Percent with one decimal place.
func (t Trend) PercentString() string {
	return fmt.Sprintf("%.1f", t.Percent)
}

// VehiclesPercentString formats VehiclesPercent with one decimal place.
func (t Trend) VehiclesPercentString() string {
	return fmt.Sprintf("%.1f", t.VehiclesPercent)
}

// MonthOverMonth compares the last two groups of rollup. Ties count as
// decreasing.
func MonthOverMonth(rollup []stats.MonthSummary) (Trend, error) {
	if len(rollup) < 2 {
		return Trend{}, ErrInsufficientData
	}

	cur := rollup[len(rollup)-1]
	prev := rollup[len(rollup)-2]

	t := Trend{
		Current:         cur,
		Previous:        prev,
		Direction:       Decreasing,
		Difference:      abs(cur.AvgAttendees - prev.AvgAttendees),
		Percent:         Growth(cur.AvgAttendees, prev.AvgAttendees),
		VehiclesPercent: Growth(cur.AvgVehicles, prev.AvgVehicles),
	}
	if cur.AvgAttendees > prev.AvgAttendees {
		t.Direction = Increasing
	}
	return t, nil
}

// Growth is the percentage change from previous to current, or 0 when
// previous is not positive.
func Growth(current, previous int) float64 {
	if previous <= 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
