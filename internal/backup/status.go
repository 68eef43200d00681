package backup

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/headcount/internal/constants"
)

// Level classifies how recent the last backup is.
type Level int

const (
	Fresh Level = iota
	Due
	Overdue
)

func (l Level) String() string {
	switch l {
	case Fresh:
		return "fresh"
	case Due:
		return "due"
	default:
		return "overdue"
	}
}

// Status is the backup staleness at a point in time.
type Status struct {
	Level Level
	Last  time.Time // zero when no backup was ever taken
}

// Never reports whether no backup has been recorded.
func (s Status) Never() bool {
	return s.Last.IsZero()
}

// Describe renders the status for people, e.g. "last backup 3 hours ago".
func (s Status) Describe() string {
	if s.Never() {
		return "no backup yet"
	}
	return "last backup " + humanize.Time(s.Last)
}

// StatusAt classifies last relative to now: under 24h is fresh, under 72h
// due, anything older (or no backup at all) overdue.
func StatusAt(last, now time.Time) Status {
	s := Status{Level: Overdue, Last: last}
	if last.IsZero() {
		return s
	}

	switch elapsed := now.Sub(last); {
	case elapsed < constants.BackupFreshWindow:
		s.Level = Fresh
	case elapsed < constants.BackupDueWindow:
		s.Level = Due
	}
	return s
}
