// Package records owns the in-memory attendance record sequence.
package records

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/julianstephens/headcount/internal/models"
)

// ErrDuplicate is returned when a record with the same (date, service) key
// is already present.
var ErrDuplicate = errors.New("record already exists")

// Store holds the session's attendance records sorted ascending by date.
// Reads return copies, so callers can never mutate the stored sequence.
type Store struct {
	mu   sync.RWMutex
	recs []models.AttendanceRecord
}

// New returns a store seeded with a sorted copy of recs.
func New(recs ...models.AttendanceRecord) *Store {
	return &Store{recs: sortedCopy(recs)}
}

// All returns a copy of every record in ascending date order.
func (s *Store) All() []models.AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recs)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs)
}

// Last returns the most recent record, or false when the store is empty.
func (s *Store) Last() (models.AttendanceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.recs) == 0 {
		return models.AttendanceRecord{}, false
	}
	return s.recs[len(s.recs)-1], true
}

// Has reports whether a record with key k exists.
func (s *Store) Has(k models.RecordKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.recs, k) >= 0
}

// Append inserts rec keeping ascending date order. A record dated the same
// day as existing ones goes after them.
func (s *Store) Append(rec models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.recs, rec.Key()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicate, rec.Key())
	}

	i := sort.Search(len(s.recs), func(i int) bool {
		return s.recs[i].Date > rec.Date
	})
	s.recs = slices.Insert(s.recs, i, rec)
	return nil
}

// Replace swaps the whole record sequence.
func (s *Store) Replace(recs []models.AttendanceRecord) {
	sorted := sortedCopy(recs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = sorted
}

// Merge returns every record of primary plus the records of secondary whose
// key does not appear in primary, sorted ascending by date. Neither input is
// modified.
func Merge(primary, secondary []models.AttendanceRecord) []models.AttendanceRecord {
	seen := make(map[models.RecordKey]struct{}, len(primary))
	out := make([]models.AttendanceRecord, 0, len(primary)+len(secondary))

	for _, r := range primary {
		seen[r.Key()] = struct{}{}
		out = append(out, r)
	}
	for _, r := range secondary {
		if _, ok := seen[r.Key()]; ok {
			continue
		}
		seen[r.Key()] = struct{}{}
		out = append(out, r)
	}

	sortByDate(out)
	return out
}

func indexOf(recs []models.AttendanceRecord, k models.RecordKey) int {
	return slices.IndexFunc(recs, func(r models.AttendanceRecord) bool {
		return r.Key() == k
	})
}

func sortedCopy(recs []models.AttendanceRecord) []models.AttendanceRecord {
	out := slices.Clone(recs)
	if out == nil {
		out = []models.AttendanceRecord{}
	}
	sortByDate(out)
	return out
}

// ISO dates sort chronologically as strings.
func sortByDate(recs []models.AttendanceRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date < recs[j].Date
	})
}
