package records

import (
	"errors"
	"testing"

	"github.com/julianstephens/headcount/internal/models"
)

func rec(date string, svc models.Service, attendees int) models.AttendanceRecord {
	return models.AttendanceRecord{Date: date, Service: svc, Attendees: attendees}
}

func TestNewSortsByDate(t *testing.T) {
	s := New(
		rec("2024-02-04", models.Service9AM, 10),
		rec("2024-01-07", models.Service11AM, 20),
		rec("2024-01-07", models.Service9AM, 30),
	)

	got := s.All()
	want := []string{"2024-01-07/11am", "2024-01-07/9am", "2024-02-04/9am"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Key().String() != want[i] {
			t.Errorf("record %d = %s, want %s", i, r.Key(), want[i])
		}
	}
}

func TestAppend(t *testing.T) {
	s := New(
		rec("2024-01-07", models.Service9AM, 10),
		rec("2024-01-21", models.Service9AM, 10),
	)

	if err := s.Append(rec("2024-01-14", models.Service5PM, 5)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append(rec("2024-01-07", models.Service11AM, 5)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got := s.All()
	order := []string{"2024-01-07/9am", "2024-01-07/11am", "2024-01-14/5pm", "2024-01-21/9am"}
	for i, r := range got {
		if r.Key().String() != order[i] {
			t.Errorf("record %d = %s, want %s", i, r.Key(), order[i])
		}
	}

	last, ok := s.Last()
	if !ok || last.Date != "2024-01-21" {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestAppendDuplicate(t *testing.T) {
	s := New(rec("2024-01-07", models.Service9AM, 10))

	err := s.Append(rec("2024-01-07", models.Service9AM, 99))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Append() error = %v, want ErrDuplicate", err)
	}
	if s.Len() != 1 || s.All()[0].Attendees != 10 {
		t.Errorf("store changed after rejected append: %+v", s.All())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := New(rec("2024-01-07", models.Service9AM, 10))
	got := s.All()
	got[0].Attendees = 500

	if s.All()[0].Attendees != 10 {
		t.Error("mutating All() result changed the store")
	}
}

func TestReplace(t *testing.T) {
	s := New(rec("2024-01-07", models.Service9AM, 10))
	s.Replace([]models.AttendanceRecord{
		rec("2024-03-03", models.Service5PM, 1),
		rec("2024-02-04", models.Service9AM, 2),
	})

	got := s.All()
	if len(got) != 2 || got[0].Date != "2024-02-04" {
		t.Errorf("Replace() result = %+v", got)
	}
	if s.Has(models.RecordKey{Date: "2024-01-07", Service: models.Service9AM}) {
		t.Error("old record survived Replace()")
	}
}

func TestLastEmpty(t *testing.T) {
	if _, ok := New().Last(); ok {
		t.Error("Last() on empty store returned ok")
	}
}

func TestMerge(t *testing.T) {
	seed := []models.AttendanceRecord{
		rec("2024-01-14", models.Service9AM, 100),
		rec("2024-01-07", models.Service9AM, 90),
	}
	local := []models.AttendanceRecord{
		rec("2024-01-07", models.Service9AM, 1), // collides with the seed
		rec("2024-01-10", models.Service7PM, 40),
	}

	got := Merge(seed, local)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantDates := []string{"2024-01-07", "2024-01-10", "2024-01-14"}
	for i, r := range got {
		if r.Date != wantDates[i] {
			t.Errorf("record %d date = %s, want %s", i, r.Date, wantDates[i])
		}
	}
	if got[0].Attendees != 90 {
		t.Errorf("collision resolved to %d attendees, want seed value 90", got[0].Attendees)
	}
	if seed[0].Date != "2024-01-14" {
		t.Error("Merge() reordered its input")
	}
}
