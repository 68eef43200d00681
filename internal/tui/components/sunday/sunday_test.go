package sunday

import (
	"strings"
	"testing"

	"github.com/julianstephens/headcount/internal/models"
)

func TestContent(t *testing.T) {
	m := New(80, 20)
	m.SetRecords([]models.AttendanceRecord{
		{Date: "2024-01-07", Service: models.Service9AM, Attendees: 120, VehiclesPrimary: 25, VehiclesSecondary: 5, VehiclesTotal: 30},
		{Date: "2024-01-07", Service: models.Service11AM, Attendees: 150, VehiclesPrimary: 40, VehiclesTotal: 40},
		{Date: "2024-01-10", Service: models.Service7PM, Attendees: 45},
	})

	got := m.Content()
	for _, want := range []string{"domingo, 7 de enero de 2024", "N/D", "270", "Little Feet", "70"} {
		if !strings.Contains(got, want) {
			t.Errorf("content missing %q:\n%s", want, got)
		}
	}
}

func TestEmpty(t *testing.T) {
	m := New(80, 20)
	m.SetRecords(nil)
	if got := m.View(); got != "No Sunday records yet." {
		t.Errorf("View() = %q", got)
	}
}
