// Package seed loads the externally supplied attendance history.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/headcount/internal/models"
)

// Breakdown splits a service's vehicles into the two fleets.
type Breakdown struct {
	Primary   int `json:"impacto"`
	Secondary int `json:"little_feet"`
}

// ServiceEntry is one service of a seed day.
type ServiceEntry struct {
	Time      string     `json:"hora"`
	People    int        `json:"personas"`
	Vehicles  int        `json:"vehiculos"`
	Breakdown *Breakdown `json:"desglose,omitempty"`
	Notes     string     `json:"notas"`
}

// DayEntry is one day of the seed dataset.
type DayEntry struct {
	Date     string         `json:"fecha"`
	Services []ServiceEntry `json:"cultos"`
}

// Transform flattens day entries into attendance records. Each record gets
// a fresh id.
func Transform(days []DayEntry) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, d := range days {
		for _, s := range d.Services {
			rec := models.AttendanceRecord{
				ID:              uuid.NewString(),
				Date:            d.Date,
				Service:         models.ServiceFromTimeLabel(s.Time),
				Attendees:       s.People,
				VehiclesPrimary: s.Vehicles,
				VehiclesTotal:   s.Vehicles,
				Offering:        decimal.Zero,
				Notes:           s.Notes,
			}
			if s.Breakdown != nil {
				rec.VehiclesPrimary = s.Breakdown.Primary
				rec.VehiclesSecondary = s.Breakdown.Secondary
			}
			out = append(out, rec)
		}
	}
	return out
}

// Decode reads a JSON seed dataset.
func Decode(r io.Reader) ([]DayEntry, error) {
	var days []DayEntry
	if err := json.NewDecoder(r).Decode(&days); err != nil {
		return nil, fmt.Errorf("failed to decode seed dataset: %w", err)
	}
	return days, nil
}

// Loader fetches seed datasets from a local path or an http(s) URL.
type Loader struct {
	Client *http.Client
}

// NewLoader returns a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{Client: &http.Client{Timeout: timeout}}
}

// Fetch loads and transforms the dataset at src.
func (l *Loader) Fetch(ctx context.Context, src string) ([]models.AttendanceRecord, error) {
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	days, err := Decode(rc)
	if err != nil {
		return nil, err
	}
	return Transform(days), nil
}

func (l *Loader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed dataset: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed dataset: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("failed to fetch seed dataset: status %d", res.StatusCode)
	}
	return res.Body, nil
}
