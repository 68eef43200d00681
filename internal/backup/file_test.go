package backup

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/headcount/internal/validation"
)

func TestEncodeDecode(t *testing.T) {
	now := time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := Encode(&buf, Build(sampleRecords(), now)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for _, key := range []string{`"timestamp"`, `"data"`, `"totalRecords": 2`, `"version": "2.0"`, `"totalAttendees": 300`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("encoded backup missing %s", key)
		}
	}

	f, err := Decode(&buf, validation.New())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !f.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", f.Timestamp, now)
	}
	if f.Data[1].Attendees != 180 {
		t.Errorf("unexpected records: %+v", f.Data)
	}
}

func TestBuildEmpty(t *testing.T) {
	f := Build(nil, time.Now())
	if f.Data == nil || f.TotalRecords != 0 {
		t.Errorf("Build(nil) = %+v", f)
	}
}

func TestDecodeRecomputesSummary(t *testing.T) {
	raw := `{
		"timestamp": "2024-01-07T18:00:00.000Z",
		"data": [{"date":"2024-01-07","service":"9am","asistentes":100,"total_vehiculos":20}],
		"totalRecords": 99,
		"version": "1.0",
		"summary": {"totalAttendees": 1, "totalVehicles": 1, "totalServices": 1}
	}`

	f, err := Decode(strings.NewReader(raw), validation.New())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.TotalRecords != 1 || f.Summary.TotalAttendees != 100 || f.Summary.TotalVehicles != 20 {
		t.Errorf("summary not recomputed: %+v", f)
	}
	if f.Version != "1.0" {
		t.Errorf("Version = %s, want 1.0", f.Version)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `backup`},
		{"missing data", `{"timestamp":"2024-01-07T18:00:00Z"}`},
		{"data not array", `{"data":{"date":"2024-01-07"}}`},
		{"data null", `{"data":null}`},
		{"record missing service", `{"data":[{"date":"2024-01-07","asistentes":10}]}`},
		{"record missing attendees", `{"data":[{"date":"2024-01-07","service":"9am"}]}`},
		{"record not object", `{"data":[42]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.raw), validation.New())
			if !errors.Is(err, ErrInvalidBackup) {
				t.Errorf("Decode() error = %v, want ErrInvalidBackup", err)
			}
		})
	}
}

func TestDecodeEmptyData(t *testing.T) {
	f, err := Decode(strings.NewReader(`{"data":[]}`), validation.New())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.TotalRecords != 0 || !f.Timestamp.IsZero() {
		t.Errorf("unexpected file: %+v", f)
	}
}
