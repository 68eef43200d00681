package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/utils"
)

// ConflictType represents the type of data-health conflict
type ConflictType string

const (
	ConflictDuplicateRecord ConflictType = "duplicate_record"
	ConflictInvalidDate     ConflictType = "invalid_date"
	ConflictUnknownService  ConflictType = "unknown_service"
	ConflictVehicleMismatch ConflictType = "vehicle_mismatch"
	ConflictNegativeCount   ConflictType = "negative_count"
)

// Conflict represents a detected problem in the record set
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string // YYYY-MM-DD format (if applicable)
	Service     models.Service
	Indexes     []int // positions of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// WireRecord is the minimum shape an incoming record must have. Attendees is
// a pointer so that an explicit 0 passes while a missing field does not.
type WireRecord struct {
	Date      string `json:"date" validate:"required"`
	Service   string `json:"service" validate:"required"`
	Attendees *int   `json:"asistentes" validate:"required"`
}

// RecordError describes why one incoming record was rejected.
type RecordError struct {
	Index  int
	Fields []string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: missing %s", e.Index, strings.Join(e.Fields, ", "))
}

// Validator checks records at ingestion boundaries and audits stored data.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return &Validator{validate: v}
}

// ValidateRaw checks that every raw JSON record carries a non-empty date, a
// non-empty service and an attendee count. It returns the first failure.
func (v *Validator) ValidateRaw(raw []json.RawMessage) error {
	for i, msg := range raw {
		var w WireRecord
		if err := json.Unmarshal(msg, &w); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := v.ValidateWire(i, w); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWire validates one decoded record.
func (v *Validator) ValidateWire(index int, w WireRecord) error {
	err := v.validate.Struct(w)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("record %d: %w", index, err)
	}
	re := &RecordError{Index: index}
	for _, fe := range verrs {
		re.Fields = append(re.Fields, fe.Field())
	}
	return re
}

// ValidateRecords audits a record set for problems that the browser edition
// let through: duplicate keys, bad dates, unknown services, negative counts
// and vehicle totals that disagree with their breakdown. These are warnings;
// aggregation tolerates all of them.
func (v *Validator) ValidateRecords(recs []models.AttendanceRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[models.RecordKey][]int)
	for i, r := range recs {
		seen[r.Key()] = append(seen[r.Key()], i)
	}
	for i, r := range recs {
		idxs := seen[r.Key()]
		if len(idxs) > 1 && idxs[0] == i {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateRecord,
				Description: fmt.Sprintf("Duplicate record for %s (%d copies)", r.Key(), len(idxs)),
				Date:        r.Date,
				Service:     r.Service,
				Indexes:     idxs,
			})
		}
	}

	for i, r := range recs {
		if !utils.ValidateDateFormat(r.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Record %d has invalid date: %q", i, r.Date),
				Date:        r.Date,
				Service:     r.Service,
				Indexes:     []int{i},
			})
		}

		if !r.Service.IsValid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownService,
				Description: fmt.Sprintf("Record %s has unknown service %q", r.Date, r.Service),
				Date:        r.Date,
				Service:     r.Service,
				Indexes:     []int{i},
			})
		}

		if r.Attendees < 0 || r.Children < 0 || r.VehiclesPrimary < 0 || r.VehiclesSecondary < 0 || r.VehiclesTotal < 0 || r.Offering.IsNegative() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeCount,
				Description: fmt.Sprintf("Record %s has a negative count", r.Key()),
				Date:        r.Date,
				Service:     r.Service,
				Indexes:     []int{i},
			})
		}

		// Records without a breakdown are not checked.
		if r.VehiclesPrimary+r.VehiclesSecondary > 0 && r.VehiclesPrimary+r.VehiclesSecondary != r.VehiclesTotal {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictVehicleMismatch,
				Description: fmt.Sprintf("Record %s vehicle total %d does not match %d + %d",
					r.Key(), r.VehiclesTotal, r.VehiclesPrimary, r.VehiclesSecondary),
				Date:    r.Date,
				Service: r.Service,
				Indexes: []int{i},
			})
		}
	}

	return result
}

// AutoFixDuplicateRecords keeps the first record of every duplicated key and
// drops the rest, in line with the earlier-source-wins merge rule.
func AutoFixDuplicateRecords(conflicts []Conflict, recs []models.AttendanceRecord) ([]models.AttendanceRecord, []FixAction) {
	drop := make(map[int]bool)
	var actions []FixAction

	for _, c := range conflicts {
		if c.Type != ConflictDuplicateRecord || len(c.Indexes) < 2 {
			continue
		}
		for _, idx := range c.Indexes[1:] {
			drop[idx] = true
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Kept first record for %s/%s, removed %d duplicate(s)", c.Date, c.Service, len(c.Indexes)-1),
			SourceConflict: c,
		})
	}

	if len(drop) == 0 {
		return recs, nil
	}

	out := make([]models.AttendanceRecord, 0, len(recs)-len(drop))
	for i, r := range recs {
		if !drop[i] {
			out = append(out, r)
		}
	}
	return out, actions
}
