package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/headcount/internal/models"
)

// ErrInvalidEntry is returned for manually entered records that fail
// validation.
var ErrInvalidEntry = errors.New("invalid entry")

// Entry is a record as typed by a person, before conversion. A nil Total
// means the vehicle total is the sum of its breakdown.
type Entry struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Service   string `json:"service" validate:"required"`
	Attendees int    `json:"asistentes" validate:"gte=0"`
	Children  int    `json:"niños" validate:"gte=0"`
	Primary   int    `json:"vehiculos_impacto" validate:"gte=0"`
	Secondary int    `json:"vehiculos_lf" validate:"gte=0"`
	Total     *int   `json:"total_vehiculos" validate:"omitempty,gte=0"`
	Offering  string `json:"ofrenda" validate:"omitempty,numeric"`
	Notes     string `json:"notas" validate:"max=500"`
}

// ValidateEntry checks e and converts it to a record without an id.
func (v *Validator) ValidateEntry(e Entry) (models.AttendanceRecord, error) {
	e.Offering = strings.TrimSpace(e.Offering)
	if err := v.validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.AttendanceRecord{}, err
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return models.AttendanceRecord{}, fmt.Errorf("%w: %s", ErrInvalidEntry, strings.Join(fields, ", "))
	}

	svc, err := models.ParseService(e.Service)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	offering := decimal.Zero
	if e.Offering != "" {
		offering, err = decimal.NewFromString(e.Offering)
		if err != nil || offering.IsNegative() {
			return models.AttendanceRecord{}, fmt.Errorf("%w: offering must be a non-negative amount", ErrInvalidEntry)
		}
	}

	total := e.Primary + e.Secondary
	if e.Total != nil {
		total = *e.Total
	}

	return models.AttendanceRecord{
		Date:              e.Date,
		Service:           svc,
		Attendees:         e.Attendees,
		Children:          e.Children,
		VehiclesPrimary:   e.Primary,
		VehiclesSecondary: e.Secondary,
		VehiclesTotal:     total,
		Offering:          offering,
		Notes:             strings.TrimSpace(e.Notes),
	}, nil
}
