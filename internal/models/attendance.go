package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Service identifies a service slot within a day.
type Service string

const (
	Service9AM      Service = "9am"
	Service11AM     Service = "11am"
	Service5PM      Service = "5pm"
	Service7PM      Service = "7pm"
	Service6AM      Service = "6am"
	ServiceCenaAmor Service = "cena_amor"
	ServiceEspecial Service = "especial"
)

// AllServices lists every known service slot in display order.
var AllServices = []Service{
	Service9AM,
	Service11AM,
	Service5PM,
	Service7PM,
	Service6AM,
	ServiceCenaAmor,
	ServiceEspecial,
}

// SundayServices are the three regular Sunday slots.
var SundayServices = []Service{Service9AM, Service11AM, Service5PM}

var timeLabels = map[string]Service{
	"9:00 AM":  Service9AM,
	"11:00 AM": Service11AM,
	"5:00 PM":  Service5PM,
	"7:00 PM":  Service7PM,
	"6:00 AM":  Service6AM,
}

var serviceLabels = map[Service]string{
	Service9AM:      "9:00 AM",
	Service11AM:     "11:00 AM",
	Service5PM:      "5:00 PM",
	Service7PM:      "7:00 PM",
	Service6AM:      "6:00 AM",
	ServiceCenaAmor: "Cena de Amor",
	ServiceEspecial: "Servicio Especial",
}

var shortLabels = map[Service]string{
	Service9AM:      "9:00 AM",
	Service11AM:     "11:00 AM",
	Service5PM:      "5:00 PM",
	ServiceCenaAmor: "Cena Amor",
	ServiceEspecial: "Especial",
}

// ServiceFromTimeLabel maps a seed dataset time label ("9:00 AM") to a service.
// Unrecognized labels are special services.
func ServiceFromTimeLabel(label string) Service {
	if s, ok := timeLabels[label]; ok {
		return s
	}
	return ServiceEspecial
}

// ParseService parses a service key such as "11am" or "cena_amor".
func ParseService(s string) (Service, error) {
	key := Service(strings.ToLower(strings.TrimSpace(s)))
	if key.IsValid() {
		return key, nil
	}
	return "", fmt.Errorf("invalid service: %q", s)
}

// IsValid reports whether s is a known service key.
func (s Service) IsValid() bool {
	_, ok := serviceLabels[s]
	return ok
}

// Label returns the display name of the service. Unknown keys are returned as-is.
func (s Service) Label() string {
	if l, ok := serviceLabels[s]; ok {
		return l
	}
	return string(s)
}

// ShortLabel is the compact name used in the history table and the complete export.
func (s Service) ShortLabel() string {
	if l, ok := shortLabels[s]; ok {
		return l
	}
	return string(s)
}

// AttendanceRecord is one attendance entry for a single service occurrence.
//
// JSON keys follow the storage format of the browser edition so that its
// backups and local state can be restored as-is.
type AttendanceRecord struct {
	ID                string          `json:"id,omitempty"`
	Date              string          `json:"date"` // YYYY-MM-DD format
	Service           Service         `json:"service"`
	Attendees         int             `json:"asistentes"`
	Children          int             `json:"niños"`
	VehiclesPrimary   int             `json:"vehiculos_impacto"`
	VehiclesSecondary int             `json:"vehiculos_lf"`
	VehiclesTotal     int             `json:"total_vehiculos"`
	Offering          decimal.Decimal `json:"ofrenda"`
	Notes             string          `json:"notas"`
}

// RecordKey is the uniqueness key of an attendance record.
type RecordKey struct {
	Date    string
	Service Service
}

// Key returns the (date, service) uniqueness key.
func (r AttendanceRecord) Key() RecordKey {
	return RecordKey{Date: r.Date, Service: r.Service}
}

func (k RecordKey) String() string {
	return k.Date + "/" + string(k.Service)
}
