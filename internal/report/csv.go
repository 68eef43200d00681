// Package report renders aggregate views as CSV, XLSX and share messages.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/utils"
)

var (
	dailyHeader    = []string{"Servicio", "Asistentes", "Vehículos Total", "Vehículos LF", "Niños", "Notas"}
	periodHeader   = []string{"Fecha", "Día", "Servicio", "Asistentes", "Vehículos Total", "Vehículos LF", "Niños", "Notas"}
	completeHeader = []string{"Fecha", "Servicio", "Asistentes", "Niños", "Vehículos Total", "Vehículos LF"}
)

// table accumulates CSV output. Every field is double-quoted with embedded
// quotes doubled, and lines end in CRLF so spreadsheet apps on Windows open
// the file cleanly.
type table struct {
	b strings.Builder
}

func (t *table) row(fields ...string) {
	for i, f := range fields {
		if i > 0 {
			t.b.WriteByte(',')
		}
		t.b.WriteByte('"')
		t.b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		t.b.WriteByte('"')
	}
	t.b.WriteString("\r\n")
}

func (t *table) blank() {
	t.b.WriteString("\r\n")
}

func (t *table) bytes() []byte {
	return []byte(t.b.String())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// average renders total/count with RoundDiv, or N/A when count is 0.
func average(total, count int) string {
	if count == 0 {
		return constants.NotAvailable
	}
	return itoa(stats.RoundDiv(total, count))
}

func periodRow(t *table, r models.AttendanceRecord) {
	weekday := ""
	if d, err := utils.ParseDate(r.Date); err == nil {
		weekday = utils.WeekdayShort(d.Weekday())
	}
	t.row(
		utils.FormatLongDate(r.Date),
		weekday,
		r.Service.Label(),
		itoa(r.Attendees),
		itoa(r.VehiclesTotal),
		itoa(r.VehiclesSecondary),
		itoa(r.Children),
		r.Notes,
	)
}

// DailyCSV renders the records of one day.
func DailyCSV(date string, recs []models.AttendanceRecord) []byte {
	var t table
	t.row("Reporte Diario - " + utils.FormatLongDate(date))
	t.blank()
	t.row(dailyHeader...)

	for _, r := range recs {
		t.row(
			r.Service.Label(),
			itoa(r.Attendees),
			itoa(r.VehiclesTotal),
			itoa(r.VehiclesSecondary),
			itoa(r.Children),
			r.Notes,
		)
	}

	sum := stats.Totals(recs)
	t.blank()
	t.row("TOTAL ASISTENTES", itoa(sum.Attendees))
	t.row("TOTAL VEHÍCULOS", itoa(sum.Vehicles))
	t.row("SERVICIOS", itoa(sum.Services))
	return t.bytes()
}

// WeeklyCSV renders a seven-day window ending on now. The average is per
// day with data.
func WeeklyCSV(church string, now time.Time, recs []models.AttendanceRecord) []byte {
	var t table
	t.row(fmt.Sprintf("Reporte Semanal - %s", church))
	t.row("Periodo", utils.FormatLongDate(utils.DaysBefore(now, 7)), utils.FormatLongDate(utils.DateOf(now)))
	t.row("Generado", now.Format(time.DateTime))
	t.blank()
	t.row(periodHeader...)

	for _, r := range recs {
		periodRow(&t, r)
	}

	sum := stats.Totals(recs)
	days := len(stats.GroupByDate(recs))
	t.blank()
	t.row("TOTAL ASISTENTES", itoa(sum.Attendees))
	t.row("TOTAL VEHÍCULOS", itoa(sum.Vehicles))
	t.row("DÍAS CON DATOS", itoa(days))
	t.row("PROMEDIO POR DÍA", average(sum.Attendees, days))
	return t.bytes()
}

// MonthlyCSV renders one calendar month grouped by day, with a total line
// after each day. The average is per service.
func MonthlyCSV(year int, month time.Month, recs []models.AttendanceRecord) []byte {
	var t table
	t.row("Reporte Mensual - " + utils.MonthLabel(year, month))
	t.blank()
	t.row(periodHeader...)

	for _, day := range stats.GroupByDate(recs) {
		for _, r := range day.Records {
			periodRow(&t, r)
		}
		t.row("", "", "TOTAL DÍA", itoa(day.Attendees), itoa(day.Vehicles))
		t.blank()
	}

	sum := stats.Totals(recs)
	t.row("TOTAL ASISTENTES", itoa(sum.Attendees))
	t.row("TOTAL VEHÍCULOS", itoa(sum.Vehicles))
	t.row("SERVICIOS", itoa(sum.Services))
	t.row("PROMEDIO POR SERVICIO", average(sum.Attendees, sum.Services))
	return t.bytes()
}

// CompleteCSV renders every record. The average is per service.
func CompleteCSV(church string, now time.Time, recs []models.AttendanceRecord) []byte {
	var t table
	t.row(fmt.Sprintf("Estadísticas %s", church))
	t.row("Generado", now.Format(time.DateTime))
	t.row("Registros", itoa(len(recs)))
	t.blank()
	t.row(completeHeader...)

	for _, r := range recs {
		t.row(
			utils.FormatLongDate(r.Date),
			r.Service.ShortLabel(),
			itoa(r.Attendees),
			itoa(r.Children),
			itoa(r.VehiclesTotal),
			itoa(r.VehiclesSecondary),
		)
	}

	sum := stats.Totals(recs)
	t.blank()
	t.row("TOTAL ASISTENTES", itoa(sum.Attendees))
	t.row("TOTAL VEHÍCULOS", itoa(sum.Vehicles))
	t.row("SERVICIOS", itoa(sum.Services))
	t.row("PROMEDIO POR SERVICIO", average(sum.Attendees, sum.Services))
	return t.bytes()
}

// DailyFilename is the default name of a daily report.
func DailyFilename(date string) string {
	return fmt.Sprintf("reporte_diario_%s.csv", date)
}

// WeeklyFilename is the default name of a weekly report generated on now.
func WeeklyFilename(now time.Time) string {
	return fmt.Sprintf("reporte_semanal_impacto_%s.csv", utils.DateOf(now))
}

// MonthlyFilename is the default name of a monthly report.
func MonthlyFilename(year int, month time.Month) string {
	return fmt.Sprintf("reporte_mensual_%d_%02d.csv", year, int(month))
}

// CompleteFilename is the default name of the complete report with the
// given extension ("csv" or "xlsx").
func CompleteFilename(ext string) string {
	return "estadisticas_iglesia_impacto." + ext
}

// JSONFilename is the default name of a JSON export generated on now.
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("backup-iglesia-impacto-%s.json", utils.DateOf(now))
}
