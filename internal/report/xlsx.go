package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
)

const (
	recordsSheet = "Asistencia"
	summarySheet = "Resumen"
)

// CompleteXLSX writes the complete report as a workbook with a record sheet
// and a summary sheet.
func CompleteXLSX(church string, now time.Time, recs []models.AttendanceRecord, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), recordsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(completeHeader))
	for i, h := range completeHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(recordsSheet, "A1", "F1", bold); err != nil {
		return err
	}

	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Date,
			r.Service.ShortLabel(),
			r.Attendees,
			r.Children,
			r.VehiclesTotal,
			r.VehiclesSecondary,
		}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	sum := stats.Totals(recs)
	summary := [][]interface{}{
		{fmt.Sprintf("Estadísticas %s", church)},
		{"Generado", now.Format(time.DateTime)},
		{"TOTAL ASISTENTES", sum.Attendees},
		{"TOTAL VEHÍCULOS", sum.Vehicles},
		{"SERVICIOS", sum.Services},
		{"PROMEDIO POR SERVICIO", average(sum.Attendees, sum.Services)},
	}
	for _, m := range stats.MonthlyRollup(recs) {
		summary = append(summary, []interface{}{m.Label, m.AvgAttendees})
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", bold); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
