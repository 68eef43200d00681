package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/report"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

const barWidth = 30

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}
	recs := rs.All()

	ctx.Println(titleStyle.Render("Quick stats"))
	ctx.Println(report.QuickSummary(recs))
	if len(recs) == 0 {
		return nil
	}

	ctx.Println()
	ctx.Println(titleStyle.Render("Monthly rollup"))
	ctx.Println(RollupTable(stats.MonthlyRollup(recs)))

	ctx.Println()
	ctx.Println(titleStyle.Render("Service distribution"))
	ctx.Println(DistributionChart(stats.ServiceDistribution(recs)))

	avgs := stats.ServiceAverages(recs)
	ctx.Println()
	ctx.Println(titleStyle.Render("Average attendance per service"))
	for _, s := range models.SundayServices {
		ctx.Printf("  %-9s %d\n", s.Label(), avgs.For(s))
	}

	v := stats.Vehicles(recs)
	ctx.Println()
	ctx.Println(titleStyle.Render("Vehicles"))
	ctx.Printf("  Total:       %d\n", v.Total)
	ctx.Printf("  Little Feet: %d\n", v.Secondary)
	ctx.Printf("  Average:     %d per service\n", v.Average)
	ctx.Printf("  Record:      %d\n", v.Record)
	return nil
}

// RollupTable renders the monthly rollup, one row per month.
func RollupTable(rollup []stats.MonthSummary) string {
	t := newTable("Mes", "Servicios", "Asistentes", "Promedio", "Vehículos", "Prom. vehículos", "Little Feet")
	for _, m := range rollup {
		t.Row(
			m.Label,
			strconv.Itoa(m.Occurrences),
			strconv.Itoa(m.TotalAttendees),
			strconv.Itoa(m.AvgAttendees),
			strconv.Itoa(m.TotalVehicles),
			strconv.Itoa(m.AvgVehicles),
			strconv.Itoa(m.AvgSecondaryVehicles),
		)
	}
	return t.Render()
}

// DistributionChart renders the attendee share of each service bucket.
func DistributionChart(d stats.Distribution) string {
	rows := []struct {
		label string
		value int
	}{
		{models.Service9AM.Label(), d.NineAM},
		{models.Service11AM.Label(), d.ElevenAM},
		{models.Service5PM.Label(), d.FivePM},
		{"Otros", d.Other},
	}

	max := 0
	for _, r := range rows {
		if r.value > max {
			max = r.value
		}
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-9s %s %d (%s%%)\n", r.label,
			barStyle.Render(report.Bar(r.value, max, barWidth)), r.value, report.Percent(r.value, d.Total()))
	}
	return strings.TrimRight(b.String(), "\n")
}

type TrendCmd struct{}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}

	rollup := stats.MonthlyRollup(rs.All())
	t, err := trend.MonthOverMonth(rollup)
	if errors.Is(err, trend.ErrInsufficientData) {
		ctx.Printf("⊘ Not enough data for a trend: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Println(RollupTable([]stats.MonthSummary{t.Previous, t.Current}))
	ctx.Println()
	ctx.Println(report.TrendMessage(t))
	ctx.Printf("Vehículos: %s%%\n", t.VehiclesPercentString())
	return nil
}

type SundayCmd struct{}

func (c *SundayCmd) Run(ctx *cli.Context) error {
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}

	s, ok := trend.LastSunday(rs.All())
	if !ok {
		ctx.Println("No Sunday records yet.")
		return nil
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	ctx.Println(report.SundayMessage(settings.ChurchName, s))
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	now, err := ctx.Clock()
	if err != nil {
		return err
	}
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}

	d := trend.Today(rs.All(), now)
	ctx.Println(titleStyle.Render(DayTitle(d.Date)))
	if len(d.Records) == 0 {
		ctx.Println("No records for today.")
		return nil
	}
	ctx.Println(DayTable(d))
	return nil
}

// DayTitle is the heading of a single-day view.
func DayTitle(date string) string {
	return "Hoy: " + formatDate(date)
}

// DayTable renders the records of one day with a totals row.
func DayTable(d trend.DaySummary) string {
	t := newTable("Servicio", "Asistentes", "Niños", "Vehículos", "Little Feet", "Notas")
	for _, r := range d.Records {
		t.Row(
			r.Service.Label(),
			strconv.Itoa(r.Attendees),
			strconv.Itoa(r.Children),
			strconv.Itoa(r.VehiclesTotal),
			strconv.Itoa(r.VehiclesSecondary),
			r.Notes,
		)
	}
	t.Row("TOTAL", strconv.Itoa(d.Attendees), "", strconv.Itoa(d.Vehicles), strconv.Itoa(d.Secondary), "")
	return t.Render()
}

func formatDate(date string) string {
	if date == "" {
		return constants.NotAvailable
	}
	return utils.FormatLongDate(date)
}
