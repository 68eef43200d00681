package attendance

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/utils"
)

type ListCmd struct {
	Month string `help:"Only show days in this month (YYYY-MM)."`
	Limit int    `short:"n" help:"Maximum number of days to show. 0 shows all." default:"20"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if c.Month != "" {
		if _, err := time.Parse("2006-01", c.Month); err != nil {
			return fmt.Errorf("invalid month %q, use YYYY-MM", c.Month)
		}
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}

	recs := rs.All()
	if c.Month != "" {
		filtered := recs[:0]
		for _, r := range recs {
			if strings.HasPrefix(r.Date, c.Month+"-") {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}

	days := stats.GroupByDate(recs)
	if len(days) == 0 {
		ctx.Println("No records found.")
		return nil
	}

	// Newest first
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	shown := days
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}

	ctx.Println(HistoryTable(shown))
	if len(shown) < len(days) {
		ctx.Printf("Showing %d of %d days. Use --limit 0 to show all.\n", len(shown), len(days))
	}
	return nil
}

// HistoryTable renders one row per day with the per-service attendance.
func HistoryTable(days []stats.DayGroup) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Fecha", "Servicios", "Asistentes", "Niños", "Vehículos", "Ofrenda").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, d := range days {
		t.Row(
			dayLabel(d.Date),
			serviceSummary(d.Records),
			strconv.Itoa(d.Attendees),
			strconv.Itoa(childrenOf(d.Records)),
			strconv.Itoa(d.Vehicles),
			offeringOf(d.Records).StringFixed(2),
		)
	}
	return t.Render()
}

func dayLabel(date string) string {
	t, err := utils.ParseDate(date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %s", utils.WeekdayShort(t.Weekday()), date)
}

func serviceSummary(recs []models.AttendanceRecord) string {
	parts := make([]string, 0, len(recs))
	for _, r := range recs {
		parts = append(parts, fmt.Sprintf("%s: %d", r.Service.ShortLabel(), r.Attendees))
	}
	return strings.Join(parts, " · ")
}

func childrenOf(recs []models.AttendanceRecord) int {
	n := 0
	for _, r := range recs {
		n += r.Children
	}
	return n
}

func offeringOf(recs []models.AttendanceRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range recs {
		sum = sum.Add(r.Offering)
	}
	return sum
}
