package reports

import (
	"context"
	"fmt"

	"github.com/julianstephens/headcount/internal/cli"
	"github.com/julianstephens/headcount/internal/report"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/trend"
)

var shareSubjects = map[string]string{
	"sunday":   "Resumen Domingo",
	"weekly":   "Resumen Semanal",
	"monthly":  "Reporte Mensual",
	"vehicles": "Estadísticas Vehículos",
	"summary":  "Resumen",
}

type ShareCmd struct {
	Kind  string `arg:"" enum:"sunday,weekly,monthly,vehicles,summary" help:"Message to share: sunday, weekly, monthly, vehicles or summary."`
	Email string `help:"Print a mailto link addressed to this recipient instead of a WhatsApp link."`
	Text  bool   `help:"Print only the message text."`
}

func (c *ShareCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	now, err := ctx.Clock()
	if err != nil {
		return err
	}
	rs, err := ctx.LoadRecords(context.Background())
	if err != nil {
		return err
	}
	recs := rs.All()
	church := settings.ChurchName

	var msg string
	switch c.Kind {
	case "sunday":
		s, ok := trend.LastSunday(recs)
		if !ok {
			ctx.Println("No Sunday records to share.")
			return nil
		}
		msg = report.SundayMessage(church, s)
	case "weekly":
		msg = report.WeeklyMessage(church, trend.Weekly(trend.LastSevenDays(recs, now)))
	case "monthly":
		msg = report.MonthlyMessage(church, stats.MonthlyRollup(recs))
	case "vehicles":
		msg = report.VehiclesMessage(church, stats.Vehicles(recs))
	case "summary":
		msg = report.SummaryMessage(church, recs)
	default:
		return fmt.Errorf("unknown message %q", c.Kind)
	}

	ctx.Println(msg)
	if c.Text {
		return nil
	}

	ctx.Println()
	if c.Email != "" {
		subject := fmt.Sprintf("%s - %s", shareSubjects[c.Kind], church)
		ctx.Println(report.EmailURL(c.Email, subject, msg))
		return nil
	}
	ctx.Println(report.WhatsAppURL(msg))
	return nil
}
