package report

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/models"
	"github.com/julianstephens/headcount/internal/stats"
	"github.com/julianstephens/headcount/internal/trend"
	"github.com/julianstephens/headcount/internal/utils"
)

func heading(church string) string {
	if church == "" {
		church = constants.DefaultChurchName
	}
	return utils.Upper(church)
}

func sundayCount(s trend.SundaySummary, svc models.Service) string {
	n, ok := s.ServiceAttendees(svc)
	if !ok {
		return constants.NotRecorded
	}
	return itoa(n)
}

// SundayMessage summarises the most recent Sunday.
func SundayMessage(church string, s trend.SundaySummary) string {
	return fmt.Sprintf(`📊 %s - RESUMEN DOMINGO
%s

⛪️ ASISTENCIA:
• 9:00 AM: %s personas
• 11:00 AM: %s personas
• 5:00 PM: %s personas
🎯 TOTAL: %d asistentes

🚗 VEHÍCULOS:
• Impacto: %d vehículos
• Little Feet: %d vehículos
🎯 TOTAL: %d vehículos

📈 ¡A seguir creciendo en la obra de Dios! 🙏`,
		heading(church),
		utils.Upper(utils.FormatLongDate(s.Date)),
		sundayCount(s, models.Service9AM),
		sundayCount(s, models.Service11AM),
		sundayCount(s, models.Service5PM),
		s.TotalAttendees(),
		s.PrimaryVehicles(),
		s.SecondaryVehicles(),
		s.TotalVehicles(),
	)
}

// WeeklyMessage summarises the last seven days.
func WeeklyMessage(church string, w trend.WeekSummary) string {
	return fmt.Sprintf(`📊 %s - RESUMEN SEMANAL

📅 PERIODO: Últimos 7 días
👥 TOTAL SEMANAL: %d asistentes
🚗 VEHÍCULOS: %d vehículos
📈 PROMEDIO DIARIO: %d personas
🏆 DÍA MÁS ALTO: %d asistentes

🎯 ¡Dios sigue agregando a su iglesia! ✨`,
		heading(church), w.Attendees, w.Vehicles, w.AvgDaily, w.HighestDay)
}

// MonthlyMessage reports the latest month of rollup against the one before.
// Growth figures are 0.0 when there is no previous month.
func MonthlyMessage(church string, rollup []stats.MonthSummary) string {
	label := constants.NotAvailable
	var cur, prev stats.MonthSummary
	if n := len(rollup); n > 0 {
		cur = rollup[n-1]
		label = cur.Label
		if n > 1 {
			prev = rollup[n-2]
		}
	}

	return fmt.Sprintf(`📊 %s - REPORTE MENSUAL

📅 MES: %s
📈 ASISTENCIA: %d promedio por servicio
📊 CRECIMIENTO: %.1f%% vs mes anterior
🚗 VEHÍCULOS: %d promedio
📈 CRECIMIENTO VEHÍCULOS: %.1f%%

🎉 ¡Seguimos avanzando en el propósito de Dios! 🙌`,
		heading(church),
		label,
		cur.AvgAttendees,
		trend.Growth(cur.AvgAttendees, prev.AvgAttendees),
		cur.AvgVehicles,
		trend.Growth(cur.AvgVehicles, prev.AvgVehicles),
	)
}

// VehiclesMessage reports vehicle statistics.
func VehiclesMessage(church string, v stats.VehicleStats) string {
	return fmt.Sprintf(`🚗 %s - ESTADÍSTICAS VEHÍCULOS

📊 TOTAL REGISTRADO: %d vehículos
🚐 LITTLE FEET: %d vehículos
📈 PROMEDIO POR SERVICIO: %d vehículos
🏆 RÉCORD: %d vehículos

🙏 ¡Gracias por el apoyo en transporte!
💛 Cada vehículo representa familias alcanzadas.`,
		heading(church), v.Total, v.Secondary, v.Average, v.Record)
}

// QuickSummary is a short plain-text overview of the whole record set.
func QuickSummary(recs []models.AttendanceRecord) string {
	sum := stats.Totals(recs)
	avgs := stats.ServiceAverages(recs)

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Registros: %d servicios\n", sum.Services)
	fmt.Fprintf(&b, "👥 Asistentes: %d\n", sum.Attendees)
	fmt.Fprintf(&b, "🚗 Vehículos: %d\n", sum.Vehicles)
	fmt.Fprintf(&b, "⛪️ Promedios: 9:00 AM %d · 11:00 AM %d · 5:00 PM %d\n", avgs.NineAM, avgs.ElevenAM, avgs.FivePM)
	if n := len(recs); n > 0 {
		last := recs[n-1]
		fmt.Fprintf(&b, "🕐 Última actividad: %s, %s (%d asistentes)", last.Service.Label(), utils.FormatLongDate(last.Date), last.Attendees)
	} else {
		fmt.Fprintf(&b, "🕐 Última actividad: %s", constants.NotAvailable)
	}
	return b.String()
}

// SummaryMessage wraps QuickSummary for sharing.
func SummaryMessage(church string, recs []models.AttendanceRecord) string {
	return fmt.Sprintf(`📊 RESUMEN %s

%s

💾 Para un respaldo completo usa "headcount backup create".`, heading(church), QuickSummary(recs))
}

// TrendMessage describes a month-over-month trend.
func TrendMessage(t trend.Trend) string {
	more, cheer := "menos", "💪 ¡Seguimos adelante!"
	if t.Direction == trend.Increasing {
		more, cheer = "más", "🎉 ¡Buen trabajo!"
	}
	return fmt.Sprintf("El promedio mensual está %s\n%d personas %s que el mes anterior. (%s%%)\n%s",
		t.Direction.Label(), t.Difference, more, t.PercentString(), cheer)
}

// encodeComponent escapes s the way a browser's encodeURIComponent does
// for the characters that matter in share links.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WhatsAppURL returns a wa.me share link for msg.
func WhatsAppURL(msg string) string {
	return "https://wa.me/?text=" + encodeComponent(msg)
}

// EmailURL returns a mailto link with a pre-filled subject and body.
func EmailURL(to, subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, encodeComponent(subject), encodeComponent(body))
}
