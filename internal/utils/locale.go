package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// MonthName returns the lower-case Spanish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return spanishMonths[m-1]
}

// WeekdayName returns the lower-case Spanish name of d.
func WeekdayName(d time.Weekday) string {
	return spanishWeekdays[d]
}

// WeekdayShort returns the abbreviated Spanish weekday ("dom", "lun", ...).
func WeekdayShort(d time.Weekday) string {
	return string([]rune(spanishWeekdays[d])[:3])
}

// MonthLabel formats a month as "enero de 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s de %d", MonthName(month), year)
}

// FormatLongDate renders a calendar date the way the dashboard shows it:
// "domingo, 7 de enero de 2024". Unparsable dates are returned unchanged.
func FormatLongDate(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s, %d de %s de %d", WeekdayName(t.Weekday()), t.Day(), MonthName(t.Month()), t.Year())
}

// Upper upper-cases s with Spanish casing rules.
// A Caser is stateful, so one is built per call.
func Upper(s string) string {
	return cases.Upper(language.Spanish).String(s)
}
