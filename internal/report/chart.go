package report

import (
	"fmt"
	"strings"
)

// Bar draws a horizontal bar for value scaled against max. Any positive
// value gets at least one block.
func Bar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := value * width / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// Percent formats part as a percentage of whole, "0.0" when whole is 0.
func Percent(part, whole int) string {
	if whole <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(whole)*100)
}
