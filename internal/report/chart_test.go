package report

import "testing"

func TestBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		want              int
	}{
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{1, 1000, 20, 1},
		{0, 10, 20, 0},
		{5, 0, 20, 0},
	}
	for _, tt := range tests {
		got := len([]rune(Bar(tt.value, tt.max, tt.width)))
		if got != tt.want {
			t.Errorf("Bar(%d, %d, %d) width = %d, want %d", tt.value, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1, 3); got != "33.3" {
		t.Errorf("Percent(1, 3) = %q", got)
	}
	if got := Percent(5, 0); got != "0.0" {
		t.Errorf("Percent(5, 0) = %q", got)
	}
}
