package rollup_test

import (
	"testing"

	"github.com/dalemusser/templepulse/internal/app/system/rollup"
)

func TestBarWidths(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   []float64
	}{
		{"max is 100", []int{50, 100, 25}, []float64{50, 100, 25}},
		{"all zero", []int{0, 0, 0}, []float64{0, 0, 0}},
		{"single", []int{7}, []float64{100}},
		{"empty", nil, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rollup.BarWidths(tt.values)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBarWidth_ZeroMax(t *testing.T) {
	if got := rollup.BarWidth(0, 0); got != 0 {
		t.Errorf("BarWidth(0, 0) = %v, want 0", got)
	}
	if got := rollup.BarWidth(1, 0); got != 100 {
		t.Errorf("BarWidth(1, 0) = %v, want 100", got)
	}
}

func TestStepRates(t *testing.T) {
	got := rollup.StepRates([]int{1000, 400, 100, 25})
	want := []float64{40.0, 25.0, 25.0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i+2, got[i], want[i])
		}
	}
}

func TestStepRates_ZeroPrevious(t *testing.T) {
	got := rollup.StepRates([]int{0, 0, 5})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i, r := range got {
		if r != 0 {
			t.Errorf("rate %d = %v, want 0", i, r)
		}
	}
}

func TestConversionRate_Rounding(t *testing.T) {
	if got := rollup.ConversionRate(3, 1); got != 33.3 {
		t.Errorf("ConversionRate(3, 1) = %v, want 33.3", got)
	}
}

func TestSumByLabel(t *testing.T) {
	type bucket struct {
		label string
		pct   float64
	}
	items := []bucket{{"18-24", 10}, {"25-34", 15}, {"35-49", 20}, {"50-64", 15}, {"65+", 5}}
	label := func(b bucket) string { return b.label }
	pct := func(b bucket) float64 { return b.pct }

	if got := rollup.SumByLabel(items, label, pct, "18-24", "25-34"); got != 25 {
		t.Errorf("youth = %v, want 25", got)
	}
	if got := rollup.SumByLabel(items, label, pct, "50-64", "65+"); got != 20 {
		t.Errorf("mature = %v, want 20", got)
	}
	if got := rollup.SumByLabel(items, label, pct, "18 - 24"); got != 0 {
		t.Errorf("near-miss label = %v, want 0", got)
	}
}

func TestPercent(t *testing.T) {
	if got := rollup.Percent(1, 3); got != 33.3 {
		t.Errorf("Percent(1, 3) = %v, want 33.3", got)
	}
	if got := rollup.Percent(5, 0); got != 0 {
		t.Errorf("Percent(5, 0) = %v, want 0", got)
	}
}
