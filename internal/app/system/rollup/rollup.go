// Package rollup holds the small reductions dashboard widgets need:
// local maxima, bar widths, step conversion rates, and label-keyed sums.
package rollup

import "math"

// Round1 rounds f to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// MaxFloor1 returns the largest value, or 1 if every value is below 1.
// The result is safe to divide by.
func MaxFloor1(values []int) int {
	m := 1
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// BarWidth returns v as a percentage of max, treating max below 1 as 1.
func BarWidth(v, max int) float64 {
	if max < 1 {
		max = 1
	}
	return float64(v) / float64(max) * 100
}

// BarWidths normalises a series so its largest item is 100.
// An all-zero series yields all zeros.
func BarWidths(values []int) []float64 {
	m := MaxFloor1(values)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = BarWidth(v, m)
	}
	return out
}

// ConversionRate is cur as a percentage of prev, rounded to one decimal.
// It is 0 when prev is 0.
func ConversionRate(prev, cur int) float64 {
	if prev == 0 {
		return 0
	}
	return Round1(float64(cur) / float64(prev) * 100)
}

// StepRates returns the step-over-step conversion rate for every step after
// the first, so len(result) == len(steps)-1 for non-empty input.
func StepRates(steps []int) []float64 {
	if len(steps) < 2 {
		return nil
	}
	out := make([]float64, 0, len(steps)-1)
	for i := 1; i < len(steps); i++ {
		out = append(out, ConversionRate(steps[i-1], steps[i]))
	}
	return out
}

// SumByLabel adds value(item) for every item whose label is one of labels.
// Labels are matched exactly.
func SumByLabel[T any](items []T, label func(T) string, value func(T) float64, labels ...string) float64 {
	want := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		want[l] = struct{}{}
	}
	var sum float64
	for _, it := range items {
		if _, ok := want[label(it)]; ok {
			sum += value(it)
		}
	}
	return sum
}

// Percent returns part/whole*100 rounded to one decimal, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return Round1(float64(part) / float64(whole) * 100)
}
