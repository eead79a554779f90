// internal/app/features/analytics/tenure.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/rollup"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

var tenureLabels = map[string]string{
	models.TenureNewcomer:     "Newcomer (under 3 months)",
	models.TenureEstablishing: "Establishing (3-12 months)",
	models.TenureLoyal:        "Loyal (1-3 years)",
	models.TenureVeteran:      "Veteran (3+ years)",
}

// TenureLabel is the display name of a tenure category.
func TenureLabel(tenure string) string {
	if l, ok := tenureLabels[tenure]; ok {
		return l
	}
	return humanLabel(tenure)
}

// BuildTenure renders one bar per tenure bucket, scaled to the largest.
func BuildTenure(buckets []models.TenureBucket, f *format.Formatter) TenureVM {
	counts := make([]int, len(buckets))
	var total int
	for i, b := range buckets {
		counts[i] = b.Count
		total += b.Count
	}
	if total == 0 {
		return TenureVM{Empty: true}
	}

	widths := rollup.BarWidths(counts)
	bars := make([]TenureBar, len(buckets))
	for i, b := range buckets {
		bars[i] = TenureBar{
			Label:      TenureLabel(b.Tenure),
			Count:      f.Number(b.Count),
			Percentage: f.Percent(b.Percentage),
			Width:      widths[i],
		}
	}
	return TenureVM{Bars: bars}
}
