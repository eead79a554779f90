// internal/app/features/analytics/age.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/rollup"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

func ageLabel(b models.AgeBucket) string        { return b.Range }
func agePercentage(b models.AgeBucket) float64 { return b.Percentage }

// YouthShare is the combined percentage of the 18-24 and 25-34 brackets.
func YouthShare(buckets []models.AgeBucket) float64 {
	return rollup.Round1(rollup.SumByLabel(buckets, ageLabel, agePercentage, models.Age18to24, models.Age25to34))
}

// MatureShare is the combined percentage of the 50-64 and 65+ brackets.
func MatureShare(buckets []models.AgeBucket) float64 {
	return rollup.Round1(rollup.SumByLabel(buckets, ageLabel, agePercentage, models.Age50to64, models.Age65Plus))
}

// BuildAge renders the age pie and bar charts plus the youth and mature
// rollups.
func BuildAge(buckets []models.AgeBucket, f *format.Formatter) AgeVM {
	labels := make([]string, len(buckets))
	counts := make([]int, len(buckets))
	var total int
	for i, b := range buckets {
		labels[i] = b.Range
		counts[i] = b.Count
		total += b.Count
	}
	if total == 0 {
		return AgeVM{Empty: true}
	}
	return AgeVM{
		PieChart: pieChart(labels, ints(counts)).String(),
		BarChart: barChart(labels, "Members", ints(counts), true).String(),
		Youth:    f.Percent(YouthShare(buckets)),
		Mature:   f.Percent(MatureShare(buckets)),
	}
}
