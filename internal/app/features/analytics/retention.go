// internal/app/features/analytics/retention.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

// Retention thresholds.
const (
	momRetentionGood  = 50.0
	weeklyReturnGood  = 30.0
	avgReturnDaysGood = 14.0
)

func toneIf(ok bool) string {
	if ok {
		return TonePositive
	}
	return ToneNegative
}

// BuildRetention renders the four retention cards. Churn is always shown as
// negative. The widget is empty only when the temple has no members; all-zero
// figures for a temple with members are real results and are shown.
func BuildRetention(r models.Retention, totalMembers int, f *format.Formatter) RetentionVM {
	if totalMembers == 0 {
		return RetentionVM{Empty: true}
	}
	return RetentionVM{Cards: []MetricCard{
		{
			Label:   "Month-over-month retention",
			Value:   f.Percent(r.MoMRetentionRate),
			Tone:    toneIf(r.MoMRetentionRate >= momRetentionGood),
			Caption: "Target 50% or more",
		},
		{
			Label:   "Weekly return rate",
			Value:   f.Percent(r.WeeklyReturnRate),
			Tone:    toneIf(r.WeeklyReturnRate >= weeklyReturnGood),
			Caption: "Target 30% or more",
		},
		{
			Label:   "Churned this month",
			Value:   f.Number(r.ChurnedThisMonth),
			Tone:    ToneNegative,
			Caption: "Active last month, not this month",
		},
		{
			Label:   "Average days between visits",
			Value:   f.Days(r.AvgReturnDays),
			Tone:    toneIf(r.AvgReturnDays <= avgReturnDaysGood),
			Caption: "Target 14 days or fewer",
		},
	}}
}
