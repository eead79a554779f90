// internal/app/features/analytics/overview.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

// BuildOverview renders the headline cards. An all-zero overview is treated
// as no data.
func BuildOverview(ov models.Overview, f *format.Formatter) OverviewVM {
	if overviewEmpty(ov) {
		return OverviewVM{Empty: true}
	}
	return OverviewVM{Cards: []StatCard{
		{Label: "Total members", Value: f.Number(ov.TotalMembers), Hint: f.Number(ov.NewMembers) + " new this period"},
		{Label: "Active members", Value: f.Number(ov.ActiveMembers), Hint: f.Percent(ov.ActiveRate) + " of members"},
		{Label: "Check-ins", Value: f.Number(ov.TotalCheckins)},
		{Label: "Orders", Value: f.Number(ov.TotalOrders), Hint: f.Percent(ov.RepeatRate) + " repeat buyers"},
		{Label: "Total spend", Value: "฿" + f.Money(ov.TotalSpend)},
	}}
}

func overviewEmpty(ov models.Overview) bool {
	return ov.TotalMembers == 0 && ov.ActiveMembers == 0 && ov.NewMembers == 0 &&
		ov.TotalCheckins == 0 && ov.TotalOrders == 0 && ov.TotalSpend.IsZero()
}
