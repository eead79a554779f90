// internal/app/features/analytics/trend.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

// BuildTrend renders the daily activity line chart and the interaction type
// pie chart.
func BuildTrend(points []models.TrendPoint, types []models.InteractionCount, f *format.Formatter) TrendVM {
	if len(points) == 0 {
		return TrendVM{Empty: true}
	}

	labels := make([]string, len(points))
	checkins := make([]float64, len(points))
	orders := make([]float64, len(points))
	events := make([]float64, len(points))
	var sumC, sumO, sumE int
	for i, p := range points {
		labels[i] = f.ShortDate(p.Date)
		checkins[i] = float64(p.Checkins)
		orders[i] = float64(p.Orders)
		events[i] = float64(p.Events)
		sumC += p.Checkins
		sumO += p.Orders
		sumE += p.Events
	}

	vm := TrendVM{
		LineChart: lineChart(labels,
			chartDataset{Label: "Check-ins", Data: checkins},
			chartDataset{Label: "Orders", Data: orders},
			chartDataset{Label: "Events", Data: events},
		).String(),
		Totals: []StatCard{
			{Label: "Check-ins", Value: f.Number(sumC)},
			{Label: "Orders", Value: f.Number(sumO)},
			{Label: "Events", Value: f.Number(sumE)},
		},
	}

	var typeLabels []string
	var typeCounts []int
	for _, t := range types {
		if t.Count <= 0 {
			continue
		}
		typeLabels = append(typeLabels, humanLabel(t.Type))
		typeCounts = append(typeCounts, t.Count)
	}
	if len(typeCounts) == 0 {
		vm.EmptyPie = true
	} else {
		vm.PieChart = pieChart(typeLabels, ints(typeCounts)).String()
	}
	return vm
}
