// internal/app/features/analytics/spend.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/rollup"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

var funnelLabels = []string{"All members", "Active (30 days)", "Made an order", "Repeat order"}

// BuildSpend renders the spend distribution chart and the conversion funnel.
func BuildSpend(dist []models.RangeCount, funnel models.Funnel, f *format.Formatter) SpendVM {
	var vm SpendVM

	labels, counts, total := rangeSeries(dist)
	if total == 0 {
		vm.EmptyDistribution = true
	} else {
		vm.DistributionChart = barChart(labels, "Devotees", ints(counts), false).String()
	}

	if funnel == (models.Funnel{}) {
		vm.EmptyFunnel = true
		return vm
	}
	steps := funnel.Steps()
	widths := rollup.BarWidths(steps)
	rates := rollup.StepRates(steps)
	vm.Funnel = make([]FunnelStep, len(steps))
	for i, v := range steps {
		vm.Funnel[i] = FunnelStep{
			Label: funnelLabels[i],
			Value: f.Number(v),
			Width: widths[i],
		}
		if i > 0 {
			vm.Funnel[i].Rate = f.Percent(rates[i-1])
		}
	}
	return vm
}
