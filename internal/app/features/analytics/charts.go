// internal/app/features/analytics/charts.go
package analytics

import (
	"encoding/json"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Palette shared by every chart so colours stay stable across widgets.
var palette = []string{"#d97706", "#059669", "#2563eb", "#db2777", "#7c3aed", "#0891b2"}

// chartConfig is the subset of a Chart.js configuration the dashboard emits.
// The page script passes it to `new Chart(canvas, config)` unchanged.
type chartConfig struct {
	Type    string         `json:"type"`
	Data    chartData      `json:"data"`
	Options map[string]any `json:"options,omitempty"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension,omitempty"`
}

// String encodes the config for a data-chart attribute.
func (c chartConfig) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func baseOptions(legend bool) map[string]any {
	return map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"plugins": map[string]any{
			"legend": map[string]any{"display": legend, "position": "bottom"},
		},
	}
}

func lineChart(labels []string, series ...chartDataset) chartConfig {
	for i := range series {
		c := palette[i%len(palette)]
		series[i].BorderColor = c
		series[i].BackgroundColor = c
		series[i].Tension = 0.3
	}
	return chartConfig{
		Type:    "line",
		Data:    chartData{Labels: labels, Datasets: series},
		Options: baseOptions(true),
	}
}

func barChart(labels []string, label string, values []float64, horizontal bool) chartConfig {
	opts := baseOptions(false)
	if horizontal {
		opts["indexAxis"] = "y"
	}
	return chartConfig{
		Type: "bar",
		Data: chartData{
			Labels:   labels,
			Datasets: []chartDataset{{Label: label, Data: values, BackgroundColor: palette[0]}},
		},
		Options: opts,
	}
}

func pieChart(labels []string, values []float64) chartConfig {
	colors := make([]string, len(values))
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return chartConfig{
		Type: "doughnut",
		Data: chartData{
			Labels:   labels,
			Datasets: []chartDataset{{Data: values, BackgroundColor: colors}},
		},
		Options: baseOptions(true),
	}
}

// titleCasers hands out English title casers. A cases.Caser keeps state
// between calls and must not be used by two goroutines at once.
var titleCasers = sync.Pool{
	New: func() any {
		c := cases.Title(language.English)
		return &c
	},
}

// humanLabel turns a machine label such as "merit_making" into "Merit Making".
func humanLabel(s string) string {
	c := titleCasers.Get().(*cases.Caser)
	defer titleCasers.Put(c)
	return c.String(strings.ReplaceAll(s, "_", " "))
}

func ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
