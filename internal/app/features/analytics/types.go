// internal/app/features/analytics/types.go
package analytics

import (
	"github.com/dalemusser/templepulse/internal/app/system/viewdata"
)

// Tones used by metric cards. Templates map them to colour classes.
const (
	TonePositive = "positive"
	ToneNegative = "negative"
	ToneNeutral  = "neutral"
)

// Leaderboard badge tiers.
const (
	BadgeGold    = "gold"
	BadgeSilver  = "silver"
	BadgeBronze  = "bronze"
	BadgeDefault = "default"
)

// DashboardData is the view model for the full dashboard page.
type DashboardData struct {
	viewdata.BaseVM
	TempleID   string
	TempleName string
	Periods    []PeriodOption
	Panel      PanelData
}

// PeriodOption is one entry of the period selector.
type PeriodOption struct {
	Value    string
	Label    string
	Selected bool
}

// PanelData is the view model for the HTMX-refreshed widget panel.
type PanelData struct {
	TempleID string
	Period   string
	PanelURL string

	// FetchOnLoad makes the panel request itself once rendered.
	FetchOnLoad bool

	ShowLoading bool
	ShowError   bool
	Error       string
	ShowWidgets bool
	Stale       bool
	StaleNote   string
	Updated     string

	Widgets Widgets
}

// Widgets groups the seven leaf view models.
type Widgets struct {
	Overview   OverviewVM
	Trend      TrendVM
	Engagement EngagementVM
	Spend      SpendVM
	Retention  RetentionVM
	Tenure     TenureVM
	Age        AgeVM
}

// StatCard is a headline figure.
type StatCard struct {
	Label string
	Value string
	Hint  string
}

// MetricCard is a figure with a tone.
type MetricCard struct {
	Label   string
	Value   string
	Tone    string
	Caption string
}

// OverviewVM is the member overview widget.
type OverviewVM struct {
	Empty bool
	Cards []StatCard
}

// TrendVM is the activity trend widget.
type TrendVM struct {
	Empty     bool
	LineChart string
	PieChart  string
	EmptyPie  bool
	Totals    []StatCard
}

// LeaderRow is one leaderboard row. Href is empty for rows without an id.
type LeaderRow struct {
	Rank     int
	Badge    string
	Name     string
	Checkins string
	Spend    string
	Href     string
}

// EngagementVM is the engagement widget: frequency bars and leaderboard.
type EngagementVM struct {
	EmptyFrequency   bool
	FrequencyChart   string
	EmptyLeaderboard bool
	Leaderboard      []LeaderRow
}

// FunnelStep is one stage of the conversion funnel. Rate is blank for the
// first stage.
type FunnelStep struct {
	Label string
	Value string
	Width float64
	Rate  string
}

// SpendVM is the spend widget: distribution bars and conversion funnel.
type SpendVM struct {
	EmptyDistribution bool
	DistributionChart string
	EmptyFunnel       bool
	Funnel            []FunnelStep
}

// RetentionVM is the retention metrics widget.
type RetentionVM struct {
	Empty bool
	Cards []MetricCard
}

// TenureBar is one member tenure row.
type TenureBar struct {
	Label      string
	Count      string
	Percentage string
	Width      float64
}

// TenureVM is the member tenure widget.
type TenureVM struct {
	Empty bool
	Bars  []TenureBar
}

// AgeVM is the age distribution widget.
type AgeVM struct {
	Empty    bool
	PieChart string
	BarChart string
	Youth    string
	Mature   string
}
