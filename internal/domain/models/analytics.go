package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsSnapshot is one aggregate analytics payload for a temple and period.
// Percentages and rates are computed by the data source; consumers display them
// as given and never modify a snapshot after it is built.
type AnalyticsSnapshot struct {
	TempleID    string    `json:"temple_id"`
	Period      Period    `json:"period"`
	GeneratedAt time.Time `json:"generated_at"`

	Overview          Overview           `json:"overview"`
	ActivityTrend     []TrendPoint       `json:"activity_trend"`
	InteractionTypes  []InteractionCount `json:"interaction_types"`
	CheckinFrequency  []RangeCount       `json:"checkin_frequency"`
	TopDevotees       []TopDevotee       `json:"top_devotees"`
	SpendDistribution []RangeCount       `json:"spend_distribution"`
	Funnel            Funnel             `json:"funnel"`
	Retention         Retention          `json:"retention"`
	MemberTenure      []TenureBucket     `json:"member_tenure"`
	AgeDistribution   []AgeBucket        `json:"age_distribution"`
}

// Overview holds the headline counts and rates.
type Overview struct {
	TotalMembers  int             `json:"total_members"`
	ActiveMembers int             `json:"active_members"`
	NewMembers    int             `json:"new_members"`
	TotalCheckins int             `json:"total_checkins"`
	TotalOrders   int             `json:"total_orders"`
	TotalSpend    decimal.Decimal `json:"total_spend"`
	ActiveRate    float64         `json:"active_rate"`
	RepeatRate    float64         `json:"repeat_rate"`
}

// TrendPoint is one day of activity. Date is formatted as 2006-01-02.
type TrendPoint struct {
	Date     string `json:"date"`
	Checkins int    `json:"checkins"`
	Orders   int    `json:"orders"`
	Events   int    `json:"events"`
}

// InteractionCount counts events of one interaction type.
type InteractionCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RangeCount is one bucket of a labelled histogram.
type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// TopDevotee is a leaderboard entry. Rank is the position in the slice.
type TopDevotee struct {
	PublicUserID  string          `json:"public_user_id"`
	NameMasked    string          `json:"name_masked"`
	CheckinsCount int             `json:"checkins_count"`
	SpendTotal    decimal.Decimal `json:"spend_total"`
}

// Funnel is the member conversion funnel, in stage order.
type Funnel struct {
	AllMembers  int `json:"all_members"`
	Active30d   int `json:"active_30d"`
	MadeOrder   int `json:"made_order"`
	RepeatOrder int `json:"repeat_order"`
}

// Steps returns the funnel values in stage order.
func (f Funnel) Steps() []int {
	return []int{f.AllMembers, f.Active30d, f.MadeOrder, f.RepeatOrder}
}

// Retention holds the return and churn metrics.
type Retention struct {
	MoMRetentionRate float64 `json:"mom_retention_rate"`
	WeeklyReturnRate float64 `json:"weekly_return_rate"`
	ChurnedThisMonth int     `json:"churned_this_month"`
	AvgReturnDays    float64 `json:"avg_return_days"`
}

// Tenure categories.
const (
	TenureNewcomer     = "newcomer"
	TenureEstablishing = "establishing"
	TenureLoyal        = "loyal"
	TenureVeteran      = "veteran"
)

// TenureCategories lists tenure brackets from newest to oldest.
var TenureCategories = []string{TenureNewcomer, TenureEstablishing, TenureLoyal, TenureVeteran}

// TenureBucket counts members in one tenure category.
type TenureBucket struct {
	Tenure     string  `json:"tenure"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Age bracket labels as produced by every analytics source.
const (
	Age18to24 = "18-24"
	Age25to34 = "25-34"
	Age35to49 = "35-49"
	Age50to64 = "50-64"
	Age65Plus = "65+"
)

// AgeBrackets lists the age bracket labels in display order.
var AgeBrackets = []string{Age18to24, Age25to34, Age35to49, Age50to64, Age65Plus}

// AgeBucket counts members in one age bracket.
type AgeBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
