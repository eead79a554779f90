// internal/app/features/analytics/engagement.go
package analytics

import (
	"net/url"

	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

// RankBadge maps a 1-based leaderboard rank to its badge tier.
func RankBadge(rank int) string {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return BadgeDefault
	}
}

// DevoteeHref is the detail page of a devotee, or "" when id is blank.
func DevoteeHref(publicUserID string) string {
	if publicUserID == "" {
		return ""
	}
	return "/devotees/" + url.PathEscape(publicUserID)
}

// BuildEngagement renders the check-in frequency chart and the leaderboard.
func BuildEngagement(freq []models.RangeCount, top []models.TopDevotee, f *format.Formatter) EngagementVM {
	var vm EngagementVM

	labels, counts, total := rangeSeries(freq)
	if total == 0 {
		vm.EmptyFrequency = true
	} else {
		vm.FrequencyChart = barChart(labels, "Devotees", ints(counts), false).String()
	}

	if len(top) == 0 {
		vm.EmptyLeaderboard = true
		return vm
	}
	vm.Leaderboard = make([]LeaderRow, len(top))
	for i, d := range top {
		name := d.NameMasked
		if name == "" {
			name = "Anonymous"
		}
		vm.Leaderboard[i] = LeaderRow{
			Rank:     i + 1,
			Badge:    RankBadge(i + 1),
			Name:     name,
			Checkins: f.Number(d.CheckinsCount),
			Spend:    "฿" + f.Money(d.SpendTotal),
			Href:     DevoteeHref(d.PublicUserID),
		}
	}
	return vm
}

// rangeSeries splits a histogram into labels and counts and sums the counts.
func rangeSeries(items []models.RangeCount) (labels []string, counts []int, total int) {
	labels = make([]string, len(items))
	counts = make([]int, len(items))
	for i, it := range items {
		labels[i] = it.Range
		counts[i] = it.Count
		total += it.Count
	}
	return labels, counts, total
}
