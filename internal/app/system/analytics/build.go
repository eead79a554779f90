package analytics

import (
	"sort"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/rollup"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DefaultTopDevotees is the leaderboard length used when none is configured.
const DefaultTopDevotees = 10

// Dataset is the raw activity of one temple that a snapshot is built from.
// Check-ins should reach back at least 60 days so retention can compare
// consecutive months; other collections only need to cover the period.
type Dataset struct {
	TempleID     string
	Devotees     []models.Devotee
	Checkins     []models.Checkin
	Orders       []models.Order
	Interactions []models.Interaction
}

// Window is the time span a snapshot covers.
type Window struct {
	Period models.Period
	Start  time.Time // midnight UTC of the first day
	Now    time.Time
}

// NewWindow returns the window for period ending at now. The window holds
// period.Days() calendar days including today.
func NewWindow(period models.Period, now time.Time) Window {
	now = now.UTC()
	today := now.Truncate(day)
	return Window{
		Period: period,
		Start:  today.AddDate(0, 0, -(period.Days() - 1)),
		Now:    now,
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.Now)
}

// LoadSince is the earliest timestamp a Dataset must cover for w.
func (w Window) LoadSince() time.Time {
	retention := w.Now.Add(-60 * day)
	if retention.Before(w.Start) {
		return retention
	}
	return w.Start
}

// Options tunes Build.
type Options struct {
	TopDevotees int
}

// Build computes a complete snapshot from ds. It never modifies ds.
func Build(ds Dataset, w Window, opts Options) models.AnalyticsSnapshot {
	if opts.TopDevotees <= 0 {
		opts.TopDevotees = DefaultTopDevotees
	}

	checkinsByUser := map[string][]time.Time{}
	var windowCheckins int
	for _, c := range ds.Checkins {
		if w.Contains(c.At) {
			windowCheckins++
			checkinsByUser[c.PublicUserID] = append(checkinsByUser[c.PublicUserID], c.At)
		}
	}

	ordersByUser := map[string]int{}
	spendByUser := map[string]decimal.Decimal{}
	totalSpend := decimal.Zero
	var windowOrders int
	for _, o := range ds.Orders {
		if !w.Contains(o.At) {
			continue
		}
		windowOrders++
		amt := decimal.NewFromFloat(o.Amount)
		ordersByUser[o.PublicUserID]++
		spendByUser[o.PublicUserID] = spendByUser[o.PublicUserID].Add(amt)
		totalSpend = totalSpend.Add(amt)
	}

	var ordered, repeat int
	for _, n := range ordersByUser {
		ordered++
		if n >= 2 {
			repeat++
		}
	}

	var newMembers int
	for _, d := range ds.Devotees {
		if w.Contains(d.JoinedAt) {
			newMembers++
		}
	}

	total := len(ds.Devotees)
	active := len(checkinsByUser)

	return models.AnalyticsSnapshot{
		TempleID:    ds.TempleID,
		Period:      w.Period,
		GeneratedAt: w.Now,
		Overview: models.Overview{
			TotalMembers:  total,
			ActiveMembers: active,
			NewMembers:    newMembers,
			TotalCheckins: windowCheckins,
			TotalOrders:   windowOrders,
			TotalSpend:    totalSpend.Round(2),
			ActiveRate:    rollup.Percent(active, total),
			RepeatRate:    rollup.Percent(repeat, ordered),
		},
		ActivityTrend:     buildTrend(ds, w),
		InteractionTypes:  buildInteractionTypes(ds, w),
		CheckinFrequency:  buildCheckinFrequency(checkinsByUser),
		TopDevotees:       buildTopDevotees(ds.Devotees, checkinsByUser, spendByUser, opts.TopDevotees),
		SpendDistribution: buildSpendDistribution(ds.Devotees, spendByUser),
		Funnel: models.Funnel{
			AllMembers:  total,
			Active30d:   len(activeBetween(ds.Checkins, w.Now.Add(-30*day), w.Now)),
			MadeOrder:   ordered,
			RepeatOrder: repeat,
		},
		Retention:       buildRetention(ds.Checkins, checkinsByUser, w.Now),
		MemberTenure:    buildTenure(ds.Devotees, w.Now),
		AgeDistribution: buildAges(ds.Devotees, w.Now),
	}
}

func buildTrend(ds Dataset, w Window) []models.TrendPoint {
	days := w.Period.Days()
	points := make([]models.TrendPoint, days)
	for i := range points {
		points[i].Date = w.Start.AddDate(0, 0, i).Format(time.DateOnly)
	}
	index := func(t time.Time) int {
		return int(t.UTC().Sub(w.Start) / day)
	}
	for _, c := range ds.Checkins {
		if w.Contains(c.At) {
			points[index(c.At)].Checkins++
		}
	}
	for _, o := range ds.Orders {
		if w.Contains(o.At) {
			points[index(o.At)].Orders++
		}
	}
	for _, e := range ds.Interactions {
		if w.Contains(e.At) {
			points[index(e.At)].Events++
		}
	}
	return points
}

func buildInteractionTypes(ds Dataset, w Window) []models.InteractionCount {
	counts := map[string]int{}
	for _, e := range ds.Interactions {
		if w.Contains(e.At) {
			counts[e.Type]++
		}
	}
	out := make([]models.InteractionCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, models.InteractionCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Check-in frequency ranges, in display order.
var frequencyRanges = []string{"1", "2-3", "4-7", "8+"}

func buildCheckinFrequency(byUser map[string][]time.Time) []models.RangeCount {
	counts := make([]int, len(frequencyRanges))
	for _, visits := range byUser {
		switch n := len(visits); {
		case n == 1:
			counts[0]++
		case n <= 3:
			counts[1]++
		case n <= 7:
			counts[2]++
		default:
			counts[3]++
		}
	}
	out := make([]models.RangeCount, len(frequencyRanges))
	for i, r := range frequencyRanges {
		out[i] = models.RangeCount{Range: r, Count: counts[i]}
	}
	return out
}

func buildTopDevotees(devotees []models.Devotee, checkins map[string][]time.Time, spend map[string]decimal.Decimal, limit int) []models.TopDevotee {
	names := make(map[string]string, len(devotees))
	for _, d := range devotees {
		names[d.PublicUserID] = d.FullName
	}

	seen := map[string]struct{}{}
	var rows []models.TopDevotee
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		rows = append(rows, models.TopDevotee{
			PublicUserID:  id,
			NameMasked:    MaskName(names[id]),
			CheckinsCount: len(checkins[id]),
			SpendTotal:    spend[id].Round(2),
		})
	}
	for id := range checkins {
		add(id)
	}
	for id := range spend {
		add(id)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CheckinsCount != b.CheckinsCount {
			return a.CheckinsCount > b.CheckinsCount
		}
		if c := a.SpendTotal.Cmp(b.SpendTotal); c != 0 {
			return c > 0
		}
		return a.PublicUserID < b.PublicUserID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Spend distribution ranges, in display order.
var spendRanges = []string{"0", "1-500", "501-1,000", "1,001-5,000", "5,000+"}

var (
	spend500  = decimal.NewFromInt(500)
	spend1000 = decimal.NewFromInt(1000)
	spend5000 = decimal.NewFromInt(5000)
)

func buildSpendDistribution(devotees []models.Devotee, spend map[string]decimal.Decimal) []models.RangeCount {
	counts := make([]int, len(spendRanges))
	for _, d := range devotees {
		s := spend[d.PublicUserID]
		switch {
		case !s.IsPositive():
			counts[0]++
		case s.LessThanOrEqual(spend500):
			counts[1]++
		case s.LessThanOrEqual(spend1000):
			counts[2]++
		case s.LessThanOrEqual(spend5000):
			counts[3]++
		default:
			counts[4]++
		}
	}
	out := make([]models.RangeCount, len(spendRanges))
	for i, r := range spendRanges {
		out[i] = models.RangeCount{Range: r, Count: counts[i]}
	}
	return out
}

// activeBetween returns the users with a check-in in [from, to].
func activeBetween(checkins []models.Checkin, from, to time.Time) map[string]struct{} {
	set := map[string]struct{}{}
	for _, c := range checkins {
		if !c.At.Before(from) && !c.At.After(to) {
			set[c.PublicUserID] = struct{}{}
		}
	}
	return set
}

// returnedShare counts prev users found in cur.
func returnedShare(prev, cur map[string]struct{}) (returned int) {
	for id := range prev {
		if _, ok := cur[id]; ok {
			returned++
		}
	}
	return returned
}

func buildRetention(checkins []models.Checkin, windowByUser map[string][]time.Time, now time.Time) models.Retention {
	cur30 := activeBetween(checkins, now.Add(-30*day), now)
	prev30 := activeBetween(checkins, now.Add(-60*day), now.Add(-30*day-time.Nanosecond))
	cur7 := activeBetween(checkins, now.Add(-7*day), now)
	prev7 := activeBetween(checkins, now.Add(-14*day), now.Add(-7*day-time.Nanosecond))

	kept30 := returnedShare(prev30, cur30)

	var gapSum time.Duration
	var gaps int
	for _, visits := range windowByUser {
		if len(visits) < 2 {
			continue
		}
		sorted := append([]time.Time(nil), visits...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
		for i := 1; i < len(sorted); i++ {
			gapSum += sorted[i].Sub(sorted[i-1])
			gaps++
		}
	}
	var avgDays float64
	if gaps > 0 {
		avgDays = rollup.Round1(gapSum.Hours() / 24 / float64(gaps))
	}

	return models.Retention{
		MoMRetentionRate: rollup.Percent(kept30, len(prev30)),
		WeeklyReturnRate: rollup.Percent(returnedShare(prev7, cur7), len(prev7)),
		ChurnedThisMonth: len(prev30) - kept30,
		AvgReturnDays:    avgDays,
	}
}

// TenureOf classifies how long a member has belonged to the temple.
func TenureOf(joined, now time.Time) string {
	switch age := now.Sub(joined); {
	case age < 90*day:
		return models.TenureNewcomer
	case age < 365*day:
		return models.TenureEstablishing
	case age < 3*365*day:
		return models.TenureLoyal
	default:
		return models.TenureVeteran
	}
}

func buildTenure(devotees []models.Devotee, now time.Time) []models.TenureBucket {
	counts := map[string]int{}
	for _, d := range devotees {
		counts[TenureOf(d.JoinedAt, now)]++
	}
	out := make([]models.TenureBucket, len(models.TenureCategories))
	for i, cat := range models.TenureCategories {
		out[i] = models.TenureBucket{
			Tenure:     cat,
			Count:      counts[cat],
			Percentage: rollup.Percent(counts[cat], len(devotees)),
		}
	}
	return out
}

// AgeBracket returns the bracket label for a birth year, or "" when the
// member is under 18 or the year is unknown.
func AgeBracket(birthYear int, now time.Time) string {
	if birthYear <= 0 {
		return ""
	}
	switch age := now.Year() - birthYear; {
	case age < 18:
		return ""
	case age <= 24:
		return models.Age18to24
	case age <= 34:
		return models.Age25to34
	case age <= 49:
		return models.Age35to49
	case age <= 64:
		return models.Age50to64
	default:
		return models.Age65Plus
	}
}

func buildAges(devotees []models.Devotee, now time.Time) []models.AgeBucket {
	counts := map[string]int{}
	var bracketed int
	for _, d := range devotees {
		if b := AgeBracket(d.BirthYear, now); b != "" {
			counts[b]++
			bracketed++
		}
	}
	out := make([]models.AgeBucket, len(models.AgeBrackets))
	for i, b := range models.AgeBrackets {
		out[i] = models.AgeBucket{
			Range:      b,
			Count:      counts[b],
			Percentage: rollup.Percent(counts[b], bracketed),
		}
	}
	return out
}
