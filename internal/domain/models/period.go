package models

import (
	"errors"
	"strings"
)

// Period is the lookback window a snapshot covers.
type Period string

const (
	Period7d   Period = "7d"
	Period30d  Period = "30d"
	Period90d  Period = "90d"
	Period365d Period = "365d"
)

// DefaultPeriod is used when a request does not name one.
const DefaultPeriod = Period30d

// ErrInvalidPeriod is returned by ParsePeriod for values outside the fixed set.
var ErrInvalidPeriod = errors.New("invalid period")

// Periods lists the selectable periods in display order.
var Periods = []Period{Period7d, Period30d, Period90d, Period365d}

// ParsePeriod validates s against the fixed set of periods.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", ErrInvalidPeriod
}

// Days returns the number of days in the window.
func (p Period) Days() int {
	switch p {
	case Period7d:
		return 7
	case Period30d:
		return 30
	case Period90d:
		return 90
	case Period365d:
		return 365
	}
	return 0
}

// Label is the human-readable selector label.
func (p Period) Label() string {
	switch p {
	case Period7d:
		return "Last 7 days"
	case Period30d:
		return "Last 30 days"
	case Period90d:
		return "Last 90 days"
	case Period365d:
		return "Last year"
	}
	return string(p)
}
