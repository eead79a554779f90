// Package analytics builds AnalyticsSnapshots and defines the Source
// abstraction the dashboard fetches them through.
package analytics

import (
	"context"
	"errors"

	"github.com/dalemusser/templepulse/internal/domain/models"
)

// ErrTempleNotFound is returned when the temple id is unknown to a source.
var ErrTempleNotFound = errors.New("temple not found")

// Source produces one snapshot per (temple, period).
type Source interface {
	Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error)

// Fetch calls fn.
func (fn SourceFunc) Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error) {
	return fn(ctx, templeID, period)
}

// Source kinds selectable in configuration.
const (
	SourceMock   = "mock"
	SourceMongo  = "mongo"
	SourceRemote = "remote"
)

// IsSourceKind reports whether kind names a known source.
func IsSourceKind(kind string) bool {
	switch kind {
	case SourceMock, SourceMongo, SourceRemote:
		return true
	}
	return false
}
