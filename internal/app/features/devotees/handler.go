// internal/app/features/devotees/handler.go
package devotees

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/templepulse/internal/app/features/errors"
	"github.com/dalemusser/templepulse/internal/app/store/activity"
	devoteestore "github.com/dalemusser/templepulse/internal/app/store/devotees"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.uber.org/zap"
)

// Profiles loads a devotee and their lifetime totals.
type Profiles interface {
	Profile(ctx context.Context, publicID string) (models.DevoteeProfile, error)
}

// Handler serves the devotee detail page.
type Handler struct {
	Profiles Profiles
	Fmt      *format.Formatter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger

	now func() time.Time
}

// NewHandler constructs a new Handler.
func NewHandler(profiles Profiles, f *format.Formatter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Profiles: profiles,
		Fmt:      f,
		Log:      logger,
		ErrLog:   errLog,
		now:      time.Now,
	}
}

// StoreProfiles reads profiles from the devotee and activity stores.
type StoreProfiles struct {
	Devotees *devoteestore.Store
	Activity *activity.Store
}

// Profile implements Profiles.
func (p StoreProfiles) Profile(ctx context.Context, publicID string) (models.DevoteeProfile, error) {
	d, err := p.Devotees.GetByPublicID(ctx, publicID)
	if err != nil {
		return models.DevoteeProfile{}, err
	}
	totals, err := p.Activity.TotalsFor(ctx, publicID)
	if err != nil {
		return models.DevoteeProfile{}, err
	}
	return models.DevoteeProfile{Devotee: d, Totals: totals}, nil
}
