// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"time"

	uierrors "github.com/dalemusser/templepulse/internal/app/features/errors"
	analyticssrc "github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.uber.org/zap"
)

// Directory resolves a temple id to its display record.
type Directory interface {
	GetByTempleID(ctx context.Context, templeID string) (models.Temple, error)
}

// Handler is the shared dependency container for the analytics feature.
type Handler struct {
	Registry      *dashstate.Registry
	Source        analyticssrc.Source
	Temples       Directory
	Fmt           *format.Formatter
	DefaultPeriod models.Period
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger

	now func() time.Time
}

// NewHandler constructs a new Handler.
func NewHandler(reg *dashstate.Registry, src analyticssrc.Source, temples Directory, f *format.Formatter, defaultPeriod models.Period, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if defaultPeriod.Days() == 0 {
		defaultPeriod = models.DefaultPeriod
	}
	return &Handler{
		Registry:      reg,
		Source:        src,
		Temples:       temples,
		Fmt:           f,
		DefaultPeriod: defaultPeriod,
		Log:           logger,
		ErrLog:        errLog,
		now:           time.Now,
	}
}
