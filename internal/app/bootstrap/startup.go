// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	devoteesfeature "github.com/dalemusser/templepulse/internal/app/features/devotees"
	"github.com/dalemusser/templepulse/internal/app/resources"
	"github.com/dalemusser/templepulse/internal/app/store/activity"
	analyticsstore "github.com/dalemusser/templepulse/internal/app/store/analytics"
	devoteestore "github.com/dalemusser/templepulse/internal/app/store/devotees"
	templestore "github.com/dalemusser/templepulse/internal/app/store/temples"
	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics/remote"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/ratelimit"
	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"github.com/dalemusser/templepulse/internal/app/system/workers"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// services are built once in Startup and shared by BuildHandler and Shutdown.
type services struct {
	source   analytics.Source
	temples  templeDirectory
	profiles devoteesfeature.Profiles
	registry *dashstate.Registry
	sweep    *workers.ViewerSweep
	limiter  *ratelimit.Limiter // nil when the API is not rate limited
	format   *format.Formatter
}

// templeDirectory is what the home page and the dashboard need from a temple directory.
type templeDirectory interface {
	List(ctx context.Context, q string, limit int64) ([]models.Temple, error)
	GetByTempleID(ctx context.Context, templeID string) (models.Temple, error)
}

var (
	svcMu sync.Mutex
	svc   *services
)

func currentServices() *services {
	svcMu.Lock()
	defer svcMu.Unlock()
	return svc
}

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// the shared templates, selects the analytics source, and starts the worker
// that discards idle dashboard state.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	timeouts.Configure(timeouts.Config{Fetch: appCfg.FetchTimeout})

	s, err := buildServices(appCfg, deps, logger)
	if err != nil {
		return err
	}
	s.sweep.Start()

	svcMu.Lock()
	svc = s
	svcMu.Unlock()

	logger.Info("analytics ready",
		zap.String("source", appCfg.AnalyticsSource),
		zap.Duration("fetch_timeout", timeouts.Fetch()),
		zap.String("locale", appCfg.DisplayLocale))
	return nil
}

// buildServices wires the analytics source and its supporting stores for the
// configured mode. It does not start any goroutines.
func buildServices(appCfg AppConfig, deps DBDeps, logger *zap.Logger) (*services, error) {
	opts := analytics.Options{TopDevotees: appCfg.TopDevotees}
	s := &services{format: format.New(appCfg.DisplayLocale)}

	switch appCfg.AnalyticsSource {
	case analytics.SourceMock:
		s.source = analytics.NewMockSource(opts)
		s.temples = analytics.DemoDirectory{}
		s.profiles = analytics.DemoProfiles{Now: time.Now}
	case analytics.SourceMongo, analytics.SourceRemote:
		if deps.MongoDatabase == nil {
			return nil, fmt.Errorf("analytics source %q needs a MongoDB connection", appCfg.AnalyticsSource)
		}
		db := deps.MongoDatabase
		s.temples = templestore.New(db)
		s.profiles = devoteesfeature.StoreProfiles{
			Devotees: devoteestore.New(db),
			Activity: activity.New(db),
		}
		if appCfg.AnalyticsSource == analytics.SourceMongo {
			s.source = analyticsstore.New(db, opts)
		} else {
			s.source = remote.New(appCfg.AnalyticsRemoteURL, appCfg.FetchTimeout, logger)
		}
	default:
		return nil, fmt.Errorf("unknown analytics source %q", appCfg.AnalyticsSource)
	}

	src := s.source
	s.registry = dashstate.NewRegistry(func() *dashstate.Container {
		return dashstate.New(src, timeouts.Fetch(), logger)
	})
	s.sweep = workers.NewViewerSweep(s.registry, logger, appCfg.ViewerSweepInterval, appCfg.ViewerIdleTTL)
	if appCfg.APIRateLimit > 0 {
		s.limiter = ratelimit.New(appCfg.APIRateLimit, time.Minute)
		s.limiter.TrustProxy = appCfg.APITrustProxy
	}
	return s, nil
}
