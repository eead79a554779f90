// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	analyticsfeature "github.com/dalemusser/templepulse/internal/app/features/analytics"
	devoteesfeature "github.com/dalemusser/templepulse/internal/app/features/devotees"
	errorsfeature "github.com/dalemusser/templepulse/internal/app/features/errors"
	healthfeature "github.com/dalemusser/templepulse/internal/app/features/health"
	homefeature "github.com/dalemusser/templepulse/internal/app/features/home"
	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/viewer"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the analytics source and the dashboard
// registry already exist.
//
// TemplePulse initializes the template engine, gives every browser a viewer
// id, and mounts the temple picker, the dashboards, the analytics API and the
// devotee pages.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	s := currentServices()
	if s == nil {
		return nil, errors.New("BuildHandler called before Startup")
	}

	// Secure cookies are enabled in production mode.
	viewers, err := viewer.NewManager(appCfg.SessionKey, appCfg.SessionName, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("viewer manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.AnalyticsSource, s.registry, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// The JSON endpoint needs no viewer cookie; everything else does.
	analyticsHandler := analyticsfeature.NewHandler(s.registry, s.source, s.temples, s.format,
		appCfg.DefaultPeriod, errLog, logger)
	if s.limiter != nil {
		r.With(s.limiter.Middleware(logger)).Mount("/api/temples", analyticsfeature.APIRoutes(analyticsHandler))
	} else {
		r.Mount("/api/temples", analyticsfeature.APIRoutes(analyticsHandler))
	}

	r.Group(func(r chi.Router) {
		r.Use(viewers.Middleware)

		homeHandler := homefeature.NewHandler(s.temples, appCfg.AnalyticsSource == analytics.SourceMock, errLog, logger)
		r.Mount("/", homefeature.Routes(homeHandler))

		r.Mount("/temples", analyticsfeature.Routes(analyticsHandler))

		devoteesHandler := devoteesfeature.NewHandler(s.profiles, s.format, errLog, logger)
		r.Mount("/devotees", devoteesfeature.Routes(devoteesHandler))
	})

	return r, nil
}
