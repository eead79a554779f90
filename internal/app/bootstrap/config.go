// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/app/system/viewer"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TemplePulse.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, analytics_source, etc.
//   - Environment variables: TEMPLEPULSE_MONGO_URI, TEMPLEPULSE_ANALYTICS_SOURCE, etc.
//   - Command-line flags: --mongo_uri, --analytics_source, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "templepulse", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "", Desc: "Viewer cookie signing key, at least 32 bytes (random per process when blank)"},
	{Name: "session_name", Default: "templepulse-viewer", Desc: "Viewer cookie name"},

	// Analytics
	{Name: "analytics_source", Default: analytics.SourceMock, Desc: "Analytics source: 'mock', 'mongo' or 'remote'"},
	{Name: "analytics_remote_url", Default: "", Desc: "Base URL of the remote analytics endpoint (source=remote)"},
	{Name: "fetch_timeout", Default: "10s", Desc: "Timeout for one analytics fetch (e.g., 10s, 1m)"},
	{Name: "default_period", Default: string(models.DefaultPeriod), Desc: "Period shown by default: 7d, 30d, 90d or 365d"},
	{Name: "top_devotees_limit", Default: analytics.DefaultTopDevotees, Desc: "Number of devotees on the leaderboard"},
	{Name: "api_rate_limit", Default: 60, Desc: "Analytics API requests per client per minute (0 disables)"},
	{Name: "api_trust_proxy", Default: false, Desc: "Identify API clients by X-Forwarded-For; enable only behind a reverse proxy"},

	// Dashboard state lifetime
	{Name: "viewer_idle_ttl", Default: "15m", Desc: "Discard a viewer's dashboard state after this much inactivity"},
	{Name: "viewer_sweep_interval", Default: "1m", Desc: "How often idle dashboard state is swept"},

	// Presentation
	{Name: "display_locale", Default: "en", Desc: "Number and date locale: 'en' or 'th'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TEMPLEPULSE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TEMPLEPULSE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),

		AnalyticsSource:    appValues.String("analytics_source"),
		AnalyticsRemoteURL: appValues.String("analytics_remote_url"),
		FetchTimeout:       appValues.Duration("fetch_timeout", 10*time.Second),
		DefaultPeriod:      models.Period(appValues.String("default_period")),
		TopDevotees:        appValues.Int("top_devotees_limit"),
		APIRateLimit:       appValues.Int("api_rate_limit"),
		APITrustProxy:      appValues.Bool("api_trust_proxy"),

		ViewerIdleTTL:       appValues.Duration("viewer_idle_ttl", 15*time.Minute),
		ViewerSweepInterval: appValues.Duration("viewer_sweep_interval", time.Minute),

		DisplayLocale: appValues.String("display_locale"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// All problems are reported together so a bad deployment is fixed in one pass.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var errs []error

	if err := viewer.ValidateCookieName(appCfg.SessionName); err != nil {
		errs = append(errs, fmt.Errorf("session_name: %w", err))
	}
	if !analytics.IsSourceKind(appCfg.AnalyticsSource) {
		errs = append(errs, fmt.Errorf("analytics_source must be mock, mongo or remote, got %q", appCfg.AnalyticsSource))
	}
	if appCfg.usesMongo() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			errs = append(errs, fmt.Errorf("invalid MongoDB URI: %w", err))
		}
		if appCfg.MongoDatabase == "" {
			errs = append(errs, errors.New("mongo_database is required"))
		}
	}
	if appCfg.AnalyticsSource == analytics.SourceRemote {
		if err := validateRemoteURL(appCfg.AnalyticsRemoteURL); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := models.ParsePeriod(string(appCfg.DefaultPeriod)); err != nil {
		errs = append(errs, fmt.Errorf("default_period %q: %w", appCfg.DefaultPeriod, err))
	}
	if !format.IsSupportedLocale(appCfg.DisplayLocale) {
		errs = append(errs, fmt.Errorf("display_locale must be en or th, got %q", appCfg.DisplayLocale))
	}
	if appCfg.FetchTimeout <= 0 {
		errs = append(errs, errors.New("fetch_timeout must be positive"))
	}
	if appCfg.ViewerIdleTTL <= 0 || appCfg.ViewerSweepInterval <= 0 {
		errs = append(errs, errors.New("viewer_idle_ttl and viewer_sweep_interval must be positive"))
	}
	if appCfg.TopDevotees < 1 {
		errs = append(errs, fmt.Errorf("top_devotees_limit must be at least 1, got %d", appCfg.TopDevotees))
	}

	if appCfg.APIRateLimit < 0 {
		errs = append(errs, fmt.Errorf("api_rate_limit must not be negative, got %d", appCfg.APIRateLimit))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}

func validateRemoteURL(raw string) error {
	if raw == "" {
		return errors.New("analytics_remote_url is required when analytics_source is remote")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("analytics_remote_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("analytics_remote_url must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}
