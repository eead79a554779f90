// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/templepulse/internal/domain/models"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). Framework-level settings such as
// ports, TLS and log level live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration (unused when AnalyticsSource is "mock")
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Viewer cookie configuration
	SessionKey  string // Signing key for the viewer cookie (random per process when blank)
	SessionName string // Cookie name (default: templepulse-viewer)

	// Analytics
	AnalyticsSource    string        // "mock", "mongo" or "remote"
	AnalyticsRemoteURL string        // Base URL of the remote analytics endpoint
	FetchTimeout       time.Duration // Upper bound for a single snapshot fetch
	DefaultPeriod      models.Period // Period shown when the URL names none
	TopDevotees        int           // Leaderboard length
	APIRateLimit       int           // Analytics API requests per client per minute (0 disables)
	APITrustProxy      bool          // Key the rate limit by X-Forwarded-For (only behind a proxy that sets it)

	// Dashboard state lifetime
	ViewerIdleTTL       time.Duration // Idle time after which a viewer's dashboard state is discarded
	ViewerSweepInterval time.Duration // How often idle state is swept

	// Presentation
	DisplayLocale string // "en" or "th"
}

// usesMongo reports whether the app needs a MongoDB connection. The remote
// source still reads the temple directory and devotee profiles locally.
func (c AppConfig) usesMongo() bool {
	return c.AnalyticsSource != "mock"
}
