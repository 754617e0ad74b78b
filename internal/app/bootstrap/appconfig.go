// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (SCHOOLSITE_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, and log level; everything here is specific to the
// school site API.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI                    string        // required, e.g. mongodb://localhost:27017
	MongoDatabase               string        // database name (default school_cms)
	MongoMaxPoolSize            uint64        // driver connection pool ceiling
	MongoServerSelectionTimeout time.Duration // how long the driver waits for a usable server
	MongoConnectTimeout         time.Duration // TCP connect timeout per connection

	// Admin access. Empty hash leaves the back-office routes open.
	AdminTokenHash string // bcrypt hash of the bearer token

	// Public contact form throttling (per client IP)
	ContactRateLimit int // sustained submissions per minute; 0 disables
	ContactRateBurst int

	// Rewrite the client address from X-Forwarded-For/X-Real-IP. Enable only
	// behind a proxy that sets these headers itself.
	TrustProxyHeaders bool

	// Insert launch testimonials and default stats when collections are empty.
	SeedOnStartup bool

	// Per-request storage deadlines
	TimeoutShort  time.Duration // single-document operations
	TimeoutMedium time.Duration // lists and counts
}
