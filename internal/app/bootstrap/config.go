// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edumanage/schoolsite/internal/app/system/adminauth"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the school site API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, admin_token_hash, etc.
//   - Environment variables: SCHOOLSITE_MONGO_URI, SCHOOLSITE_ADMIN_TOKEN_HASH, etc.
//   - Command-line flags: --mongo_uri, --admin_token_hash, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (required)"},
	{Name: "mongo_database", Default: "school_cms", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 10, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_server_selection_timeout", Default: "10s", Desc: "MongoDB server selection timeout"},
	{Name: "mongo_connect_timeout", Default: "20s", Desc: "MongoDB connect timeout"},

	{Name: "admin_token_hash", Default: "", Desc: "bcrypt hash of the admin bearer token (blank leaves admin routes open)"},

	{Name: "contact_rate_limit", Default: 10, Desc: "Contact submissions per minute per client IP (0 disables)"},
	{Name: "contact_rate_burst", Default: 5, Desc: "Contact submission burst per client IP"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (only behind a trusted proxy)"},

	{Name: "seed_on_startup", Default: false, Desc: "Seed launch testimonials and default stats when empty"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document storage operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list and count storage operations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (SCHOOLSITE_* for app keys) and flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCHOOLSITE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:                    strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:               appValues.String("mongo_database"),
		MongoMaxPoolSize:            uint64(appValues.Int("mongo_max_pool_size")),
		MongoServerSelectionTimeout: appValues.Duration("mongo_server_selection_timeout", 10*time.Second),
		MongoConnectTimeout:         appValues.Duration("mongo_connect_timeout", 20*time.Second),

		AdminTokenHash: appValues.String("admin_token_hash"),

		ContactRateLimit: appValues.Int("contact_rate_limit"),
		ContactRateBurst: appValues.Int("contact_rate_burst"),

		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		SeedOnStartup: appValues.Bool("seed_on_startup"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A missing or malformed MongoDB URI aborts startup here, before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI == "" {
		logger.Error("mongo_uri is not set")
		return errors.New("mongo_uri is required (set SCHOOLSITE_MONGO_URI)")
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.ContactRateLimit < 0 {
		return fmt.Errorf("contact_rate_limit must be >= 0, got %d", appCfg.ContactRateLimit)
	}
	if appCfg.TimeoutShort <= 0 || appCfg.TimeoutMedium <= 0 {
		return errors.New("timeout_short and timeout_medium must be positive")
	}
	if _, err := adminauth.New(appCfg.AdminTokenHash, logger); err != nil {
		return fmt.Errorf("admin_token_hash: %w", err)
	}
	if appCfg.AdminTokenHash == "" && coreCfg != nil && coreCfg.Env == "prod" {
		logger.Warn("admin_token_hash is empty; admin routes are unauthenticated")
	}
	return nil
}
