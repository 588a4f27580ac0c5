// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	minKeyLen = 32

	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-csrf-key-0123456789ABCD"
)

// appConfigKeys defines the configuration keys for DioceseHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: DIOCESEHUB_API_BASE_URL, DIOCESEHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8081/api", Desc: "Directory REST backend base URL"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout for one backend round trip"},
	{Name: "refdata_ttl", Default: "5m", Desc: "How long reference lists are cached (0 = until the next write)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_block_key", Default: "", Desc: "Optional session encryption key (16, 24 or 32 bytes)"},
	{Name: "session_name", Default: "diocesehub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Session cookie lifetime"},

	{Name: "csrf_key", Default: devCSRFKey, Desc: "CSRF token key (32 bytes)"},

	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for the audit trail (blank = log only)"},
	{Name: "mongo_database", Default: "diocesehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size"},

	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "login_ip_limit", Default: 10, Desc: "Sign-in attempts per minute per client address (0 = unlimited)"},
	{Name: "login_email_limit", Default: 5, Desc: "Sign-in attempts per five minutes per account (0 = unlimited)"},
	{Name: "revoked_tokens", Default: 4096, Desc: "Logged-out tokens remembered per process; older ones are accepted again until they expire"},

	{Name: "timeout_ping", Default: "2s", Desc: "Health check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-record operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for page loads"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for bulk operations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DIOCESEHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DIOCESEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),
		RefdataTTL: appValues.Duration("refdata_ttl", 5*time.Minute),

		SessionKey:      appValues.String("session_key"),
		SessionBlockKey: appValues.String("session_block_key"),
		SessionName:     appValues.String("session_name"),
		SessionDomain:   appValues.String("session_domain"),
		SessionMaxAge:   appValues.Duration("session_max_age", 12*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		LoginIPLimit:    appValues.Int("login_ip_limit"),
		LoginEmailLimit: appValues.Int("login_email_limit"),
		RevokedTokens:   appValues.Int("revoked_tokens"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return validate(coreCfg.Env == "prod", appCfg, logger)
}

func validate(prod bool, appCfg AppConfig, logger *zap.Logger) error {
	if _, err := backend.ParseBaseURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid backend base URL", zap.Error(err))
		return err
	}

	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	for name, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch v {
		case "", auditlog.All, auditlog.DB, auditlog.Log, auditlog.Off:
		default:
			return fmt.Errorf("%s must be all, db, log or off (got %q)", name, v)
		}
	}

	if n := len(appCfg.CSRFKey); n != minKeyLen {
		if prod {
			return fmt.Errorf("csrf_key must be exactly %d bytes (got %d)", minKeyLen, n)
		}
		logger.Warn("csrf_key is not 32 bytes; a key will be derived from it in dev", zap.Int("len", n))
	}

	if prod {
		if len(appCfg.SessionKey) < minKeyLen {
			return fmt.Errorf("session_key must be at least %d bytes in production", minKeyLen)
		}
		if appCfg.SessionKey == devSessionKey || appCfg.CSRFKey == devCSRFKey {
			return fmt.Errorf("session_key and csrf_key must be changed from their dev defaults in production")
		}
	}
	return nil
}
