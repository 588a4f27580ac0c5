// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, CORS, body limits);
// everything specific to the directory admin lives here.
type AppConfig struct {
	// Directory REST backend
	APIBaseURL string        // e.g. https://api.example.org/v1
	APITimeout time.Duration // per round trip; 0 relies on request deadlines

	// Reference-data cache lifetime; 0 means refresh only after writes.
	RefdataTTL time.Duration

	// Session management configuration
	SessionKey      string        // hash key for signing session cookies (must be strong in production)
	SessionBlockKey string        // optional AES key for encrypting session cookies
	SessionName     string        // cookie name (default: diocesehub-session)
	SessionDomain   string        // cookie domain (blank means current host)
	SessionMaxAge   time.Duration // cookie lifetime

	// CSRF protection key (32 bytes)
	CSRFKey string

	// MongoDB holds the audit trail only. Leave MongoURI blank to audit to
	// the log alone.
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64

	// Audit logging destinations: all, db, log or off.
	AuditLogAuth  string
	AuditLogAdmin string

	// Sign-in throttling; 0 turns a check off.
	LoginIPLimit    int // attempts per minute per client address
	LoginEmailLimit int // attempts per five minutes per account
	RevokedTokens   int // logged-out tokens remembered per process

	// Handler timeouts
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
