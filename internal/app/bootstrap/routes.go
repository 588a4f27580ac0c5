// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	adorationsfeature "github.com/dalemusser/diocesehub/internal/app/features/adorations"
	cascadefeature "github.com/dalemusser/diocesehub/internal/app/features/cascade"
	crusadesfeature "github.com/dalemusser/diocesehub/internal/app/features/crusades"
	diocesesfeature "github.com/dalemusser/diocesehub/internal/app/features/dioceses"
	errorsfeature "github.com/dalemusser/diocesehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/diocesehub/internal/app/features/health"
	homefeature "github.com/dalemusser/diocesehub/internal/app/features/home"
	loginfeature "github.com/dalemusser/diocesehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/diocesehub/internal/app/features/logout"
	parishesfeature "github.com/dalemusser/diocesehub/internal/app/features/parishes"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	statesfeature "github.com/dalemusser/diocesehub/internal/app/features/states"
	usersfeature "github.com/dalemusser/diocesehub/internal/app/features/users"
	"github.com/dalemusser/diocesehub/internal/app/store/audit"
	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/filters"
	"github.com/dalemusser/diocesehub/internal/app/system/ratelimit"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. DioceseHub boots the template engine,
// then builds the router: CSRF and session middleware, the static and
// operational endpoints, and one mounted router per directory area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, coreCfg.Env == "prod", logger)
}

// newRouter wires every feature. secure turns on Secure cookies and
// HTTPS-only CSRF checks.
func newRouter(appCfg AppConfig, deps DBDeps, secure bool, logger *zap.Logger) (http.Handler, error) {
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionBlockKey, appCfg.SessionName,
		appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger.Named("auth"))
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	sessionMgr.SetRevokedSize(appCfg.RevokedTokens)
	viewdata.Init(sessionMgr)

	var auditStore *audit.Store
	if deps.MongoDatabase != nil {
		auditStore = audit.New(deps.MongoDatabase)
	}
	auditLog := auditlog.New(auditStore, logger.Named("audit"), auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	sessionMgr.OnExpire(func(r *http.Request, userID int64) {
		auditLog.SessionExpired(r.Context(), r, userID, "token expired")
	})

	var blockKey []byte
	if appCfg.SessionBlockKey != "" {
		blockKey = []byte(appCfg.SessionBlockKey)
	}
	featureDeps := shared.Deps{
		API:      deps.API,
		Ref:      refdata.New(refdata.NewBackendSource(deps.API), appCfg.RefdataTTL, logger.Named("refdata")),
		Sessions: sessionMgr,
		Filters:  filters.New([]byte(appCfg.SessionKey), blockKey, secure),
		Audit:    auditLog,
		ErrLog:   errorsfeature.NewErrorLogger(logger),
		Log:      logger,
	}

	r := chi.NewRouter()

	// Health and metrics sit outside CSRF and sessions.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(app chi.Router) {
		if !secure {
			app.Use(plaintextCSRF)
		}
		app.Use(csrf.Protect(csrfKey(appCfg.CSRFKey),
			csrf.Secure(secure),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.Warn("csrf check failed", zap.String("path", r.URL.Path), zap.Error(csrf.FailureReason(r)))
				http.Error(w, "forbidden - invalid CSRF token", http.StatusForbidden)
			})),
		))

		// Loads SessionUser into context if signed in; an expired token
		// is logged out here.
		app.Use(sessionMgr.LoadSessionUser)

		homeHandler := homefeature.NewHandler(featureDeps)
		app.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(featureDeps, ratelimit.NewLogin(appCfg.LoginIPLimit, appCfg.LoginEmailLimit))
		app.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
		app.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		app.Get("/forbidden", errorsHandler.Forbidden)
		app.Get("/unauthorized", errorsHandler.Unauthorized)

		// Reference data
		app.Mount("/states", statesfeature.Routes(statesfeature.NewHandler(featureDeps), sessionMgr))
		app.Mount("/dioceses", diocesesfeature.Routes(diocesesfeature.NewHandler(featureDeps), sessionMgr))
		app.Mount("/parishes", parishesfeature.Routes(parishesfeature.NewHandler(featureDeps), sessionMgr))

		// Schedules
		app.Mount("/adorations", adorationsfeature.Routes(adorationsfeature.NewHandler(featureDeps), sessionMgr))
		app.Mount("/crusades", crusadesfeature.Routes(crusadesfeature.NewHandler(featureDeps), sessionMgr))

		// Account administration
		app.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(featureDeps), sessionMgr))

		// Dependent dropdowns
		app.Mount("/cascade", cascadefeature.Routes(cascadefeature.NewHandler(featureDeps), sessionMgr))
	})

	return r, nil
}

// plaintextCSRF tells gorilla/csrf the request came over plain HTTP, so
// its Referer checks do not demand HTTPS in dev.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// csrfKey returns key as-is when it is 32 bytes, else a 32-byte digest of
// it. ValidateConfig rejects the second case in production.
func csrfKey(key string) []byte {
	if len(key) == minKeyLen {
		return []byte(key)
	}
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}
