// Package auth guards pages behind a backend-issued bearer token kept in a
// gorilla cookie session.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

const (
	tokenKey     = "token"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
	userRolesKey = "user_roles"
	colsPrefix   = "cols:"

	// DefaultRevokedSize is how many logged-out tokens are remembered.
	DefaultRevokedSize = 4096
)

// SessionUser is what LoadSessionUser injects into the request context.
type SessionUser struct {
	ID    int64
	Name  string
	Email string
	Roles []models.Role
	Token string
}

// Role returns the user's primary role.
func (u *SessionUser) Role() models.Role {
	return models.User{Roles: u.Roles}.PrimaryRole()
}

// HasRole reports whether the user holds any of roles.
func (u *SessionUser) HasRole(roles ...models.Role) bool {
	m := models.User{Roles: u.Roles}
	for _, r := range roles {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// SessionManager owns the cookie store and the set of tokens already logged
// out in this process.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	log    *zap.Logger
	now    func() time.Time
	mu        sync.Mutex
	revoke    *expirable.LRU[string, struct{}]
	revokeTTL time.Duration

	onExpire func(r *http.Request, userID int64)
}

// NewSessionManager builds a cookie-backed session manager. hashKey signs the
// cookie; blockKey, when non-empty, encrypts it and must be 16, 24 or 32
// bytes. In production (secure=true) cookies are Secure with SameSite=None.
func NewSessionManager(hashKey, blockKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if hashKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(hashKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(hashKey)))
	}
	keys := [][]byte{[]byte(hashKey)}
	if blockKey != "" {
		switch len(blockKey) {
		case 16, 24, 32:
		default:
			return nil, fmt.Errorf("session block key must be 16, 24 or 32 bytes, got %d", len(blockKey))
		}
		keys = append(keys, []byte(blockKey))
	}
	if name == "" {
		name = "diocesehub-session"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	store := sessions.NewCookieStore(keys...)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		name:   name,
		log:    logger,
		now:    time.Now,
		revoke:    expirable.NewLRU[string, struct{}](DefaultRevokedSize, nil, maxAge),
		revokeTTL: maxAge,
	}, nil
}

// SetRevokedSize resizes the set of logged-out tokens, dropping its current
// entries. Call it before serving requests; n <= 0 keeps the default.
func (sm *SessionManager) SetRevokedSize(n int) {
	if n <= 0 {
		n = DefaultRevokedSize
	}
	sm.mu.Lock()
	sm.revoke = expirable.NewLRU[string, struct{}](n, nil, sm.revokeTTL)
	sm.mu.Unlock()
}

// OnExpire registers fn to run once per session whose token is found
// expired by LoadSessionUser.
func (sm *SessionManager) OnExpire(fn func(r *http.Request, userID int64)) {
	sm.onExpire = fn
}

// Name is the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// Store exposes the underlying cookie store.
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// GetSession returns the request's session. On a decode failure (e.g. the
// keys rotated) a fresh session is returned along with the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn stores the token and user in the session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, token string, u models.User) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Debug("replacing undecodable session", zap.Error(err))
	}
	roles := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		roles[i] = string(role)
	}
	sess.Values[tokenKey] = token
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.FullName
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRolesKey] = strings.Join(roles, ",")
	return sess.Save(r, w)
}

// IsAuthenticated reports whether token is present and its exp claim lies
// after now. The signature is not checked; the backend does that on every
// call. A token without exp is not authenticated.
func IsAuthenticated(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.After(now)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Context                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	staleRepeatKey ctxKey = "staleRepeat"
)

// CurrentUser returns the user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser returns r carrying u, as LoadSessionUser would.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	if u.Token != "" {
		ctx = backend.WithToken(ctx, u.Token)
	}
	return r.WithContext(ctx)
}

// LoadSessionUser injects the signed-in user. An expired token is treated as
// a logout: it is removed from the session and revoked, and the request
// continues anonymously.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		token, _ := sess.Values[tokenKey].(string)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !IsAuthenticated(token, sm.now()) || sm.isRevoked(token) {
			first := sm.markRevoked(token)
			uid := int64Value(sess, userIDKey)
			clearUser(sess)
			if err := sess.Save(r, w); err != nil {
				sm.log.Warn("clear stale session", zap.Error(err))
			}
			if first {
				sm.log.Info("session expired", zap.Int64("user_id", uid))
				if sm.onExpire != nil {
					sm.onExpire(r, uid)
				}
			} else {
				r = r.WithContext(context.WithValue(r.Context(), staleRepeatKey, true))
			}
			next.ServeHTTP(w, r)
			return
		}

		u := &SessionUser{
			ID:    int64Value(sess, userIDKey),
			Name:  stringValue(sess, userNameKey),
			Email: stringValue(sess, userEmailKey),
			Token: token,
		}
		for _, s := range strings.Split(stringValue(sess, userRolesKey), ",") {
			if role, ok := models.ParseRole(s); ok {
				u.Roles = append(u.Roles, role)
			}
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Guards                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context.
// If not signed in:
//   - HTMX: HX-Redirect to /login?return=... (204 if this session's logout
//     was already handled by another request)
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		sm.toLogin(w, r, staleRepeat(r))
	})
}

// RequireRole ensures the user holds at least one of allowed.
// Signed-in users without the role go to /forbidden (403 for API callers).
func (sm *SessionManager) RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				sm.toLogin(w, r, staleRepeat(r))
				return
			}
			if !u.HasRole(allowed...) {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (sm *SessionManager) toLogin(w http.ResponseWriter, r *http.Request, repeat bool) {
	dest := "/login?return=" + url.QueryEscape(r.URL.RequestURI())
	if r.Header.Get("HX-Request") == "true" {
		if repeat {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Logout                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Logout deletes the session cookie and revokes its token. It reports whether
// this call was the first to end that session; explicit logout, token
// expiry and a backend 401 all funnel here, and only the first should
// navigate or audit.
//
// Revocation lives in this process only, in a set of SetRevokedSize tokens
// (DefaultRevokedSize unless configured). A token evicted from that set, or
// any token after a restart, authenticates again from a cookie kept from
// before the logout, until its exp claim passes.
func (sm *SessionManager) Logout(w http.ResponseWriter, r *http.Request) (user *SessionUser, first bool) {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during logout", zap.Error(err))
	}
	token := stringValue(sess, tokenKey)
	if token != "" {
		user = &SessionUser{
			ID:    int64Value(sess, userIDKey),
			Name:  stringValue(sess, userNameKey),
			Email: stringValue(sess, userEmailKey),
			Token: token,
		}
		first = sm.markRevoked(token)
	} else if u, ok := CurrentUser(r); ok && u.Token != "" {
		user = u
		first = sm.markRevoked(u.Token)
	}

	opts := *sm.store.Options
	sess.Options = &opts
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		sm.log.Error("logout: save session", zap.Error(err))
	}
	return user, first
}

// EndSession handles a backend 401 inside a page handler: the session is
// logged out and the browser sent to /login, unless another request already
// did so, in which case HTMX callers get 204.
func (sm *SessionManager) EndSession(w http.ResponseWriter, r *http.Request) (first bool) {
	_, first = sm.Logout(w, r)
	sm.toLogin(w, r, !first)
	return first
}

func (sm *SessionManager) isRevoked(token string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.revoke.Contains(tokenHash(token))
}

// markRevoked adds token to the revoked set and reports whether it was new.
func (sm *SessionManager) markRevoked(token string) bool {
	if token == "" {
		return false
	}
	k := tokenHash(token)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.revoke.Contains(k) {
		return false
	}
	sm.revoke.Add(k, struct{}{})
	return true
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

/*─────────────────────────────────────────────────────────────────────────────*
| Column order                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// ColumnOrder returns the saved column order for table, if any.
func (sm *SessionManager) ColumnOrder(r *http.Request, table string) []string {
	sess, err := sm.GetSession(r)
	if err != nil {
		return nil
	}
	s := stringValue(sess, colsPrefix+table)
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// SetColumnOrder saves the column order for table in the session.
func (sm *SessionManager) SetColumnOrder(w http.ResponseWriter, r *http.Request, table string, order []string) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Debug("replacing undecodable session", zap.Error(err))
	}
	sess.Values[colsPrefix+table] = strings.Join(order, ",")
	return sess.Save(r, w)
}

// helpers

func clearUser(s *sessions.Session) {
	for _, k := range []string{tokenKey, userIDKey, userNameKey, userEmailKey, userRolesKey} {
		delete(s.Values, k)
	}
}

func stringValue(s *sessions.Session, key string) string {
	if s == nil {
		return ""
	}
	v, _ := s.Values[key].(string)
	return v
}

func int64Value(s *sessions.Session, key string) int64 {
	if s == nil {
		return 0
	}
	v, _ := s.Values[key].(int64)
	return v
}

func staleRepeat(r *http.Request) bool {
	v, _ := r.Context().Value(staleRepeatKey).(bool)
	return v
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// UserFromToken reads the user out of token's claims, for backends whose
// login response carries only a token. email fills in a missing email
// claim. Unknown roles are dropped.
func UserFromToken(token, email string) models.User {
	u := models.User{Email: email}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return u
	}
	for _, k := range []string{"id", "user_id", "sub"} {
		if id := claimInt(claims[k]); id > 0 {
			u.ID = id
			break
		}
	}
	for _, k := range []string{"full_name", "name"} {
		if s, ok := claims[k].(string); ok && s != "" {
			u.FullName = s
			break
		}
	}
	if s, ok := claims["email"].(string); ok && s != "" {
		u.Email = s
	}
	var raw []string
	switch v := claims["roles"].(type) {
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	}
	if s, ok := claims["role"].(string); ok {
		raw = append(raw, s)
	}
	for _, s := range raw {
		if role, ok := models.ParseRole(s); ok && !u.HasRole(role) {
			u.Roles = append(u.Roles, role)
		}
	}
	if u.FullName == "" {
		u.FullName = u.Email
	}
	return u
}

func claimInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		var id int64
		if _, err := fmt.Sscan(n, &id); err == nil {
			return id
		}
	}
	return 0
}
