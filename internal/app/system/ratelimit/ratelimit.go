// internal/app/system/ratelimit/ratelimit.go
//
// Package ratelimit throttles sign-in attempts per client address and per
// email address with fixed windows held in a bounded, expiring cache.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxKeys bounds how many distinct keys a Limiter tracks.
const maxKeys = 10000

type window struct {
	count int
	start time.Time
}

// Limiter allows up to limit events per key within each window.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits *expirable.LRU[string, *window]
}

// New creates a Limiter. Keys are forgotten once their window has passed.
func New(limit int, per time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: per,
		now:    time.Now,
		hits:   expirable.NewLRU[string, *window](maxKeys, nil, per),
	}
}

// Allow records an event for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.hits.Get(key)
	if !ok || now.Sub(w.start) >= l.window {
		l.hits.Add(key, &window{count: 1, start: now})
		return true
	}
	w.count++
	return w.count <= l.limit
}

// Remaining returns how many events key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.hits.Peek(key)
	if !ok || l.now().Sub(w.start) >= l.window {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits.Remove(key)
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Login combines a per-address and a per-account limit for sign-in.
type Login struct {
	byIP    *Limiter
	byEmail *Limiter
}

// NewLogin returns a sign-in limiter: ipLimit attempts per minute from one
// address and emailLimit attempts per five minutes against one account.
// A limit of 0 or less turns that check off.
func NewLogin(ipLimit, emailLimit int) *Login {
	l := &Login{}
	if ipLimit > 0 {
		l.byIP = New(ipLimit, time.Minute)
	}
	if emailLimit > 0 {
		l.byEmail = New(emailLimit, 5*time.Minute)
	}
	return l
}

// Check records an attempt and returns "" if it may proceed, otherwise the
// message to show.
func (l *Login) Check(r *http.Request, email string) string {
	if l == nil {
		return ""
	}
	if l.byIP != nil && !l.byIP.Allow(ClientIP(r)) {
		return "Too many sign-in attempts. Please wait a minute and try again."
	}
	if key := emailKey(email); l.byEmail != nil && key != "" && !l.byEmail.Allow(key) {
		return "Too many sign-in attempts for this account. Please wait a few minutes."
	}
	return ""
}

// Succeeded clears the account's count after a successful sign-in.
func (l *Login) Succeeded(email string) {
	if l == nil || l.byEmail == nil {
		return
	}
	l.byEmail.Reset(emailKey(email))
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
