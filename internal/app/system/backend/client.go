// internal/app/system/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is sent with every backend call so requests can be
// correlated across the two tiers.
const RequestIDHeader = "X-Request-ID"

// maxBody caps how much of a response is read.
const maxBody = 16 << 20

type tokenKey struct{}

// WithToken returns a context carrying the bearer token for backend calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored by WithToken, if any.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// Client talks JSON to the directory backend. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *zap.Logger

	States     *Resource[State]
	Dioceses   *Resource[Diocese]
	Parishes   *Resource[Parish]
	Adorations *Resource[Adoration]
	Crusades   *Resource[Crusade]
	Users      *Resource[User]
	Auth       *AuthService
}

// New builds a Client for baseURL. timeout bounds each HTTP round trip; use
// 0 to rely solely on the caller's context deadline.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger,
	}
	c.States = newResource[State](c, "states")
	c.Dioceses = newResource[Diocese](c, "dioceses")
	c.Parishes = newResource[Parish](c, "parishes")
	c.Adorations = newResource[Adoration](c, "adorations")
	c.Crusades = newResource[Crusade](c, "crusades")
	c.Users = newResource[User](c, "users")
	c.Auth = &AuthService{c: c}
	return c, nil
}

// ParseBaseURL validates an absolute http(s) base URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid backend base URL %q", raw)
	}
	return u, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// response is a fully read backend response.
type response struct {
	status int
	body   []byte
}

// do performs one JSON round trip. Non-2xx statuses are returned as errors
// (see errors.go); the body of a 2xx response is returned unparsed so the
// caller can normalise its shape.
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, reqBody any) (response, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return response{}, fmt.Errorf("encode %s request: %w", resource, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(resource, method, 0, time.Since(start))
		c.log.Warn("backend request failed",
			zap.String("resource", resource),
			zap.String("method", method),
			zap.String("request_id", reqID),
			zap.Error(err))
		return response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	observe(resource, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return response{}, fmt.Errorf("read %s response: %w", resource, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
		c.log.Debug("backend returned error status",
			zap.String("resource", resource),
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", reqID))
		return response{}, apiErr
	}

	return response{status: resp.StatusCode, body: respBody}, nil
}

// Ping reports whether the backend answers HTTP at all. Any status,
// including 401 for the unauthenticated probe, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodHead, "/states", nil, nil)
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		return nil
	}
	return err
}
