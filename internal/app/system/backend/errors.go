// internal/app/system/backend/errors.go
package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the backend rejected the session token (401).
	// Callers treat it as session expiry.
	ErrUnauthorized = errors.New("backend: unauthorized")

	// ErrForbidden means the token is valid but lacks permission (403).
	ErrForbidden = errors.New("backend: forbidden")

	// ErrNotFound means the addressed record does not exist (404).
	ErrNotFound = errors.New("backend: not found")
)

// APIError is any other non-2xx response, or an envelope with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Unwrap lets errors.Is match the sentinel that corresponds to Status.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Message extracts a user-presentable message from err, falling back to def.
func Message(err error, def string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return def
}
