// internal/app/features/errors/classify.go
package errors

import (
	"context"
	stderrors "errors"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
)

// Kind is the user-facing category of a failed backend call.
type Kind int

const (
	KindNone        Kind = iota
	KindSession          // 401: token rejected, the session is over
	KindForbidden        // 403: permission denied, nothing changed
	KindNotFound         // 404
	KindRejected         // other 4xx or success=false: the write was refused
	KindUnavailable      // transport failure, timeout or 5xx
)

// Classify maps err to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	switch {
	case stderrors.Is(err, backend.ErrUnauthorized):
		return KindSession
	case stderrors.Is(err, backend.ErrForbidden):
		return KindForbidden
	case stderrors.Is(err, backend.ErrNotFound):
		return KindNotFound
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return KindUnavailable
	}
	var apiErr *backend.APIError
	if stderrors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return KindRejected
	}
	return KindUnavailable
}

// Level is the notification level the kind is shown with.
func (k Kind) Level() notify.Level {
	switch k {
	case KindNone:
		return notify.Success
	case KindSession:
		return notify.Info
	case KindForbidden, KindRejected:
		return notify.Warning
	}
	return notify.Error
}

// Message is the generic text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindSession:
		return "Your session has ended. Please sign in again."
	case KindForbidden:
		return "You don't have permission to do that."
	case KindNotFound:
		return "That record no longer exists."
	case KindRejected:
		return "The change was rejected."
	case KindUnavailable:
		return "The directory service is unavailable. Please try again."
	}
	return ""
}

// MessageFor prefers the backend's own message for rejected writes.
func MessageFor(err error) string {
	k := Classify(err)
	if k == KindRejected {
		return backend.Message(err, k.Message())
	}
	return k.Message()
}
