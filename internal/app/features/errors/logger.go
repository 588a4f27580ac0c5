// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure with request context and renders the
// matching friendly page.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (l *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		f = append(f, zap.Int64("user_id", u.ID))
	}
	return f
}

// LogServerError logs at error level and renders a 500 page.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.Log.Error(logMsg, l.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	l.Log.Warn(logMsg, l.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogBackendError classifies err and renders the page for its kind:
// 404 as not found, 403 as forbidden, unreachable or 5xx as unavailable.
// Session expiry (401) is not handled here; callers end the session first.
func (l *ErrorLogger) LogBackendError(w http.ResponseWriter, r *http.Request, logMsg string, err error, backURL string) {
	kind := Classify(err)
	switch kind {
	case KindNotFound:
		l.Log.Info(logMsg, l.fields(r, err)...)
		RenderNotFound(w, r, kind.Message(), backURL)
	case KindForbidden:
		l.Log.Warn(logMsg, l.fields(r, err)...)
		RenderForbidden(w, r, kind.Message(), backURL)
	case KindRejected:
		l.Log.Warn(logMsg, l.fields(r, err)...)
		RenderBadRequest(w, r, MessageFor(err), backURL)
	default:
		l.Log.Error(logMsg, l.fields(r, err)...)
		RenderUnavailable(w, r, kind.Message(), backURL)
	}
}
