// Package sharedtest builds feature dependencies over a fake backend for
// handler tests.
package sharedtest

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/filters"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/testutil"
	"go.uber.org/zap"
)

const (
	sessionKey = "test-session-key-must-be-32-chars-long"
	filterKey  = "test-filter-key-must-be-32-chars"
)

// Deps returns handler dependencies talking to fb. The reference cache has
// no expiry; audit events go nowhere.
func Deps(t *testing.T, fb *testutil.FakeBackend) shared.Deps {
	t.Helper()
	api := fb.Client(t)
	sm, err := auth.NewSessionManager(sessionKey, "", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return shared.Deps{
		API:      api,
		Ref:      refdata.New(refdata.NewBackendSource(api), 0, zap.NewNop()),
		Sessions: sm,
		Filters:  filters.New([]byte(filterKey), nil, false),
		Audit:    auditlog.New(nil, zap.NewNop(), auditlog.Config{Auth: auditlog.Off, Admin: auditlog.Off}),
		Log:      zap.NewNop(),
	}
}

// Serve runs h and swallows a panic from rendering, since handler tests do
// not boot the template engine. It reports whether h panicked.
func Serve(h http.HandlerFunc, w http.ResponseWriter, r *http.Request) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	h(w, r)
	return false
}
