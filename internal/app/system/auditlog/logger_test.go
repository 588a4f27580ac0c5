package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/store/audit"
	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, 1, "a@example.org")
	logger.Logout(ctx, req, 1, "a@example.org")
	logger.RecordCreated(ctx, req, 1, "parish", 2, "St Mary")
}

func TestLogger_ZapOnlyWithoutStore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := auditlog.New(nil, zap.New(core), auditlog.Config{Auth: auditlog.All, Admin: auditlog.DB})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := httptest.NewRequest("POST", "/parishes/new", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	logger.RecordCreated(ctx, req, 3, "parish", 40, "St Mary")
	logger.LoginFailed(ctx, req, "bob@example.org", "bad credentials")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 zap entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != audit.EventRecordCreated || fields["entity"] != "parish" || fields["entity_id"] != int64(40) {
		t.Errorf("fields = %v", fields)
	}
	if fields["ip"] != "10.0.0.9" {
		t.Errorf("ip = %v", fields["ip"])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("failed login should warn, got %v", entries[1].Level)
	}
}

func TestLogger_Off(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := auditlog.New(nil, zap.New(core), auditlog.Config{Auth: auditlog.Off, Admin: auditlog.Off})
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger.LoginSuccess(ctx, httptest.NewRequest("POST", "/login", nil), 1, "a@example.org")
	logger.RecordDeleted(ctx, httptest.NewRequest("POST", "/states/1/delete", nil), 1, "state", 1, "")
	if logs.Len() != 0 {
		t.Errorf("expected no entries, got %d", logs.Len())
	}
}

func TestLogger_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.New(core), auditlog.Config{Auth: auditlog.DB, Admin: auditlog.All})
	req := httptest.NewRequest("POST", "/login", nil)
	logger.LoginSuccess(ctx, req, 11, "ann@example.org")
	logger.RecordUpdated(ctx, req, 11, "user", 12, "Bob")

	events, err := store.Query(ctx, audit.QueryFilter{UserID: 11})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 || events[0].EventType != audit.EventLoginSuccess {
		t.Fatalf("events for user 11 = %+v", events)
	}
	if events[0].RequestID == "" {
		t.Error("expected a request id")
	}

	updated, err := store.Query(ctx, audit.QueryFilter{UserID: 12})
	if err != nil || len(updated) != 1 || updated[0].ActorID != 11 {
		t.Fatalf("events for user 12 = %+v, %v", updated, err)
	}

	// auth=db keeps the login out of zap; admin=all mirrors the update.
	if logs.Len() != 1 {
		t.Errorf("zap entries = %d, want 1", logs.Len())
	}
}
