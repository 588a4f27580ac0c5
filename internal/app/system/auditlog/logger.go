// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/diocesehub/internal/app/store/audit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Destination settings for Config fields.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout, expiry).
	Auth string
	// Admin controls logging for record writes (create, update, delete).
	Admin string
}

// Logger records audit events to zap and, when a store is configured, to
// MongoDB. A nil *Logger is a no-op.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil, in which case "db" and
// "all" settings write to zap only.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

func fromRequest(r *http.Request, e audit.Event) audit.Event {
	if r != nil {
		e.IP = getClientIP(r)
		e.UserAgent = r.UserAgent()
		e.RequestID = requestID(r)
	}
	return e
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
	}
	if event.ActorID != 0 {
		fields = append(fields, zap.Int64("actor_id", event.ActorID))
	}
	if event.Entity != "" {
		fields = append(fields, zap.String("entity", event.Entity), zap.Int64("entity_id", event.EntityID))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	toDB := (setting == All || setting == DB) && l.store != nil
	if setting == All || setting == Log || (setting == DB && l.store == nil) {
		l.logToZap(event)
	}
	if toDB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID int64, email string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    userID,
		Email:     email,
		Success:   true,
	}))
}

// LoginFailed logs a rejected login. reason is the backend's message or
// status.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailed,
		Email:         email,
		Success:       false,
		FailureReason: reason,
	}))
}

// Logout logs an explicit logout.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID int64, email string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    userID,
		Email:     email,
		Success:   true,
	}))
}

// SessionExpired logs a session ended by token expiry or a backend 401.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request, userID int64, cause string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSessionExpired,
		UserID:    userID,
		Success:   true,
		Details:   map[string]string{"cause": cause},
	}))
}

// --- Admin Events ---

func (l *Logger) record(ctx context.Context, r *http.Request, eventType string, actorID int64, entity string, id int64, name string) {
	e := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actorID,
		Entity:    entity,
		EntityID:  id,
		Success:   true,
	}
	if name != "" {
		e.Details = map[string]string{"name": name}
	}
	if entity == "user" {
		e.UserID = id
	}
	l.Log(ctx, fromRequest(r, e))
}

// RecordCreated logs a successful create of entity id.
func (l *Logger) RecordCreated(ctx context.Context, r *http.Request, actorID int64, entity string, id int64, name string) {
	l.record(ctx, r, audit.EventRecordCreated, actorID, entity, id, name)
}

// RecordUpdated logs a successful update of entity id.
func (l *Logger) RecordUpdated(ctx context.Context, r *http.Request, actorID int64, entity string, id int64, name string) {
	l.record(ctx, r, audit.EventRecordUpdated, actorID, entity, id, name)
}

// RecordDeleted logs a successful delete of entity id.
func (l *Logger) RecordDeleted(ctx context.Context, r *http.Request, actorID int64, entity string, id int64, name string) {
	l.record(ctx, r, audit.EventRecordDeleted, actorID, entity, id, name)
}

// WriteDenied logs a write the backend refused with 403.
func (l *Logger) WriteDenied(ctx context.Context, r *http.Request, actorID int64, entity string, id int64, action string) {
	l.Log(ctx, fromRequest(r, audit.Event{
		Category:      audit.CategoryAdmin,
		EventType:     audit.EventWriteDenied,
		ActorID:       actorID,
		Entity:        entity,
		EntityID:      id,
		Success:       false,
		FailureReason: "forbidden",
		Details:       map[string]string{"action": action, "entity_id": strconv.FormatInt(id, 10)},
	}))
}
