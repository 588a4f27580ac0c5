// internal/app/features/shared/outcome.go
package shared

import (
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"go.uber.org/zap"
)

// Action is the kind of write a form performed.
type Action string

const (
	Created Action = "create"
	Updated Action = "update"
	Deleted Action = "delete"
)

// Failure is how a form should present a failed write.
type Failure struct {
	Level   notify.Level
	Message string
}

// actorID returns the signed-in user's id, or 0.
func actorID(r *http.Request) int64 {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return 0
}

// EndSession handles a backend 401: the session is logged out and the
// browser sent to /login. Only the first of several concurrent triggers
// audits and navigates.
func (d Deps) EndSession(w http.ResponseWriter, r *http.Request, cause string) {
	uid := actorID(r)
	if d.Sessions == nil {
		Redirect(w, r, "/login")
		return
	}
	if d.Sessions.EndSession(w, r) {
		d.Log.Info("backend rejected session token", zap.Int64("user_id", uid), zap.String("cause", cause))
		d.Audit.SessionExpired(r.Context(), r, uid, cause)
	}
}

// WriteFailed handles err from a create, update or delete of entity id.
// When the session has ended the response is written and done is true.
// Otherwise the returned Failure is shown on the re-rendered form and the
// record is left unchanged.
func (d Deps) WriteFailed(w http.ResponseWriter, r *http.Request, err error, entity string, id int64, action Action) (f Failure, done bool) {
	kind := uierrors.Classify(err)
	switch kind {
	case uierrors.KindSession:
		d.EndSession(w, r, string(action)+" "+entity)
		return Failure{}, true
	case uierrors.KindForbidden:
		d.Log.Warn("write denied by backend",
			zap.String("entity", entity), zap.Int64("id", id), zap.String("action", string(action)))
		d.Audit.WriteDenied(r.Context(), r, actorID(r), entity, id, string(action))
	case uierrors.KindRejected, uierrors.KindNotFound:
		d.Log.Info("write rejected by backend",
			zap.String("entity", entity), zap.Int64("id", id), zap.String("action", string(action)), zap.Error(err))
	default:
		d.Log.Error("write failed",
			zap.String("entity", entity), zap.Int64("id", id), zap.String("action", string(action)), zap.Error(err))
	}
	return Failure{Level: kind.Level(), Message: uierrors.MessageFor(err)}, false
}

// Saved finishes a successful write: the reference cache is invalidated,
// the change audited, a success notice queued and the browser sent back
// to the list, which reloads with its saved filter.
func (d Deps) Saved(w http.ResponseWriter, r *http.Request, action Action, entity string, id int64, name string, back navigation.BackURLOptions, msg string) {
	if d.Ref != nil {
		d.Ref.Invalidate()
	}
	actor := actorID(r)
	switch action {
	case Created:
		d.Audit.RecordCreated(r.Context(), r, actor, entity, id, name)
	case Updated:
		d.Audit.RecordUpdated(r.Context(), r, actor, entity, id, name)
	case Deleted:
		d.Audit.RecordDeleted(r.Context(), r, actor, entity, id, name)
	}
	d.Flash(w, r, notify.Success, msg)
	Redirect(w, r, RestoreURL(navigation.SafeBackURL(r, back)))
}

// DeleteFailed handles a failed delete, which has no form to re-render: the
// failure is flashed and the browser returns to the list.
func (d Deps) DeleteFailed(w http.ResponseWriter, r *http.Request, err error, entity string, id int64, back navigation.BackURLOptions) {
	f, done := d.WriteFailed(w, r, err, entity, id, Deleted)
	if done {
		return
	}
	d.Flash(w, r, f.Level, f.Message)
	Redirect(w, r, RestoreURL(navigation.SafeBackURL(r, back)))
}

// Flash queues a notice for the next page render.
func (d Deps) Flash(w http.ResponseWriter, r *http.Request, level notify.Level, text string) {
	if d.Sessions == nil {
		return
	}
	notify.Flash(w, r, d.Sessions, level, text)
}

// RestoreURL marks a list URL for filter restoration unless it already
// names a filter.
func RestoreURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, k := range []string{"state_id", "diocese_id", "parish_id"} {
		if q.Get(k) != "" {
			return raw
		}
	}
	q.Set(RestoreParam, "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// Redirect navigates the browser to dest, via HX-Redirect for HTMX.
func Redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// GetFailed handles a failed fetch of the record an edit page shows.
func (d Deps) GetFailed(w http.ResponseWriter, r *http.Request, err error, what, backURL string) {
	if uierrors.Classify(err) == uierrors.KindSession {
		d.EndSession(w, r, "load "+what)
		return
	}
	d.ErrLog.LogBackendError(w, r, "load "+what+" failed", err, backURL)
}
