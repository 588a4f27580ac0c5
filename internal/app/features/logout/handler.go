// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/auditlog"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"go.uber.org/zap"
)

const loginPath = "/login"

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Audit      *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Audit:      audit,
	}
}

// ServeLogout handles POST /logout.
//
// The session cookie is always cleared. Only the first request to end a
// given session is audited and navigated; a repeat (a second tab, or a
// token that expired a moment earlier) gets 204 under HTMX so the page
// is not redirected twice.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	u, first := h.SessionMgr.Logout(w, r)

	if u != nil && first {
		h.Log.Info("user signed out", zap.Int64("user_id", u.ID))
		h.Audit.Logout(r.Context(), r, u.ID, u.Email)
	}

	isHTMX := r.Header.Get("HX-Request") != ""
	if isHTMX && u != nil && !first {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if isHTMX {
		w.Header().Set("HX-Redirect", loginPath)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
