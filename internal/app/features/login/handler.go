// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/auth"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/ratelimit"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

const invalidCredentials = "Invalid email or password."

type Handler struct {
	shared.Deps
	Limiter *ratelimit.Login
}

func NewHandler(deps shared.Deps, limiter *ratelimit.Login) *Handler {
	return &Handler{Deps: deps.Named("login"), Limiter: limiter}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	formutil.Base
	Email     string
	ReturnURL string
}

type loginInput struct {
	Email    string `form:"email" validate:"required,email,max=254" label:"Email"`
	Password string `form:"password" validate:"required,max=256" label:"Password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/"), http.StatusSeeOther)
		return
	}
	data := loginFormData{ReturnURL: ret}
	formutil.SetBase(&data.Base, w, r, "Sign in", "/")
	templates.Render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.renderFormWithError(w, r, res.First(), in.Email)
		return
	}

	if msg := h.Limiter.Check(r, in.Email); msg != "" {
		h.Log.Warn("login rate limited", zap.String("email", in.Email), zap.String("ip", ratelimit.ClientIP(r)))
		h.Audit.LoginFailed(r.Context(), r, in.Email, "rate limited")
		h.renderFormWithError(w, r, msg, in.Email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	res, err := h.API.Auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		kind := uierrors.Classify(err)
		switch kind {
		case uierrors.KindSession, uierrors.KindForbidden, uierrors.KindNotFound, uierrors.KindRejected:
			h.Audit.LoginFailed(r.Context(), r, in.Email, "invalid credentials")
			h.renderFormWithError(w, r, invalidCredentials, in.Email)
		default:
			h.Log.Error("login call failed", zap.String("email", in.Email), zap.Error(err))
			h.renderFormWithError(w, r, kind.Message(), in.Email)
		}
		return
	}

	if !auth.IsAuthenticated(res.Token, time.Now()) {
		h.Log.Error("backend issued an unusable token", zap.String("email", in.Email))
		h.renderFormWithError(w, r, "Sign-in failed: the session token could not be read.", in.Email)
		return
	}

	u := sessionUser(res.User, res.Token, in.Email)
	if err := h.Sessions.SignIn(w, r, res.Token, u); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Unable to create session. Please try again.", "/login")
		return
	}

	h.Limiter.Succeeded(in.Email)
	h.Audit.LoginSuccess(r.Context(), r, u.ID, u.Email)
	h.Log.Info("user signed in", zap.Int64("user_id", u.ID), zap.String("role", string(u.PrimaryRole())))

	dest := urlutil.SafeReturn(r.FormValue("return"), "", "/")
	shared.Redirect(w, r, dest)
}

// sessionUser picks the user to store: the login response's, else the one
// described by the token's claims.
func sessionUser(u *models.User, token, email string) models.User {
	if u != nil && (u.ID != 0 || len(u.Roles) > 0) {
		out := *u
		if out.Email == "" {
			out.Email = email
		}
		if out.FullName == "" {
			out.FullName = out.Email
		}
		out.Password = ""
		return out
	}
	return auth.UserFromToken(token, email)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helper: render the form with an error                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	// From POST, "return" will be in the form; from GET, it is in the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	data := loginFormData{Email: email, ReturnURL: ret}
	formutil.SetBase(&data.Base, w, r, "Sign in", "/")
	data.Warn(msg)
	templates.Render(w, r, "login", data)
}
