// internal/app/features/users/edit.go
package users

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/authz"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit User page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid user ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.API.Users.Get(ctx, id)
	if err != nil {
		h.GetFailed(w, r, err, "user", basePath)
		return
	}

	data := formOf(u)
	data.IsSelf = isSelf(r, id)
	formutil.SetBase(&data.Base, w, r, "Edit User", basePath)
	templates.Render(w, r, "user_edit", data)
}

// HandleEdit processes the Edit User form POST. A blank password leaves the
// current one unchanged. Admins cannot disable themselves or drop their own
// ADMIN role.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid user ID.", basePath)
		return
	}
	in := readInput(r.FormValue, r.Form["roles"])
	self := isSelf(r, id)

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := formOf(in.model(id))
		data.IsSelf = self
		formutil.SetBase(&data.Base, w, r, "Edit User", basePath)
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "user_edit", data)
	}

	res := inputval.Validate(in)
	if self && !in.Enabled {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "enabled", Message: "You cannot disable your own account."})
	}
	if self && !in.model(id).HasRole(models.RoleAdmin) {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "roles", Message: "You cannot remove your own ADMIN role."})
	}
	if res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.Users.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.Email, navigation.UsersBackURL, "User updated.")
}

func isSelf(r *http.Request, id int64) bool {
	_, _, uid, ok := authz.UserCtx(r)
	return ok && uid == id
}
