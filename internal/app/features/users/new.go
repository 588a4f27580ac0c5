// internal/app/features/users/new.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeNew renders the "New User" form. New users start enabled with the
// STANDARD role.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := formOf(models.User{Roles: []models.Role{models.RoleStandard}, Enabled: true})
	formutil.SetBase(&data.Base, w, r, "New User", basePath)
	templates.Render(w, r, "user_new", data)
}

// HandleCreate processes the New User form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	in := readInput(r.FormValue, r.Form["roles"])

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := formOf(in.model(0))
		formutil.SetBase(&data.Base, w, r, "New User", basePath)
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "user_new", data)
	}

	res := inputval.Validate(in)
	if in.Password == "" {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "password", Message: "Password is required."})
	}
	if res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.API.Users.Create(ctx, in.model(0))
	if err != nil {
		f, done := h.WriteFailed(w, r, err, entity, 0, shared.Created)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Created, entity, created.ID, created.Email, navigation.UsersBackURL, "User created.")
}
