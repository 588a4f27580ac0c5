// internal/app/features/dioceses/new.go
package dioceses

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeNew renders the "New Diocese" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var data formData
	if !h.withStates(ctx, w, r, &data, "New Diocese") {
		return
	}
	templates.Render(w, r, "diocese_new", data)
}

// HandleCreate processes the New Diocese form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	in := readInput(r.FormValue, r.Form["states"])

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := in.form(0)
		if !h.withStates(ctx, w, r, &data, "New Diocese") {
			return
		}
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "diocese_new", data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	created, err := h.API.Dioceses.Create(ctx, in.model(0))
	if err != nil {
		f, done := h.WriteFailed(w, r, err, entity, 0, shared.Created)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Created, entity, created.ID, created.Name, navigation.DiocesesBackURL, "Diocese created.")
}

// withStates fills the form's base and state checkboxes. It returns false
// when the session ended while loading them.
func (h *Handler) withStates(ctx context.Context, w http.ResponseWriter, r *http.Request, data *formData, title string) bool {
	snap, err := h.Ref.Get(ctx)
	if err != nil {
		f, done := h.LoadFailed(w, r, err, "states")
		if done {
			return false
		}
		formutil.SetBase(&data.Base, w, r, title, basePath)
		data.Notify(f.Level, f.Message)
		data.LoadFail = true
		return true
	}
	formutil.SetBase(&data.Base, w, r, title, basePath)
	data.StateOptions = snap.States
	return true
}
