// internal/app/features/parishes/new.go
package parishes

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeNew renders the "New Parish" form. A state_id/diocese_id in the URL
// (the list's current filter) preselects the cascade.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var data formData
	if !h.prepare(ctx, w, r, &data, shared.SelectionFromQuery(r), "New Parish") {
		return
	}
	templates.Render(w, r, "parish_new", data)
}

// HandleCreate processes the New Parish form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	in := readInput(r.FormValue)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := formOf(in.model(0))
	if !h.prepare(ctx, w, r, &data, in.selection(), "New Parish") {
		return
	}
	render := func(level notify.Level, msg string, fields map[string]string) {
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "parish_new", data)
	}
	if data.LoadFail {
		templates.Render(w, r, "parish_new", data)
		return
	}

	res := inputval.Validate(in)
	shared.CheckSelection(res, data.Cascade, in.selection(), depth)
	if res.HasErrors() {
		render(notify.Warning, res.First(), res.Fields())
		return
	}

	created, err := h.API.Parishes.Create(ctx, in.model(0))
	if err != nil {
		f, done := h.WriteFailed(w, r, err, entity, 0, shared.Created)
		if !done {
			render(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Created, entity, created.ID, created.Name, navigation.ParishesBackURL, "Parish created.")
}

// prepare fills the form's base and cascade for sel. It returns false when
// the session ended while loading the reference data.
func (h *Handler) prepare(ctx context.Context, w http.ResponseWriter, r *http.Request, data *formData, sel cascade.Selection, title string) bool {
	vm, fail, done := h.FormCascade(ctx, w, r, sel, depth, cascadeTarget)
	if done {
		return false
	}
	formutil.SetBase(&data.Base, w, r, title, basePath)
	data.Cascade = vm
	if fail != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
	}
	return true
}
