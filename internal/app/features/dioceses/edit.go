// internal/app/features/dioceses/edit.go
package dioceses

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit Diocese page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid diocese ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var d models.Diocese
	_, err := h.Ref.LoadPage(ctx, func(ctx context.Context) error {
		var err error
		d, err = h.API.Dioceses.Get(ctx, id)
		return err
	})
	if err != nil {
		h.GetFailed(w, r, err, "diocese", basePath)
		return
	}

	data := formOf(d)
	if !h.withStates(ctx, w, r, &data, "Edit Diocese") {
		return
	}
	templates.Render(w, r, "diocese_edit", data)
}

// HandleEdit processes the Edit Diocese form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid diocese ID.", basePath)
		return
	}
	in := readInput(r.FormValue, r.Form["states"])

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := in.form(id)
		if !h.withStates(ctx, w, r, &data, "Edit Diocese") {
			return
		}
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "diocese_edit", data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	if _, err := h.API.Dioceses.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.Name, navigation.DiocesesBackURL, "Diocese updated.")
}
