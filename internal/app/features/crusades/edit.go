// internal/app/features/crusades/edit.go
package crusades

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit Crusade page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid crusade ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var a models.Crusade
	if _, err := h.Ref.LoadPage(ctx, func(ctx context.Context) error {
		var err error
		a, err = h.API.Crusades.Get(ctx, id)
		return err
	}); err != nil {
		h.GetFailed(w, r, err, "crusade", basePath)
		return
	}

	data := formOf(a)
	sel := cascade.Selection{StateID: a.StateID, DioceseID: a.DioceseID, ParishID: a.ParishID}
	if !h.prepare(ctx, w, r, &data, sel, "Edit Crusade") {
		return
	}
	templates.Render(w, r, "crusade_edit", data)
}

// HandleEdit processes the Edit Crusade form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid crusade ID.", basePath)
		return
	}
	in := readInput(r.FormValue)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := formOf(in.model(id))
	if !h.prepare(ctx, w, r, &data, in.selection(), "Edit Crusade") {
		return
	}
	render := func(level notify.Level, msg string, fields map[string]string) {
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "crusade_edit", data)
	}
	if data.LoadFail {
		templates.Render(w, r, "crusade_edit", data)
		return
	}

	res := in.validate()
	shared.CheckSelection(res, data.Cascade, in.selection(), depth)
	if res.HasErrors() {
		render(notify.Warning, res.First(), res.Fields())
		return
	}

	if _, err := h.API.Crusades.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			render(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.ContactName, navigation.CrusadesBackURL, "Crusade updated.")
}
