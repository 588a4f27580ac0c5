// internal/app/features/adorations/edit.go
package adorations

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

// ServeEdit renders the Edit Adoration page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid adoration ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var a models.Adoration
	if _, err := h.Ref.LoadPage(ctx, func(ctx context.Context) error {
		var err error
		a, err = h.API.Adorations.Get(ctx, id)
		return err
	}); err != nil {
		h.GetFailed(w, r, err, "adoration", basePath)
		return
	}

	data := formOf(a)
	sel := cascade.Selection{StateID: a.StateID, DioceseID: a.DioceseID, ParishID: a.ParishID}
	if !h.prepare(ctx, w, r, &data, sel, "Edit Adoration") {
		return
	}
	templates.Render(w, r, "adoration_edit", data)
}

// HandleEdit processes the Edit Adoration form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid adoration ID.", basePath)
		return
	}
	in := readInput(r.FormValue)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := formOf(in.model(id))
	if !h.prepare(ctx, w, r, &data, in.selection(), "Edit Adoration") {
		return
	}
	render := func(level notify.Level, msg string, fields map[string]string) {
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "adoration_edit", data)
	}
	if data.LoadFail {
		templates.Render(w, r, "adoration_edit", data)
		return
	}

	res := in.validate()
	shared.CheckSelection(res, data.Cascade, in.selection(), depth)
	if res.HasErrors() {
		render(notify.Warning, res.First(), res.Fields())
		return
	}

	if _, err := h.API.Adorations.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			render(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.Location, navigation.AdorationsBackURL, "Adoration updated.")
}
