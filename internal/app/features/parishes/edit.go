// internal/app/features/parishes/edit.go
package parishes

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit Parish page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid parish ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var p models.Parish
	if _, err := h.Ref.LoadPage(ctx, func(ctx context.Context) error {
		var err error
		p, err = h.API.Parishes.Get(ctx, id)
		return err
	}); err != nil {
		h.GetFailed(w, r, err, "parish", basePath)
		return
	}

	data := formOf(p)
	sel := cascade.Selection{StateID: p.StateID, DioceseID: p.DioceseID}
	if !h.prepare(ctx, w, r, &data, sel, "Edit Parish") {
		return
	}
	templates.Render(w, r, "parish_edit", data)
}

// HandleEdit processes the Edit Parish form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid parish ID.", basePath)
		return
	}
	in := readInput(r.FormValue)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := formOf(in.model(id))
	if !h.prepare(ctx, w, r, &data, in.selection(), "Edit Parish") {
		return
	}
	render := func(level notify.Level, msg string, fields map[string]string) {
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "parish_edit", data)
	}
	if data.LoadFail {
		templates.Render(w, r, "parish_edit", data)
		return
	}

	res := inputval.Validate(in)
	shared.CheckSelection(res, data.Cascade, in.selection(), depth)
	if res.HasErrors() {
		render(notify.Warning, res.First(), res.Fields())
		return
	}

	if _, err := h.API.Parishes.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			render(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.Name, navigation.ParishesBackURL, "Parish updated.")
}
