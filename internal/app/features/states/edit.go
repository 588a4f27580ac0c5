// internal/app/features/states/edit.go
package states

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/navigation"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the Edit State page.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid state ID.", basePath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.API.States.Get(ctx, id)
	if err != nil {
		h.GetFailed(w, r, err, "state", basePath)
		return
	}

	data := formData{ID: st.ID, Name: st.Name, Abbreviation: st.Abbreviation}
	formutil.SetBase(&data.Base, w, r, "Edit State", basePath)
	templates.Render(w, r, "state_edit", data)
}

// HandleEdit processes the Edit State form POST.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	id := shared.ParseID(chi.URLParam(r, "id"))
	if id == 0 {
		uierrors.RenderBadRequest(w, r, "Invalid state ID.", basePath)
		return
	}
	in := readInput(r.FormValue)

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := formData{ID: id, Name: in.Name, Abbreviation: in.Abbreviation}
		formutil.SetBase(&data.Base, w, r, "Edit State", basePath)
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "state_edit", data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.States.Update(ctx, id, in.model(id)); err != nil {
		f, done := h.WriteFailed(w, r, err, entity, id, shared.Updated)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Updated, entity, id, in.Name, navigation.StatesBackURL, "State updated.")
}
