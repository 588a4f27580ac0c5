// internal/app/features/states/new.go
package states

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

// ServeNew renders the "New State" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	var data formData
	formutil.SetBase(&data.Base, w, r, "New State", basePath)
	templates.Render(w, r, "state_new", data)
}

// HandleCreate processes the New State form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", basePath)
		return
	}
	in := readInput(r.FormValue)

	reRender := func(level notify.Level, msg string, fields map[string]string) {
		data := formData{Name: in.Name, Abbreviation: in.Abbreviation}
		formutil.SetBase(&data.Base, w, r, "New State", basePath)
		data.Fail(level, msg)
		data.SetFieldErrors(fields)
		templates.Render(w, r, "state_new", data)
	}

	if res := inputval.Validate(in); res.HasErrors() {
		reRender(notify.Warning, res.First(), res.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.API.States.Create(ctx, in.model(0))
	if err != nil {
		f, done := h.WriteFailed(w, r, err, entity, 0, shared.Created)
		if !done {
			reRender(f.Level, f.Message, nil)
		}
		return
	}

	h.Saved(w, r, shared.Created, entity, created.ID, created.Name, navigation.StatesBackURL, "State created.")
}
