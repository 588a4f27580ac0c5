// Package formutil provides helpers for form re-rendering after a failed
// submit.
//
// When a submission fails validation or the backend rejects it, the form is
// rendered again with:
// - The user's previously entered values (echoed back)
// - A notice explaining what went wrong
// - The cascade dropdowns recomputed for the echoed selection
//
// Example usage:
//
//	type parishFormData struct {
//		formutil.Base
//		Name string
//	}
//
//	data := parishFormData{Name: name}
//	formutil.SetBase(&data.Base, w, r, "Edit Parish", "/parishes")
//	data.Warn("Name is required.")
//	templates.Render(w, r, "parish_edit", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM
	Error template.HTML

	// FieldErrors maps a form field name to its message.
	FieldErrors map[string]string
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, title, backDefault)
}

// SetError sets an inline error and an error notice.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
	b.Notify(notify.Error, msg)
}

// Warn sets an inline error and a warning notice (validation failures).
func (b *Base) Warn(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
	b.Notify(notify.Warning, msg)
}

// Fail sets an inline error shown with a notice at level.
func (b *Base) Fail(level notify.Level, msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
	b.Notify(level, msg)
}

// SetFieldErrors records per-field messages.
func (b *Base) SetFieldErrors(errs map[string]string) {
	b.FieldErrors = errs
}

// FieldError returns the message for field, or "".
func (b Base) FieldError(field string) string {
	return b.FieldErrors[field]
}
