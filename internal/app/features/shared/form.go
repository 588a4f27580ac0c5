// internal/app/features/shared/form.go
package shared

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
)

// FormCascade loads the reference data and builds the cascade selects of an
// edit form for sel. When the load fails the selects are disabled and fail
// carries the notice to show; done is true if the session ended instead.
func (d Deps) FormCascade(ctx context.Context, w http.ResponseWriter, r *http.Request, sel cascade.Selection, depth int, target string) (vm CascadeVM, fail *Failure, done bool) {
	snap, err := d.Ref.Get(ctx)
	if err != nil {
		f, done := d.LoadFailed(w, r, err, "reference data")
		if done {
			return CascadeVM{}, nil, true
		}
		return DisabledCascade(depth, ScopeForm, target), &f, false
	}
	res := ComputeCascade(snap, sel, depth)
	return NewCascade(snap, res, depth, ScopeForm, target), nil, false
}

// CheckSelection adds a failure to res for each level of sel that the
// cascade had to clear because it does not belong to the level above.
func CheckSelection(res *inputval.Result, vm CascadeVM, sel cascade.Selection, depth int) {
	add := func(field, msg string) {
		res.Errors = append(res.Errors, inputval.FieldError{Field: field, Message: msg})
	}
	if vm.Disabled {
		return
	}
	if sel.StateID != 0 && vm.StateID != sel.StateID {
		add("state_id", "Please choose a state.")
	}
	if depth >= DepthDiocese && sel.DioceseID != 0 && vm.DioceseID != sel.DioceseID {
		add("diocese_id", "Choose a diocese in the selected state.")
	}
	if depth >= DepthParish && sel.ParishID != 0 && vm.ParishID != sel.ParishID {
		add("parish_id", "Choose a parish in the selected diocese.")
	}
}
