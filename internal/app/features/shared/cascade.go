// internal/app/features/shared/cascade.go
package shared

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// How many levels of the state → diocese → parish cascade a page uses.
const (
	DepthState   = 1
	DepthDiocese = 2
	DepthParish  = 3
)

// Cascade scopes. A filter submits its form on change; a form swaps the
// dependent selects in place.
const (
	ScopeFilter = "filter"
	ScopeForm   = "form"
)

// CascadeVM is the view model of the "cascade_selects" template.
type CascadeVM struct {
	Scope string
	Depth int
	// Target is the DOM id of the element wrapping the selects.
	Target string

	States   []models.State
	Dioceses []models.Diocese
	Parishes []models.Parish

	StateID   int64
	DioceseID int64
	ParishID  int64

	DioceseDisabled bool
	ParishDisabled  bool

	// Disabled turns off every control, e.g. after a load failure.
	Disabled bool

	// Notice is shown alongside a fragment swapped in on its own, where no
	// page layout renders the flashes.
	Notice *notify.Message
}

// ShowDiocese reports whether the diocese select is rendered.
func (c CascadeVM) ShowDiocese() bool { return c.Depth >= DepthDiocese }

// ShowParish reports whether the parish select is rendered.
func (c CascadeVM) ShowParish() bool { return c.Depth >= DepthParish }

// IsForm reports whether this cascade lives in an edit form.
func (c CascadeVM) IsForm() bool { return c.Scope == ScopeForm }

// OptionsURL is the HTMX endpoint that re-renders these selects.
func (c CascadeVM) OptionsURL() string {
	v := url.Values{}
	v.Set("scope", c.Scope)
	v.Set("depth", strconv.Itoa(c.Depth))
	v.Set("target", c.Target)
	return "/cascade/options?" + v.Encode()
}

// Query encodes the current selection, for links that carry the filter.
func (c CascadeVM) Query() string {
	return FilterQuery(cascade.Selection{StateID: c.StateID, DioceseID: c.DioceseID, ParishID: c.ParishID}).Encode()
}

// NewCascade builds the view model from a computed result.
func NewCascade(snap *refdata.Snapshot, res cascade.Result, depth int, scope, target string) CascadeVM {
	vm := CascadeVM{
		Scope:           scope,
		Depth:           depth,
		Target:          target,
		Dioceses:        res.Dioceses,
		Parishes:        res.Parishes,
		StateID:         res.Selection.StateID,
		DioceseID:       res.Selection.DioceseID,
		ParishID:        res.Selection.ParishID,
		DioceseDisabled: res.DioceseDisabled,
		ParishDisabled:  res.ParishDisabled,
	}
	if snap != nil {
		vm.States = snap.States
	} else {
		vm.Disabled = true
	}
	return vm
}

// DisabledCascade is the empty, disabled control shown when reference data
// could not be loaded.
func DisabledCascade(depth int, scope, target string) CascadeVM {
	return CascadeVM{Scope: scope, Depth: depth, Target: target, Disabled: true, DioceseDisabled: true, ParishDisabled: true}
}

// Truncate drops the levels below depth.
func Truncate(sel cascade.Selection, depth int) cascade.Selection {
	if depth < DepthParish {
		sel.ParishID = 0
	}
	if depth < DepthDiocese {
		sel.DioceseID = 0
	}
	return sel
}

// ComputeCascade runs the filter engine over the snapshot.
func ComputeCascade(snap *refdata.Snapshot, sel cascade.Selection, depth int) cascade.Result {
	if snap == nil {
		return cascade.Result{DioceseDisabled: true, ParishDisabled: true}
	}
	return cascade.Compute(snap.States, snap.Dioceses, snap.Parishes, Truncate(sel, depth))
}

// SelectionFromQuery reads state_id, diocese_id and parish_id from the URL.
func SelectionFromQuery(r *http.Request) cascade.Selection {
	return cascade.Selection{
		StateID:   parseID(query.Get(r, "state_id")),
		DioceseID: parseID(query.Get(r, "diocese_id")),
		ParishID:  parseID(query.Get(r, "parish_id")),
	}
}

// SelectionFromForm reads the same fields from a parsed form.
func SelectionFromForm(r *http.Request) cascade.Selection {
	return cascade.Selection{
		StateID:   parseID(r.FormValue("state_id")),
		DioceseID: parseID(r.FormValue("diocese_id")),
		ParishID:  parseID(r.FormValue("parish_id")),
	}
}

// ParseID parses a positive record id; anything else is 0.
func ParseID(s string) int64 { return parseID(s) }

func parseID(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FilterQuery encodes sel for links that must keep the list's filter.
func FilterQuery(sel cascade.Selection) url.Values {
	v := url.Values{}
	if sel.StateID != 0 {
		v.Set("state_id", strconv.FormatInt(sel.StateID, 10))
	}
	if sel.DioceseID != 0 {
		v.Set("diocese_id", strconv.FormatInt(sel.DioceseID, 10))
	}
	if sel.ParishID != 0 {
		v.Set("parish_id", strconv.FormatInt(sel.ParishID, 10))
	}
	return v
}
