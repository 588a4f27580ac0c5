// Package cascade serves the HTMX endpoint that re-renders the dependent
// state, diocese and parish selects of an edit form.
package cascade

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// targetPattern limits the swap target to a plain DOM id.
var targetPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// Handler serves /cascade.
type Handler struct {
	shared.Deps
}

// NewHandler constructs a cascade handler.
func NewHandler(deps shared.Deps) *Handler {
	return &Handler{Deps: deps.Named("cascade")}
}

// ServeOptions handles GET /cascade/options.
//
// The selects post their current values along with scope, depth and target.
// A diocese that no longer belongs to the chosen state is cleared, and the
// parish with it.
func (h *Handler) ServeOptions(w http.ResponseWriter, r *http.Request) {
	vm, ok := h.build(w, r)
	if !ok {
		return
	}
	templates.RenderSnippet(w, "cascade_selects", vm)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) (shared.CascadeVM, bool) {
	target := query.Get(r, "target")
	if !targetPattern.MatchString(target) {
		http.Error(w, "bad target", http.StatusBadRequest)
		return shared.CascadeVM{}, false
	}
	depth, err := strconv.Atoi(query.Get(r, "depth"))
	if err != nil || depth < shared.DepthState || depth > shared.DepthParish {
		depth = shared.DepthParish
	}
	scope := query.Get(r, "scope")
	if scope != shared.ScopeFilter {
		scope = shared.ScopeForm
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	snap, err := h.Ref.Get(ctx)
	if err != nil {
		f, done := h.LoadFailed(w, r, err, "reference data")
		if done {
			return shared.CascadeVM{}, false
		}
		vm := shared.DisabledCascade(depth, scope, target)
		vm.Notice = &notify.Message{Level: f.Level, Text: f.Message}
		return vm, true
	}
	sel := shared.SelectionFromQuery(r)
	return shared.NewCascade(snap, shared.ComputeCascade(snap, sel, depth), depth, scope, target), true
}
