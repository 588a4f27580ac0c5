// internal/app/features/dioceses/list.go
package dioceses

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/app/system/viewmodel"
	"github.com/dalemusser/waffle/pantry/templates"
)

const filterTarget = "dioceses-filter"

// ServeList handles GET /dioceses, optionally filtered by ?state_id=.
// HTMX requests targeting the table wrapper get the table only.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.buildList(ctx, w, r)
	if !ok {
		return
	}
	if shared.IsHTMXTarget(r, tableID+"-table-wrap") {
		templates.RenderSnippet(w, "dioceses_table", data)
		return
	}
	templates.Render(w, r, "dioceses_list", data)
}

func (h *Handler) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, bool) {
	requested, restore := h.RequestedFilter(r, tableID, shared.DepthState)

	snap, err := h.Ref.Get(ctx)
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "dioceses"); done {
			return listData{}, false
		}
	}

	var (
		res  cascade.Result
		rows []table.Row
	)
	if snap != nil {
		res = h.ResolveFilter(w, tableID, snap, requested, restore, shared.DepthState)
		shown := snap.Dioceses
		if res.State != nil {
			shown = res.Dioceses
		}
		rows = viewmodel.Cells(viewmodel.DioceseRows(shown))
	}

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, "Dioceses", "/")}
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
		data.Filter = shared.DisabledCascade(shared.DepthState, shared.ScopeFilter, filterTarget)
	} else {
		data.Filter = shared.NewCascade(snap, res, shared.DepthState, shared.ScopeFilter, filterTarget)
	}

	var link func(table.Row) string
	if data.CanManageReference {
		link = shared.EditLink(basePath)
	}
	data.Table = h.Table(w, r, tableID, basePath, columns, rows, shared.FilterQuery(res.Selection), link)
	return data, true
}
