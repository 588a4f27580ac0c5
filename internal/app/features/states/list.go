// internal/app/features/states/list.go
package states

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/app/system/viewmodel"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /states.
// It supports HTMX partial refresh of the table when HX-Target="states-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.buildList(ctx, w, r)
	if !ok {
		return
	}

	if shared.IsHTMXTarget(r, tableID+"-table-wrap") {
		templates.RenderSnippet(w, "states_table", data)
		return
	}
	templates.Render(w, r, "states_list", data)
}

// buildList loads the states and builds the page. ok is false when the
// response has already been written (session ended).
func (h *Handler) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, bool) {
	snap, err := h.Ref.Get(ctx)
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "states"); done {
			return listData{}, false
		}
	}

	var rows []table.Row
	if snap != nil {
		for _, s := range snap.States {
			rows = append(rows, viewmodel.StateCells(s))
		}
	}

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, "States", "/")}
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
	}

	var link func(table.Row) string
	if data.CanManageReference {
		link = shared.EditLink(basePath)
	}
	data.Table = h.Table(w, r, tableID, basePath, columns, rows, nil, link)
	return data, true
}
