// internal/app/features/parishes/list.go
package parishes

import (
	"context"
	"net/http"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/app/system/viewmodel"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /parishes?state_id=&diocese_id=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.buildList(ctx, w, r)
	if !ok {
		return
	}
	if shared.IsHTMXTarget(r, tableID+"-table-wrap") {
		templates.RenderSnippet(w, "parishes_table", data)
		return
	}
	templates.Render(w, r, "parishes_list", data)
}

func (h *Handler) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, bool) {
	requested, restore := h.RequestedFilter(r, tableID, depth)

	loaded, err := shared.LoadList(ctx, w, h.Deps, tableID, requested, restore, depth,
		func(ctx context.Context, sel cascade.Selection) ([]models.Parish, error) {
			return h.API.Parishes.Search(ctx, backend.Filter{StateID: sel.StateID, DioceseID: sel.DioceseID})
		})
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "parishes"); done {
			return listData{}, false
		}
	}

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, "Parishes", "/")}
	var rows []table.Row
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
		data.Filter = shared.DisabledCascade(depth, shared.ScopeFilter, filterTarget)
	} else {
		lookup := viewmodel.NewLookup(loaded.Snap)
		rows = viewmodel.Cells(lookup.ParishRows(loaded.Records))
		data.Filter = shared.NewCascade(loaded.Snap, loaded.Cascade, depth, shared.ScopeFilter, filterTarget)
	}

	var link func(table.Row) string
	if data.CanManageReference {
		link = shared.EditLink(basePath)
	}
	data.Table = h.Table(w, r, tableID, basePath, columns, rows, shared.FilterQuery(loaded.Cascade.Selection), link)
	return data, true
}
