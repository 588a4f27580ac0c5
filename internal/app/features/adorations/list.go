// internal/app/features/adorations/list.go
package adorations

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

// ServeList handles GET /adorations?state_id=&diocese_id=&parish_id=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.buildList(ctx, w, r)
	if !ok {
		return
	}
	if shared.IsHTMXTarget(r, tableID+"-table-wrap") {
		templates.RenderSnippet(w, "adorations_table", data)
		return
	}
	templates.Render(w, r, "adorations_list", data)
}

func (h *Handler) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, bool) {
	requested, restore := h.RequestedFilter(r, tableID, depth)

	loaded, err := shared.LoadList(ctx, w, h.Deps, tableID, requested, restore, depth,
		func(ctx context.Context, sel cascade.Selection) ([]models.Adoration, error) {
			return h.API.Adorations.Search(ctx, backend.Filter{StateID: sel.StateID, DioceseID: sel.DioceseID, ParishID: sel.ParishID})
		})
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "adorations"); done {
			return listData{}, false
		}
	}

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, "Adorations", "/")}
	var rows []table.Row
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
		data.Filter = shared.DisabledCascade(depth, shared.ScopeFilter, filterTarget)
	} else {
		lookup := viewmodel.NewLookup(loaded.Snap)
		rows = viewmodel.Cells(lookup.Adorations(loaded.Records))
		data.Filter = shared.NewCascade(loaded.Snap, loaded.Cascade, depth, shared.ScopeFilter, filterTarget)
	}

	var link func(table.Row) string
	if data.CanManageSchedules {
		link = shared.EditLink(basePath)
	}
	data.Table = h.Table(w, r, tableID, basePath, columns, rows, shared.FilterQuery(loaded.Cascade.Selection), link)
	return data, true
}
