// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/app/system/viewmodel"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /users?q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, ok := h.buildList(ctx, w, r)
	if !ok {
		return
	}
	if shared.IsHTMXTarget(r, tableID+"-table-wrap") {
		templates.RenderSnippet(w, "users_table", data)
		return
	}
	templates.Render(w, r, "users_list", data)
}

func (h *Handler) buildList(ctx context.Context, w http.ResponseWriter, r *http.Request) (listData, bool) {
	q := strings.TrimSpace(query.Get(r, "q"))

	users, err := h.API.Users.List(ctx)
	var fail shared.Failure
	if err != nil {
		var done bool
		if fail, done = h.LoadFailed(w, r, err, "users"); done {
			return listData{}, false
		}
	}

	var rows []table.Row
	for _, u := range users {
		if matches(u, q) {
			rows = append(rows, viewmodel.UserCells(u))
		}
	}

	data := listData{BaseVM: viewdata.NewBaseVM(w, r, "Users", "/"), Query: q}
	if err != nil {
		data.Notify(fail.Level, fail.Message)
		data.LoadFail = true
	}

	var extra url.Values
	if q != "" {
		extra = url.Values{"q": {q}}
	}
	data.Table = h.Table(w, r, tableID, basePath, columns, rows, extra, shared.EditLink(basePath))
	return data, true
}
