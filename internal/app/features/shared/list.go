// internal/app/features/shared/list.go
package shared

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	uierrors "github.com/dalemusser/diocesehub/internal/app/features/errors"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/notify"
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// RestoreParam marks a list request that should re-apply the saved filter.
const RestoreParam = "restore"

// RequestedFilter returns the selection a list request asks for: the saved
// one in restore mode, otherwise the query's.
func (d Deps) RequestedFilter(r *http.Request, list string, depth int) (sel cascade.Selection, restore bool) {
	if query.Get(r, RestoreParam) == "1" && d.Filters != nil {
		saved, _ := d.Filters.Load(r, list)
		return Truncate(saved, depth), true
	}
	return Truncate(SelectionFromQuery(r), depth), false
}

// ResolveFilter validates requested against snap and remembers the result
// as list's saved filter. In restore mode a saved id that vanished falls
// back to "no filter" for that level and below.
func (d Deps) ResolveFilter(w http.ResponseWriter, list string, snap *refdata.Snapshot, requested cascade.Selection, restore bool, depth int) cascade.Result {
	var res cascade.Result
	if restore && snap != nil {
		var intact bool
		res, intact = cascade.Restore(snap.States, snap.Dioceses, snap.Parishes, requested)
		if !intact {
			d.Log.Debug("saved filter partly reset", zap.String("list", list))
		}
	} else {
		res = ComputeCascade(snap, requested, depth)
	}
	if d.Filters != nil {
		if err := d.Filters.Save(w, list, res.Selection); err != nil {
			d.Log.Warn("save list filter", zap.String("list", list), zap.Error(err))
		}
	}
	return res
}

// Loaded is the outcome of LoadList.
type Loaded[T any] struct {
	Snap    *refdata.Snapshot
	Cascade cascade.Result
	Records []T
}

// LoadList fetches the reference snapshot and the page's records
// concurrently and waits for both. fetch is called with the requested
// selection; if the cascade engine corrects it, the records are fetched
// once more with the corrected one. Any failure fails the whole load.
func LoadList[T any](
	ctx context.Context,
	w http.ResponseWriter,
	d Deps,
	list string,
	requested cascade.Selection,
	restore bool,
	depth int,
	fetch func(ctx context.Context, sel cascade.Selection) ([]T, error),
) (Loaded[T], error) {
	var out Loaded[T]
	snap, err := d.Ref.LoadPage(ctx, func(ctx context.Context) error {
		recs, err := fetch(ctx, requested)
		out.Records = recs
		return err
	})
	if err != nil {
		return Loaded[T]{}, err
	}
	out.Snap = snap
	out.Cascade = d.ResolveFilter(w, list, snap, requested, restore, depth)

	if out.Cascade.Selection != requested {
		recs, err := fetch(ctx, out.Cascade.Selection)
		if err != nil {
			return Loaded[T]{}, err
		}
		out.Records = recs
	}
	return out, nil
}

// IsHTMXTarget reports whether r is an HTMX request swapping target.
func IsHTMXTarget(r *http.Request, target string) bool {
	return r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == target
}

// LoadFailed handles a failed page load. Session expiry ends the session
// and done is true; anything else becomes an error notice shown over an
// empty, disabled page.
func (d Deps) LoadFailed(w http.ResponseWriter, r *http.Request, err error, what string) (f Failure, done bool) {
	kind := uierrors.Classify(err)
	if kind == uierrors.KindSession {
		d.EndSession(w, r, "load "+what)
		return Failure{}, true
	}
	d.Log.Error("page load failed", zap.String("page", what), zap.Error(err))
	msg := "Unable to load " + what + "."
	if kind == uierrors.KindForbidden {
		msg = kind.Message()
	}
	return Failure{Level: notify.Error, Message: msg}, false
}

// Table builds a table view model, applying the session's saved column order.
func (d Deps) Table(w http.ResponseWriter, r *http.Request, id, base string, cols []table.Column, rows []table.Row, q url.Values, link func(table.Row) string) table.Table {
	st := table.ParseState(r)
	if d.Sessions != nil {
		st = table.ResolveOrder(w, r, d.Sessions, id, st)
	}
	t := table.Build(id, base, cols, rows, st, q)
	t.Link = link
	return t
}

// EditLink returns a row link builder for base/{id}/edit.
func EditLink(base string) func(table.Row) string {
	return func(row table.Row) string {
		id, ok := row["id"].(int64)
		if !ok || id == 0 {
			return ""
		}
		return base + "/" + strconv.FormatInt(id, 10) + "/edit"
	}
}
