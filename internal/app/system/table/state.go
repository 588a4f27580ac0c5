// internal/app/system/table/state.go
package table

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
)

// State is the user's current view of a table.
type State struct {
	Sort  string
	Dir   Dir
	Page  int
	Size  int
	Order []string // column fields in display order; nil = default
}

// ParseState reads sort, dir, page, size and cols from the query string.
func ParseState(r *http.Request) State {
	return State{
		Sort:  strings.TrimSpace(query.Get(r, "sort")),
		Dir:   ParseDir(query.Get(r, "dir")),
		Page:  paging.ParsePage(r),
		Size:  paging.ParseSize(r),
		Order: ParseOrder(query.Get(r, "cols")),
	}
}

// ParseOrder splits a comma-separated column list, dropping blanks and
// duplicates.
func ParseOrder(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Reorder returns cols arranged by order. Unknown fields in order are
// ignored; columns order does not mention keep their default relative order
// and follow the ordered ones.
func Reorder(cols []Column, order []string) []Column {
	if len(order) == 0 {
		return slices.Clone(cols)
	}
	out := make([]Column, 0, len(cols))
	used := make(map[string]bool, len(cols))
	for _, f := range order {
		if c, ok := findColumn(cols, f); ok && !used[f] {
			out = append(out, c)
			used[f] = true
		}
	}
	for _, c := range cols {
		if !used[c.Field] {
			out = append(out, c)
		}
	}
	return out
}

// OrderStore remembers a table's column order for the browser session.
type OrderStore interface {
	ColumnOrder(r *http.Request, table string) []string
	SetColumnOrder(w http.ResponseWriter, r *http.Request, table string, order []string) error
}

// ResolveOrder applies session persistence to st.Order: an explicit cols
// parameter is saved, otherwise the saved order (if any) is used.
func ResolveOrder(w http.ResponseWriter, r *http.Request, store OrderStore, table string, st State) State {
	if store == nil {
		return st
	}
	if len(st.Order) > 0 {
		_ = store.SetColumnOrder(w, r, table, st.Order)
		return st
	}
	st.Order = store.ColumnOrder(r, table)
	return st
}
