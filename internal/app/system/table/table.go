// Package table is a generic, server-side table presenter: one active sort
// column, page slicing, session-scoped column order, and safe cell
// rendering for arbitrary rows.
package table

import (
	"fmt"
	"html/template"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/paging"
)

// Column describes one displayed column. Field is the row key rendered in
// the cell; SortKey, when set, is the row key used for ordering (e.g. a
// hyperlink column sorting by its plain-text name).
type Column struct {
	Header  string
	Field   string
	SortKey string
}

func (c Column) sortKey() string {
	if c.SortKey != "" {
		return c.SortKey
	}
	return c.Field
}

// Row is one record keyed by field name.
type Row map[string]any

// Table is the view model handed to the table templates.
type Table struct {
	ID      string // DOM id and session key, e.g. "parishes"
	Columns []Column
	Rows    []Row // rows of the current page only
	Page    paging.Page
	Sizes   []int

	Sort string
	Dir  Dir

	// Base is the list URL path; Query carries the page's other parameters
	// (filters) so generated links preserve them.
	Base  string
	Query url.Values

	// Link returns the edit URL for a row. Nil means rows are not clickable.
	Link func(Row) string
}

// Build sorts all rows by st, reorders columns by st.Order and slices out
// the requested page. rows is sorted in place.
func Build(id, base string, cols []Column, rows []Row, st State, query url.Values) Table {
	ordered := Reorder(cols, st.Order)

	sortCol, ok := findColumn(cols, st.Sort)
	if ok {
		SortRows(rows, sortCol.sortKey(), st.Dir)
	} else {
		st.Sort, st.Dir = "", ""
	}

	p := paging.Compute(st.Page, st.Size, len(rows))
	q := url.Values{}
	for k, v := range query {
		q[k] = slices.Clone(v)
	}

	return Table{
		ID:      id,
		Columns: ordered,
		Rows:    paging.Slice(rows, p),
		Page:    p,
		Sizes:   paging.PageSizes,
		Sort:    st.Sort,
		Dir:     st.Dir,
		Base:    base,
		Query:   q,
	}
}

func findColumn(cols []Column, field string) (Column, bool) {
	if field == "" {
		return Column{}, false
	}
	for _, c := range cols {
		if c.Field == field {
			return c, true
		}
	}
	return Column{}, false
}

// Empty reports whether the table has no rows at all.
func (t Table) Empty() bool { return t.Page.Count == 0 }

// Cell renders the value of field in row. Missing and nil values render as
// an empty string; template.HTML values (pre-sanitised links) pass through;
// everything else is HTML-escaped.
func (t Table) Cell(row Row, field string) template.HTML {
	return Cell(row, field)
}

// Cell is the package-level form of Table.Cell.
func Cell(row Row, field string) template.HTML {
	v, ok := row[field]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case template.HTML:
		return x
	case string:
		return template.HTML(template.HTMLEscapeString(x))
	case fmt.Stringer:
		return template.HTML(template.HTMLEscapeString(x.String()))
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	default:
		return template.HTML(template.HTMLEscapeString(fmt.Sprint(x)))
	}
}

// RowURL returns the edit URL for row, or "" if rows are not clickable.
func (t Table) RowURL(row Row) string {
	if t.Link == nil {
		return ""
	}
	return t.Link(row)
}

// SortIndicator returns "▲"/"▼" for the active column, "" otherwise.
func (t Table) SortIndicator(field string) string {
	if t.Sort != field {
		return ""
	}
	if t.Dir == Desc {
		return "▼"
	}
	return "▲"
}

// SortURL links a header: clicking the active column toggles direction,
// clicking another column sorts it ascending. Sorting returns to page 1.
func (t Table) SortURL(field string) string {
	dir := Asc
	if t.Sort == field {
		dir = t.Dir.Toggle()
	}
	return t.url(map[string]string{"sort": field, "dir": string(dir), "page": "1"})
}

// PageURL links to page n.
func (t Table) PageURL(n int) string {
	return t.url(map[string]string{"page": strconv.Itoa(n)})
}

// PrevURL links to the previous page.
func (t Table) PrevURL() string { return t.PageURL(t.Page.Number - 1) }

// NextURL links to the next page.
func (t Table) NextURL() string { return t.PageURL(t.Page.Number + 1) }

// SizeURL links to page size n, back on page 1.
func (t Table) SizeURL(n int) string {
	return t.url(map[string]string{"size": strconv.Itoa(n), "page": "1"})
}

// MoveURL links to the column order with field moved by delta positions
// (-1 left, +1 right). Moves past either end are clamped.
func (t Table) MoveURL(field string, delta int) string {
	order := make([]string, len(t.Columns))
	idx := -1
	for i, c := range t.Columns {
		order[i] = c.Field
		if c.Field == field {
			idx = i
		}
	}
	if idx >= 0 {
		to := min(max(idx+delta, 0), len(order)-1)
		f := order[idx]
		order = slices.Delete(order, idx, idx+1)
		order = slices.Insert(order, to, f)
	}
	return t.url(map[string]string{"cols": strings.Join(order, ",")})
}

func (t Table) url(set map[string]string) string {
	q := url.Values{}
	for k, v := range t.Query {
		q[k] = slices.Clone(v)
	}
	if t.Sort != "" {
		q.Set("sort", t.Sort)
		q.Set("dir", string(t.Dir))
	}
	q.Set("page", strconv.Itoa(t.Page.Number))
	q.Set("size", strconv.Itoa(t.Page.Size))
	for k, v := range set {
		q.Set(k, v)
	}
	return t.Base + "?" + q.Encode()
}
