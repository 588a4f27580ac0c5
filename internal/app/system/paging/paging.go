// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged tables.
const PageSize = 10

// PageSizes is the fixed set of sizes a user may pick from.
var PageSizes = []int{5, 10, 25, 50, 100}

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParseSize extracts the "size" query parameter. Values outside PageSizes
// fall back to PageSize.
func ParseSize(r *http.Request) int {
	return NormalizeSize(query.Get(r, "size"))
}

// NormalizeSize parses s and returns it if it is one of PageSizes,
// otherwise PageSize.
func NormalizeSize(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || !slices.Contains(PageSizes, n) {
		return PageSize
	}
	return n
}

// TotalPages is ceil(count/size), never less than 1 so an empty table
// still has a page to show.
func TotalPages(count, size int) int {
	if size < 1 {
		size = PageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Page describes one page of a client-sorted result set.
type Page struct {
	Number     int // 1-based, clamped to [1, TotalPages]
	Size       int
	TotalPages int
	Count      int

	Offset int // index of the first row on the page
	Limit  int // index one past the last row on the page

	HasPrev bool
	HasNext bool

	RangeStart int // 1-based index of first row shown (0 when empty)
	RangeEnd   int // 1-based index of last row shown (0 when empty)
}

// Compute clamps page into range and computes slice bounds for count rows.
func Compute(page, size, count int) Page {
	if size < 1 {
		size = PageSize
	}
	if count < 0 {
		count = 0
	}
	total := TotalPages(count, size)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	off := (page - 1) * size
	lim := min(off+size, count)

	p := Page{
		Number:     page,
		Size:       size,
		TotalPages: total,
		Count:      count,
		Offset:     off,
		Limit:      lim,
		HasPrev:    page > 1,
		HasNext:    page < total,
	}
	if lim > off {
		p.RangeStart = off + 1
		p.RangeEnd = lim
	}
	return p
}

// Slice returns the rows of p. The returned slice aliases rows.
func Slice[T any](rows []T, p Page) []T {
	if p.Offset >= len(rows) {
		return rows[:0]
	}
	return rows[p.Offset:min(p.Limit, len(rows))]
}

// Numbers returns the page numbers to show in a pager: up to window pages
// centred on the current one.
func (p Page) Numbers(window int) []int {
	if window < 1 {
		window = 1
	}
	start := max(p.Number-window/2, 1)
	end := min(start+window-1, p.TotalPages)
	start = max(end-window+1, 1)
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
