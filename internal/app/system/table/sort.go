// internal/app/system/table/sort.go
package table

import (
	"cmp"
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
)

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// ParseDir maps anything other than "desc" to Asc.
func ParseDir(s string) Dir {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Toggle flips the direction.
func (d Dir) Toggle() Dir {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortRows stably orders rows by field. Strings compare case-insensitively,
// numbers numerically, times chronologically; missing values sort first in
// ascending order. Equal keys keep their input order in both directions.
func SortRows(rows []Row, field string, dir Dir) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := compareValues(a[field], b[field])
		if dir == Desc {
			return -c
		}
		return c
	})
}

func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(text.Fold(toString(a)), text.Fold(toString(b)))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case template.HTML:
		return string(x)
	case interface{ String() string }:
		return x.String()
	}
	return string(Cell(Row{"v": v}, "v"))
}
