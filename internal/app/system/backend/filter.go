// internal/app/system/backend/filter.go
package backend

import (
	"net/url"
	"strconv"
)

// Filter narrows search endpoints by the state/diocese/parish triple.
// Zero fields are omitted from the query.
type Filter struct {
	StateID   int64
	DioceseID int64
	ParishID  int64
}

// IsZero reports whether no field is set.
func (f Filter) IsZero() bool {
	return f.StateID == 0 && f.DioceseID == 0 && f.ParishID == 0
}

// Values encodes the filter as state_id, diocese_id and parish_id.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.StateID != 0 {
		v.Set("state_id", strconv.FormatInt(f.StateID, 10))
	}
	if f.DioceseID != 0 {
		v.Set("diocese_id", strconv.FormatInt(f.DioceseID, 10))
	}
	if f.ParishID != 0 {
		v.Set("parish_id", strconv.FormatInt(f.ParishID, 10))
	}
	return v
}
