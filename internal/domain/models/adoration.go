// internal/domain/models/adoration.go
package models

import "strings"

// Adoration types.
const (
	AdorationRegular   = "Regular"
	AdorationPerpetual = "Perpetual"
)

// AdorationTypes lists the selectable adoration types in display order.
var AdorationTypes = []string{AdorationRegular, AdorationPerpetual}

// AdorationLocationTypes lists the selectable location types.
var AdorationLocationTypes = []string{"Church", "Chapel", "Oratory", "Other"}

// Weekdays lists the selectable adoration days.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Adoration is a scheduled adoration session tied to a state/diocese/parish.
// Day, Start and End only apply to Regular adorations.
type Adoration struct {
	ID           int64  `json:"id"`
	StateID      int64  `json:"state_id"`
	DioceseID    int64  `json:"diocese_id"`
	ParishID     int64  `json:"parish_id"`
	Type         string `json:"adoration_type"`
	LocationType string `json:"location_type"`
	Location     string `json:"location"`
	Day          string `json:"adoration_day,omitempty"`
	Start        string `json:"adoration_start,omitempty"`
	End          string `json:"adoration_end,omitempty"`
}

// IsPerpetual reports whether the adoration runs continuously.
func (a Adoration) IsPerpetual() bool {
	return strings.EqualFold(strings.TrimSpace(a.Type), AdorationPerpetual)
}

// Normalize canonicalises the type and clears the schedule fields of a
// perpetual adoration.
func (a *Adoration) Normalize() {
	switch {
	case a.IsPerpetual():
		a.Type = AdorationPerpetual
		a.Day, a.Start, a.End = "", "", ""
	case strings.EqualFold(strings.TrimSpace(a.Type), AdorationRegular):
		a.Type = AdorationRegular
	}
}
