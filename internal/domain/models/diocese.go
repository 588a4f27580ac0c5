// internal/domain/models/diocese.go
package models

import "strings"

// Diocese is an administrative religious region. A diocese can span several
// states; the association is carried as a list of state abbreviations rather
// than state IDs, so joins against State must go through State.Abbreviation.
type Diocese struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	PostCode string `json:"post_code"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Website  string `json:"website"`

	AssociatedStateAbbreviations []string `json:"associated_state_abbreviations"`
}

// InState reports whether the diocese lists abbrev among its associated
// states. Comparison ignores case and surrounding whitespace.
func (d Diocese) InState(abbrev string) bool {
	abbrev = strings.TrimSpace(abbrev)
	if abbrev == "" {
		return false
	}
	for _, a := range d.AssociatedStateAbbreviations {
		if strings.EqualFold(strings.TrimSpace(a), abbrev) {
			return true
		}
	}
	return false
}
