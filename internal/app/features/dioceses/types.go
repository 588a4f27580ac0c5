// internal/app/features/dioceses/types.go
package dioceses

import (
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

var columns = []table.Column{
	{Header: "Name", Field: "name"},
	{Header: "States", Field: "states"},
	{Header: "Address", Field: "address"},
	{Header: "City", Field: "city"},
	{Header: "Post Code", Field: "post_code"},
	{Header: "Phone", Field: "phone"},
	{Header: "Email", Field: "email"},
	{Header: "Website", Field: "website_link", SortKey: "website"},
}

type listData struct {
	viewdata.BaseVM

	Filter   shared.CascadeVM
	Table    table.Table
	LoadFail bool
}

type formData struct {
	formutil.Base

	ID       int64
	Name     string
	Address  string
	City     string
	PostCode string
	Phone    string
	Email    string
	Website  string

	// StateOptions are the states offered; Selected the chosen abbreviations.
	StateOptions []models.State
	Selected     []string
	LoadFail     bool
}

// HasState reports whether abbrev is among the selected states.
func (f formData) HasState(abbrev string) bool {
	for _, s := range f.Selected {
		if strings.EqualFold(s, abbrev) {
			return true
		}
	}
	return false
}

type dioceseInput struct {
	Name     string   `form:"name" validate:"required,max=200" label:"Name"`
	Address  string   `form:"address" validate:"max=300" label:"Address"`
	City     string   `form:"city" validate:"max=100" label:"City"`
	PostCode string   `form:"post_code" validate:"max=20" label:"Post code"`
	Phone    string   `form:"phone" validate:"max=50" label:"Phone"`
	Email    string   `form:"email" validate:"omitempty,email" label:"Email"`
	Website  string   `form:"website" validate:"omitempty,website" label:"Website"`
	States   []string `form:"states" validate:"min=1,dive,stateabbrev" label:"States"`
}

// readInput reads a parsed form. The state checkboxes arrive as repeated
// "states" values.
func readInput(get func(string) string, states []string) dioceseInput {
	in := dioceseInput{
		Name:     strings.TrimSpace(get("name")),
		Address:  strings.TrimSpace(get("address")),
		City:     strings.TrimSpace(get("city")),
		PostCode: strings.TrimSpace(get("post_code")),
		Phone:    strings.TrimSpace(get("phone")),
		Email:    strings.TrimSpace(get("email")),
		Website:  strings.TrimSpace(get("website")),
	}
	seen := map[string]bool{}
	for _, s := range states {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		in.States = append(in.States, s)
	}
	return in
}

func (in dioceseInput) model(id int64) models.Diocese {
	return models.Diocese{
		ID:                           id,
		Name:                         in.Name,
		Address:                      in.Address,
		City:                         in.City,
		PostCode:                     in.PostCode,
		Phone:                        in.Phone,
		Email:                        in.Email,
		Website:                      in.Website,
		AssociatedStateAbbreviations: in.States,
	}
}

func (in dioceseInput) form(id int64) formData {
	return formData{
		ID:       id,
		Name:     in.Name,
		Address:  in.Address,
		City:     in.City,
		PostCode: in.PostCode,
		Phone:    in.Phone,
		Email:    in.Email,
		Website:  in.Website,
		Selected: in.States,
	}
}

func formOf(d models.Diocese) formData {
	return formData{
		ID:       d.ID,
		Name:     d.Name,
		Address:  d.Address,
		City:     d.City,
		PostCode: d.PostCode,
		Phone:    d.Phone,
		Email:    d.Email,
		Website:  d.Website,
		Selected: d.AssociatedStateAbbreviations,
	}
}
