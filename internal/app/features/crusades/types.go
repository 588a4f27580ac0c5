// internal/app/features/crusades/types.go
package crusades

import (
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/inputval"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

const (
	depth         = shared.DepthParish
	filterTarget  = "crusades-filter"
	cascadeTarget = "crusade-cascade"
)

var columns = []table.Column{
	{Header: "State", Field: "state"},
	{Header: "Diocese", Field: "diocese_link", SortKey: "diocese"},
	{Header: "Parish", Field: "parish_link", SortKey: "parish"},
	{Header: "Confession Start", Field: "confession_start"},
	{Header: "Confession End", Field: "confession_end"},
	{Header: "Mass Start", Field: "mass_start"},
	{Header: "Mass End", Field: "mass_end"},
	{Header: "Crusade Start", Field: "crusade_start"},
	{Header: "Crusade End", Field: "crusade_end"},
	{Header: "Contact", Field: "contact_name"},
	{Header: "Phone", Field: "contact_phone"},
	{Header: "Email", Field: "contact_email"},
	{Header: "Comments", Field: "comments"},
}

type listData struct {
	viewdata.BaseVM

	Filter   shared.CascadeVM
	Table    table.Table
	LoadFail bool
}

type formData struct {
	formutil.Base

	ID              int64
	ConfessionStart string
	ConfessionEnd   string
	MassStart       string
	MassEnd         string
	CrusadeStart    string
	CrusadeEnd      string
	ContactName     string
	ContactPhone    string
	ContactEmail    string
	Comments        string

	Cascade  shared.CascadeVM
	LoadFail bool
}

type crusadeInput struct {
	StateID         int64  `form:"state_id" validate:"gt=0" label:"State"`
	DioceseID       int64  `form:"diocese_id" validate:"gt=0" label:"Diocese"`
	ParishID        int64  `form:"parish_id" validate:"gt=0" label:"Parish"`
	ConfessionStart string `form:"confession_start" validate:"omitempty,hhmm" label:"Confession start"`
	ConfessionEnd   string `form:"confession_end" validate:"omitempty,hhmm" label:"Confession end"`
	MassStart       string `form:"mass_start" validate:"omitempty,hhmm" label:"Mass start"`
	MassEnd         string `form:"mass_end" validate:"omitempty,hhmm" label:"Mass end"`
	CrusadeStart    string `form:"crusade_start" validate:"required,hhmm" label:"Crusade start"`
	CrusadeEnd      string `form:"crusade_end" validate:"omitempty,hhmm" label:"Crusade end"`
	ContactName     string `form:"contact_name" validate:"max=200" label:"Contact name"`
	ContactPhone    string `form:"contact_phone" validate:"max=50" label:"Contact phone"`
	ContactEmail    string `form:"contact_email" validate:"omitempty,email" label:"Contact email"`
	Comments        string `form:"comments" validate:"max=2000" label:"Comments"`
}

func readInput(get func(string) string) crusadeInput {
	return crusadeInput{
		StateID:         shared.ParseID(get("state_id")),
		DioceseID:       shared.ParseID(get("diocese_id")),
		ParishID:        shared.ParseID(get("parish_id")),
		ConfessionStart: strings.TrimSpace(get("confession_start")),
		ConfessionEnd:   strings.TrimSpace(get("confession_end")),
		MassStart:       strings.TrimSpace(get("mass_start")),
		MassEnd:         strings.TrimSpace(get("mass_end")),
		CrusadeStart:    strings.TrimSpace(get("crusade_start")),
		CrusadeEnd:      strings.TrimSpace(get("crusade_end")),
		ContactName:     strings.TrimSpace(get("contact_name")),
		ContactPhone:    strings.TrimSpace(get("contact_phone")),
		ContactEmail:    strings.TrimSpace(get("contact_email")),
		Comments:        strings.TrimSpace(get("comments")),
	}
}

// validate runs the tag rules, then requires each end time that is set to
// follow its start.
func (in crusadeInput) validate() *inputval.Result {
	res := inputval.Validate(in)
	if res.HasErrors() {
		return res
	}
	pairs := []struct{ start, end, field, label string }{
		{in.ConfessionStart, in.ConfessionEnd, "confession_end", "Confession"},
		{in.MassStart, in.MassEnd, "mass_end", "Mass"},
		{in.CrusadeStart, in.CrusadeEnd, "crusade_end", "Crusade"},
	}
	for _, p := range pairs {
		if p.start != "" && p.end != "" && p.end <= p.start {
			res.Errors = append(res.Errors, inputval.FieldError{Field: p.field, Message: p.label + " must end after it starts."})
		}
	}
	return res
}

func (in crusadeInput) selection() cascade.Selection {
	return cascade.Selection{StateID: in.StateID, DioceseID: in.DioceseID, ParishID: in.ParishID}
}

func (in crusadeInput) model(id int64) models.Crusade {
	return models.Crusade{
		ID:              id,
		StateID:         in.StateID,
		DioceseID:       in.DioceseID,
		ParishID:        in.ParishID,
		ConfessionStart: in.ConfessionStart,
		ConfessionEnd:   in.ConfessionEnd,
		MassStart:       in.MassStart,
		MassEnd:         in.MassEnd,
		CrusadeStart:    in.CrusadeStart,
		CrusadeEnd:      in.CrusadeEnd,
		ContactName:     in.ContactName,
		ContactPhone:    in.ContactPhone,
		ContactEmail:    in.ContactEmail,
		Comments:        in.Comments,
	}
}

func formOf(c models.Crusade) formData {
	return formData{
		ID:              c.ID,
		ConfessionStart: c.ConfessionStart,
		ConfessionEnd:   c.ConfessionEnd,
		MassStart:       c.MassStart,
		MassEnd:         c.MassEnd,
		CrusadeStart:    c.CrusadeStart,
		CrusadeEnd:      c.CrusadeEnd,
		ContactName:     c.ContactName,
		ContactPhone:    c.ContactPhone,
		ContactEmail:    c.ContactEmail,
		Comments:        c.Comments,
	}
}

// timeField is one labelled time input of the form.
type timeField struct {
	Label, Name, Value, Error string
}

// TimeFields lists the schedule inputs in display order.
func (f formData) TimeFields() []timeField {
	fields := []timeField{
		{Label: "Confession start", Name: "confession_start", Value: f.ConfessionStart},
		{Label: "Confession end", Name: "confession_end", Value: f.ConfessionEnd},
		{Label: "Mass start", Name: "mass_start", Value: f.MassStart},
		{Label: "Mass end", Name: "mass_end", Value: f.MassEnd},
		{Label: "Crusade start", Name: "crusade_start", Value: f.CrusadeStart},
		{Label: "Crusade end", Name: "crusade_end", Value: f.CrusadeEnd},
	}
	for i := range fields {
		fields[i].Error = f.FieldError(fields[i].Name)
	}
	return fields
}
