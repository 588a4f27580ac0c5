// internal/app/features/adorations/types.go
package adorations

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
	filterTarget  = "adorations-filter"
	cascadeTarget = "adoration-cascade"
)

var columns = []table.Column{
	{Header: "State", Field: "state"},
	{Header: "Diocese", Field: "diocese_link", SortKey: "diocese"},
	{Header: "Parish", Field: "parish_link", SortKey: "parish"},
	{Header: "Type", Field: "adoration_type"},
	{Header: "Location", Field: "adoration_location"},
	{Header: "Location Type", Field: "location_type"},
	{Header: "Day", Field: "adoration_day"},
	{Header: "Start", Field: "adoration_start"},
	{Header: "End", Field: "adoration_end"},
}

type listData struct {
	viewdata.BaseVM

	Filter   shared.CascadeVM
	Table    table.Table
	LoadFail bool
}

type formData struct {
	formutil.Base

	ID           int64
	Type         string
	LocationType string
	Location     string
	Day          string
	Start        string
	End          string

	Types         []string
	LocationTypes []string
	Weekdays      []string

	Cascade  shared.CascadeVM
	LoadFail bool
}

// IsPerpetual reports whether the form's schedule fields are hidden.
func (f formData) IsPerpetual() bool {
	return models.Adoration{Type: f.Type}.IsPerpetual()
}

// adorationInput carries the schedule rules: a Regular adoration needs a
// day and a start and end time; a Perpetual one has none.
type adorationInput struct {
	StateID      int64  `form:"state_id" validate:"gt=0" label:"State"`
	DioceseID    int64  `form:"diocese_id" validate:"gt=0" label:"Diocese"`
	ParishID     int64  `form:"parish_id" validate:"gt=0" label:"Parish"`
	Type         string `form:"adoration_type" validate:"required,oneof=Regular Perpetual" label:"Adoration type"`
	LocationType string `form:"location_type" validate:"required,oneof=Church Chapel Oratory Other" label:"Location type"`
	Location     string `form:"adoration_location" validate:"required,max=200" label:"Location"`
	Day          string `form:"adoration_day" validate:"required_if=Type Regular,omitempty,weekday" label:"Day"`
	Start        string `form:"adoration_start" validate:"required_if=Type Regular,omitempty,hhmm" label:"Start time"`
	End          string `form:"adoration_end" validate:"required_if=Type Regular,omitempty,hhmm" label:"End time"`
}

// readInput reads and normalises the form; a Perpetual type drops any
// day and times the browser still sent.
func readInput(get func(string) string) adorationInput {
	a := models.Adoration{
		Type:         strings.TrimSpace(get("adoration_type")),
		LocationType: strings.TrimSpace(get("location_type")),
		Location:     strings.TrimSpace(get("adoration_location")),
		Day:          strings.TrimSpace(get("adoration_day")),
		Start:        strings.TrimSpace(get("adoration_start")),
		End:          strings.TrimSpace(get("adoration_end")),
	}
	a.Normalize()
	return adorationInput{
		StateID:      shared.ParseID(get("state_id")),
		DioceseID:    shared.ParseID(get("diocese_id")),
		ParishID:     shared.ParseID(get("parish_id")),
		Type:         a.Type,
		LocationType: a.LocationType,
		Location:     a.Location,
		Day:          a.Day,
		Start:        a.Start,
		End:          a.End,
	}
}

// validate runs the tag rules plus the ordering of start and end.
func (in adorationInput) validate() *inputval.Result {
	res := inputval.Validate(in)
	if res.HasErrors() || in.Type != models.AdorationRegular {
		return res
	}
	if in.End <= in.Start {
		res.Errors = append(res.Errors, inputval.FieldError{Field: "adoration_end", Message: "End time must be after start time."})
	}
	return res
}

func (in adorationInput) selection() cascade.Selection {
	return cascade.Selection{StateID: in.StateID, DioceseID: in.DioceseID, ParishID: in.ParishID}
}

func (in adorationInput) model(id int64) models.Adoration {
	a := models.Adoration{
		ID:           id,
		StateID:      in.StateID,
		DioceseID:    in.DioceseID,
		ParishID:     in.ParishID,
		Type:         in.Type,
		LocationType: in.LocationType,
		Location:     in.Location,
		Day:          in.Day,
		Start:        in.Start,
		End:          in.End,
	}
	a.Normalize()
	return a
}

func formOf(a models.Adoration) formData {
	return formData{
		ID:            a.ID,
		Type:          a.Type,
		LocationType:  a.LocationType,
		Location:      a.Location,
		Day:           a.Day,
		Start:         a.Start,
		End:           a.End,
		Types:         models.AdorationTypes,
		LocationTypes: models.AdorationLocationTypes,
		Weekdays:      models.Weekdays,
	}
}
