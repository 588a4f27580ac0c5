// internal/app/features/states/types.go
package states

import (
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

var columns = []table.Column{
	{Header: "Name", Field: "name"},
	{Header: "Abbreviation", Field: "abbreviation"},
}

// listData is the view model for the states list page.
type listData struct {
	viewdata.BaseVM

	Table    table.Table
	LoadFail bool
}

// formData is the view model for the new and edit pages.
type formData struct {
	formutil.Base

	ID           int64
	Name         string
	Abbreviation string
}

// stateInput defines validation rules for a state form.
type stateInput struct {
	Name         string `form:"name" validate:"required,max=100" label:"Name"`
	Abbreviation string `form:"abbreviation" validate:"required,stateabbrev" label:"Abbreviation"`
}

func readInput(get func(string) string) stateInput {
	return stateInput{
		Name:         strings.TrimSpace(get("name")),
		Abbreviation: strings.ToUpper(strings.TrimSpace(get("abbreviation"))),
	}
}

func (in stateInput) model(id int64) models.State {
	return models.State{ID: id, Name: in.Name, Abbreviation: in.Abbreviation}
}
