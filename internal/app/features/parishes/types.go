// internal/app/features/parishes/types.go
package parishes

import (
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/features/shared"
	"github.com/dalemusser/diocesehub/internal/app/system/cascade"
	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

const (
	depth         = shared.DepthDiocese
	filterTarget  = "parishes-filter"
	cascadeTarget = "parish-cascade"
)

var columns = []table.Column{
	{Header: "Name", Field: "name"},
	{Header: "State", Field: "state"},
	{Header: "Diocese", Field: "diocese_link", SortKey: "diocese"},
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

	Cascade  shared.CascadeVM
	LoadFail bool
}

type parishInput struct {
	StateID   int64  `form:"state_id" validate:"gt=0" label:"State"`
	DioceseID int64  `form:"diocese_id" validate:"gt=0" label:"Diocese"`
	Name      string `form:"name" validate:"required,max=200" label:"Name"`
	Address   string `form:"address" validate:"max=300" label:"Address"`
	City      string `form:"city" validate:"max=100" label:"City"`
	PostCode  string `form:"post_code" validate:"max=20" label:"Post code"`
	Phone     string `form:"phone" validate:"max=50" label:"Phone"`
	Email     string `form:"email" validate:"omitempty,email" label:"Email"`
	Website   string `form:"website" validate:"omitempty,website" label:"Website"`
}

func readInput(get func(string) string) parishInput {
	return parishInput{
		StateID:   shared.ParseID(get("state_id")),
		DioceseID: shared.ParseID(get("diocese_id")),
		Name:      strings.TrimSpace(get("name")),
		Address:   strings.TrimSpace(get("address")),
		City:      strings.TrimSpace(get("city")),
		PostCode:  strings.TrimSpace(get("post_code")),
		Phone:     strings.TrimSpace(get("phone")),
		Email:     strings.TrimSpace(get("email")),
		Website:   strings.TrimSpace(get("website")),
	}
}

func (in parishInput) selection() cascade.Selection {
	return cascade.Selection{StateID: in.StateID, DioceseID: in.DioceseID}
}

func (in parishInput) model(id int64) models.Parish {
	return models.Parish{
		ID:        id,
		StateID:   in.StateID,
		DioceseID: in.DioceseID,
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		PostCode:  in.PostCode,
		Phone:     in.Phone,
		Email:     in.Email,
		Website:   in.Website,
	}
}

func formOf(p models.Parish) formData {
	return formData{
		ID:       p.ID,
		Name:     p.Name,
		Address:  p.Address,
		City:     p.City,
		PostCode: p.PostCode,
		Phone:    p.Phone,
		Email:    p.Email,
		Website:  p.Website,
	}
}
