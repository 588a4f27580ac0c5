// internal/app/features/users/types.go
package users

import (
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/formutil"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/app/system/viewdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

var columns = []table.Column{
	{Header: "Name", Field: "full_name"},
	{Header: "Email", Field: "email"},
	{Header: "Roles", Field: "roles"},
	{Header: "Enabled", Field: "enabled"},
}

type listData struct {
	viewdata.BaseVM

	Query    string
	Table    table.Table
	LoadFail bool
}

type formData struct {
	formutil.Base

	ID       int64
	FullName string
	Email    string
	Roles    []models.Role
	Enabled  bool
	IsSelf   bool

	AllRoles []models.Role
}

// HasRole reports whether role is checked.
func (f formData) HasRole(role models.Role) bool {
	return models.User{Roles: f.Roles}.HasRole(role)
}

// userInput is shared by create and edit; the password is required only
// on create (see validate).
type userInput struct {
	FullName string        `form:"full_name" validate:"required,max=200" label:"Full name"`
	Email    string        `form:"email" validate:"required,email" label:"Email"`
	Roles    []models.Role `form:"roles" validate:"min=1" label:"Roles"`
	Enabled  bool          `form:"enabled"`
	Password string        `form:"password" validate:"omitempty,min=8,max=128" label:"Password"`
}

func readInput(get func(string) string, roles []string) userInput {
	in := userInput{
		FullName: strings.TrimSpace(get("full_name")),
		Email:    strings.ToLower(strings.TrimSpace(get("email"))),
		Enabled:  get("enabled") != "",
		Password: get("password"),
	}
	for _, s := range roles {
		role, ok := models.ParseRole(s)
		if ok && !(models.User{Roles: in.Roles}).HasRole(role) {
			in.Roles = append(in.Roles, role)
		}
	}
	return in
}

func (in userInput) model(id int64) models.User {
	return models.User{
		ID:       id,
		FullName: in.FullName,
		Email:    in.Email,
		Roles:    in.Roles,
		Enabled:  in.Enabled,
		Password: in.Password,
	}
}

func formOf(u models.User) formData {
	return formData{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    u.Roles,
		Enabled:  u.Enabled,
		AllRoles: models.AllRoles,
	}
}

// matches reports whether u's name or email contains q, ignoring case and
// accents.
func matches(u models.User, q string) bool {
	if q == "" {
		return true
	}
	q = text.Fold(q)
	return strings.Contains(text.Fold(u.FullName), q) || strings.Contains(text.Fold(u.Email), q)
}
