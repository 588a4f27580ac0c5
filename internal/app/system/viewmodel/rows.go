package viewmodel

import (
	"html/template"
	"strings"

	"github.com/dalemusser/diocesehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

// AdorationRow is an adoration with its resolved names.
type AdorationRow struct {
	models.Adoration
	StateAbbreviation string
	DioceseName       string
	ParishName        string
	DioceseLink       template.HTML
	ParishLink        template.HTML
}

// Adoration derives the display row for a.
func (l Lookup) Adoration(a models.Adoration) AdorationRow {
	d, _ := l.Diocese(a.DioceseID)
	p, _ := l.Parish(a.ParishID)
	return AdorationRow{
		Adoration:         a,
		StateAbbreviation: l.StateAbbreviation(a.StateID),
		DioceseName:       d.Name,
		ParishName:        p.Name,
		DioceseLink:       htmlsanitize.Link(d.Name, d.Website),
		ParishLink:        htmlsanitize.Link(p.Name, p.Website),
	}
}

// Adorations maps a list, preserving order and length.
func (l Lookup) Adorations(in []models.Adoration) []AdorationRow {
	out := make([]AdorationRow, len(in))
	for i, a := range in {
		out[i] = l.Adoration(a)
	}
	return out
}

func (r AdorationRow) Cells() table.Row {
	return table.Row{
		"id":                 r.ID,
		"state":              r.StateAbbreviation,
		"diocese":            r.DioceseName,
		"diocese_link":       r.DioceseLink,
		"parish":             r.ParishName,
		"parish_link":        r.ParishLink,
		"adoration_type":     r.Type,
		"adoration_location": r.Location,
		"location_type":      r.LocationType,
		"adoration_day":      r.Day,
		"adoration_start":    r.Start,
		"adoration_end":      r.End,
	}
}

// CrusadeRow is a crusade with its resolved names.
type CrusadeRow struct {
	models.Crusade
	StateAbbreviation string
	DioceseName       string
	ParishName        string
	DioceseLink       template.HTML
	ParishLink        template.HTML
}

func (l Lookup) Crusade(c models.Crusade) CrusadeRow {
	d, _ := l.Diocese(c.DioceseID)
	p, _ := l.Parish(c.ParishID)
	return CrusadeRow{
		Crusade:           c,
		StateAbbreviation: l.StateAbbreviation(c.StateID),
		DioceseName:       d.Name,
		ParishName:        p.Name,
		DioceseLink:       htmlsanitize.Link(d.Name, d.Website),
		ParishLink:        htmlsanitize.Link(p.Name, p.Website),
	}
}

func (l Lookup) Crusades(in []models.Crusade) []CrusadeRow {
	out := make([]CrusadeRow, len(in))
	for i, c := range in {
		out[i] = l.Crusade(c)
	}
	return out
}

func (r CrusadeRow) Cells() table.Row {
	return table.Row{
		"id":               r.ID,
		"state":            r.StateAbbreviation,
		"diocese":          r.DioceseName,
		"diocese_link":     r.DioceseLink,
		"parish":           r.ParishName,
		"parish_link":      r.ParishLink,
		"confession_start": r.ConfessionStart,
		"confession_end":   r.ConfessionEnd,
		"mass_start":       r.MassStart,
		"mass_end":         r.MassEnd,
		"crusade_start":    r.CrusadeStart,
		"crusade_end":      r.CrusadeEnd,
		"contact_name":     r.ContactName,
		"contact_phone":    r.ContactPhone,
		"contact_email":    r.ContactEmail,
		"comments":         htmlsanitize.Comments(r.Comments),
	}
}

// ParishRow is a parish with its state and diocese resolved.
type ParishRow struct {
	models.Parish
	StateAbbreviation string
	DioceseName       string
	DioceseLink       template.HTML
	WebsiteLink       template.HTML
}

func (l Lookup) ParishRow(p models.Parish) ParishRow {
	d, _ := l.Diocese(p.DioceseID)
	return ParishRow{
		Parish:            p,
		StateAbbreviation: l.StateAbbreviation(p.StateID),
		DioceseName:       d.Name,
		DioceseLink:       htmlsanitize.Link(d.Name, d.Website),
		WebsiteLink:       htmlsanitize.Link(p.Website, p.Website),
	}
}

func (l Lookup) ParishRows(in []models.Parish) []ParishRow {
	out := make([]ParishRow, len(in))
	for i, p := range in {
		out[i] = l.ParishRow(p)
	}
	return out
}

func (r ParishRow) Cells() table.Row {
	return table.Row{
		"id":           r.ID,
		"name":         r.Name,
		"state":        r.StateAbbreviation,
		"diocese":      r.DioceseName,
		"diocese_link": r.DioceseLink,
		"address":      r.Address,
		"city":         r.City,
		"post_code":    r.PostCode,
		"phone":        r.Phone,
		"email":        r.Email,
		"website":      r.Website,
		"website_link": r.WebsiteLink,
	}
}

// DioceseRow is a diocese with its state list joined for display.
type DioceseRow struct {
	models.Diocese
	States      string
	WebsiteLink template.HTML
}

func DioceseRowOf(d models.Diocese) DioceseRow {
	return DioceseRow{
		Diocese:     d,
		States:      strings.Join(d.AssociatedStateAbbreviations, ", "),
		WebsiteLink: htmlsanitize.Link(d.Website, d.Website),
	}
}

func DioceseRows(in []models.Diocese) []DioceseRow {
	out := make([]DioceseRow, len(in))
	for i, d := range in {
		out[i] = DioceseRowOf(d)
	}
	return out
}

func (r DioceseRow) Cells() table.Row {
	return table.Row{
		"id":           r.ID,
		"name":         r.Name,
		"states":       r.States,
		"address":      r.Address,
		"city":         r.City,
		"post_code":    r.PostCode,
		"phone":        r.Phone,
		"email":        r.Email,
		"website":      r.Website,
		"website_link": r.WebsiteLink,
	}
}

// StateCells is the table row for a state.
func StateCells(s models.State) table.Row {
	return table.Row{"id": s.ID, "name": s.Name, "abbreviation": s.Abbreviation}
}

// UserCells is the table row for a user.
func UserCells(u models.User) table.Row {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	return table.Row{
		"id":        u.ID,
		"full_name": u.FullName,
		"email":     u.Email,
		"roles":     strings.Join(roles, ", "),
		"enabled":   u.Enabled,
	}
}

// Cells converts any slice of rows with a Cells method.
func Cells[T interface{ Cells() table.Row }](in []T) []table.Row {
	out := make([]table.Row, len(in))
	for i, r := range in {
		out[i] = r.Cells()
	}
	return out
}
