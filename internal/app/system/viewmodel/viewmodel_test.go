package viewmodel

import (
	"strings"
	"testing"

	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/app/system/table"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

func snapshot() *refdata.Snapshot {
	return &refdata.Snapshot{
		States: []models.State{{ID: 1, Name: "New South Wales", Abbreviation: "NSW"}},
		Dioceses: []models.Diocese{
			{ID: 10, Name: "Sydney", Website: "sydneycatholic.org", AssociatedStateAbbreviations: []string{"NSW", "ACT"}},
		},
		Parishes: []models.Parish{{ID: 100, DioceseID: 10, StateID: 1, Name: "St Mary"}},
	}
}

func TestAdoration_ResolvesNames(t *testing.T) {
	l := NewLookup(snapshot())
	row := l.Adoration(models.Adoration{ID: 7, StateID: 1, DioceseID: 10, ParishID: 100, Type: models.AdorationRegular})

	if row.StateAbbreviation != "NSW" || row.DioceseName != "Sydney" || row.ParishName != "St Mary" {
		t.Fatalf("got %+v", row)
	}
	if !strings.Contains(string(row.DioceseLink), `href="https://sydneycatholic.org"`) {
		t.Errorf("diocese link = %s", row.DioceseLink)
	}
	if row.ParishLink != "St Mary" {
		t.Errorf("parish without website should be plain text, got %s", row.ParishLink)
	}
}

func TestAdoration_DanglingReferences(t *testing.T) {
	l := NewLookup(snapshot())
	row := l.Adoration(models.Adoration{ID: 7, StateID: 99, DioceseID: 99, ParishID: 99})
	if row.StateAbbreviation != "" || row.DioceseName != "" || row.ParishName != "" {
		t.Fatalf("expected empty names, got %+v", row)
	}
	if got := table.Cell(row.Cells(), "diocese"); got != "" {
		t.Errorf("cell = %q", got)
	}
}

func TestNilSnapshot(t *testing.T) {
	l := NewLookup(nil)
	if l.DioceseName(10) != "" {
		t.Fatal("expected empty")
	}
}

func TestMapping_PreservesOrderAndLength(t *testing.T) {
	l := NewLookup(snapshot())
	in := []models.Crusade{{ID: 3}, {ID: 1, ParishID: 100}, {ID: 2}}
	out := l.Crusades(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d", len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Errorf("row %d id = %d, want %d", i, out[i].ID, in[i].ID)
		}
	}
	if out[1].ParishName != "St Mary" {
		t.Errorf("parish name = %q", out[1].ParishName)
	}
	if len(l.Adorations(nil)) != 0 {
		t.Error("nil input should map to empty")
	}
}

func TestParishRow(t *testing.T) {
	l := NewLookup(snapshot())
	row := l.ParishRow(models.Parish{ID: 100, DioceseID: 10, StateID: 1, Name: "St Mary", Website: "stmary.org"})
	if row.StateAbbreviation != "NSW" || row.DioceseName != "Sydney" {
		t.Fatalf("got %+v", row)
	}
	if !strings.Contains(string(row.WebsiteLink), `target="_blank"`) {
		t.Errorf("website link = %s", row.WebsiteLink)
	}
}

func TestDioceseRow(t *testing.T) {
	row := DioceseRowOf(snapshot().Dioceses[0])
	if row.States != "NSW, ACT" {
		t.Errorf("states = %q", row.States)
	}
	cells := row.Cells()
	if cells["name"] != "Sydney" {
		t.Errorf("cells = %v", cells)
	}
}

func TestUserCells(t *testing.T) {
	u := models.User{ID: 1, FullName: "Ann", Roles: []models.Role{models.RoleAdmin, models.RoleStandard}, Enabled: true}
	c := UserCells(u)
	if c["roles"] != "ADMIN, STANDARD" || c["enabled"] != true {
		t.Errorf("cells = %v", c)
	}
}

func TestCellsGeneric(t *testing.T) {
	rows := Cells(DioceseRows(snapshot().Dioceses))
	if len(rows) != 1 || rows[0]["states"] != "NSW, ACT" {
		t.Fatalf("got %v", rows)
	}
}
