package cascade

import (
	"reflect"
	"testing"

	"github.com/dalemusser/diocesehub/internal/domain/models"
)

func fixture() ([]models.State, []models.Diocese, []models.Parish) {
	states := []models.State{
		{ID: 1, Name: "New South Wales", Abbreviation: "NSW"},
		{ID: 2, Name: "Victoria", Abbreviation: "VIC"},
		{ID: 3, Name: "Queensland", Abbreviation: "QLD"},
		{ID: 4, Name: "Northern Territory", Abbreviation: "NT"},
	}
	dioceses := []models.Diocese{
		{ID: 10, Name: "D1", AssociatedStateAbbreviations: []string{"NSW", "VIC"}},
		{ID: 20, Name: "D2", AssociatedStateAbbreviations: []string{"QLD"}},
		{ID: 30, Name: "D3", AssociatedStateAbbreviations: []string{"VIC"}},
	}
	parishes := []models.Parish{
		{ID: 100, DioceseID: 10, StateID: 1, Name: "P1"},
		{ID: 101, DioceseID: 10, StateID: 2, Name: "P2"},
		{ID: 200, DioceseID: 20, StateID: 3, Name: "P3"},
	}
	return states, dioceses, parishes
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := []int64{}
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func dioceseIDs(ds []models.Diocese) []int64 { return ids(ds, func(d models.Diocese) int64 { return d.ID }) }
func parishIDs(ps []models.Parish) []int64  { return ids(ps, func(p models.Parish) int64 { return p.ID }) }

func TestCompute_NoState(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{DioceseID: 10, ParishID: 100})

	if len(res.Dioceses) != 0 || len(res.Parishes) != 0 {
		t.Errorf("expected empty lists, got %v / %v", dioceseIDs(res.Dioceses), parishIDs(res.Parishes))
	}
	if !res.DioceseDisabled || !res.ParishDisabled {
		t.Error("expected both controls disabled")
	}
	if !res.Selection.IsZero() {
		t.Errorf("expected cleared selection, got %+v", res.Selection)
	}
	if res.State != nil {
		t.Error("expected no resolved state")
	}
}

func TestCompute_UnknownStateBehavesLikeUnset(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 99})
	if !res.DioceseDisabled || !res.Selection.IsZero() {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestCompute_NSWScenario(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 1})

	if got, want := dioceseIDs(res.Dioceses), []int64{10}; !reflect.DeepEqual(got, want) {
		t.Errorf("dioceses: got %v, want %v", got, want)
	}
	if res.DioceseDisabled {
		t.Error("diocese control should be enabled")
	}
	if !res.ParishDisabled {
		t.Error("parish control should stay disabled until a diocese is chosen")
	}
	if res.State == nil || res.State.Abbreviation != "NSW" {
		t.Errorf("resolved state: got %+v", res.State)
	}
}

func TestCompute_StateWithoutDioceses(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 4, DioceseID: 10})

	if len(res.Dioceses) != 0 {
		t.Errorf("expected no dioceses, got %v", dioceseIDs(res.Dioceses))
	}
	if !res.DioceseDisabled {
		t.Error("expected diocese control disabled")
	}
	if res.Selection.DioceseID != 0 {
		t.Error("expected diocese selection cleared")
	}
	if res.Selection.StateID != 4 {
		t.Error("state selection must be kept")
	}
}

func TestCompute_ParishesExactlyByDiocese(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 1, DioceseID: 10})

	// Every parish of D1, regardless of its own state.
	if got, want := parishIDs(res.Parishes), []int64{100, 101}; !reflect.DeepEqual(got, want) {
		t.Errorf("parishes: got %v, want %v", got, want)
	}
	if res.ParishDisabled {
		t.Error("parish control should be enabled")
	}
}

func TestCompute_ParishesRecomputedFromFullList(t *testing.T) {
	s, d, p := fixture()
	first := Compute(s, d, p, Selection{StateID: 3, DioceseID: 20})
	if got := parishIDs(first.Parishes); !reflect.DeepEqual(got, []int64{200}) {
		t.Fatalf("first: got %v", got)
	}

	// Switching diocese must not filter the previous subset.
	second := Compute(s, d, p, Selection{StateID: 1, DioceseID: 10})
	if got := parishIDs(second.Parishes); !reflect.DeepEqual(got, []int64{100, 101}) {
		t.Errorf("second: got %v", got)
	}
}

func TestCompute_PreservesValidChild(t *testing.T) {
	s, d, p := fixture()
	// D1 spans NSW and VIC, so moving NSW -> VIC keeps it and its parish.
	res := Compute(s, d, p, Selection{StateID: 2, DioceseID: 10, ParishID: 101})
	want := Selection{StateID: 2, DioceseID: 10, ParishID: 101}
	if res.Selection != want {
		t.Errorf("selection: got %+v, want %+v", res.Selection, want)
	}
}

func TestCompute_ClearsInvalidChild(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 3, DioceseID: 10, ParishID: 100})
	want := Selection{StateID: 3}
	if res.Selection != want {
		t.Errorf("selection: got %+v, want %+v", res.Selection, want)
	}
	if len(res.Parishes) != 0 || !res.ParishDisabled {
		t.Error("expected parish list empty and disabled")
	}
}

func TestCompute_ClearsParishFromOtherDiocese(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 1, DioceseID: 10, ParishID: 200})
	if res.Selection.ParishID != 0 {
		t.Errorf("expected parish cleared, got %d", res.Selection.ParishID)
	}
	if res.Selection.DioceseID != 10 {
		t.Error("diocese should be kept")
	}
}

func TestCompute_DioceseWithoutParishesDisablesParish(t *testing.T) {
	s, d, p := fixture()
	res := Compute(s, d, p, Selection{StateID: 2, DioceseID: 30})
	if !res.ParishDisabled || len(res.Parishes) != 0 {
		t.Errorf("expected empty disabled parish control, got %v", parishIDs(res.Parishes))
	}
}

func TestCompute_Idempotent(t *testing.T) {
	s, d, p := fixture()
	inputs := []Selection{
		{},
		{StateID: 1},
		{StateID: 1, DioceseID: 10, ParishID: 100},
		{StateID: 3, DioceseID: 10, ParishID: 100},
		{StateID: 99, DioceseID: 20},
	}
	for _, in := range inputs {
		a := Compute(s, d, p, in)
		b := Compute(s, d, p, in)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("same input gave different results for %+v", in)
		}
		c := Compute(s, d, p, a.Selection)
		if !reflect.DeepEqual(a, c) {
			t.Errorf("recomputing from output selection changed the result for %+v", in)
		}
	}
}

func TestRestore_AllPresent(t *testing.T) {
	s, d, p := fixture()
	saved := Selection{StateID: 1, DioceseID: 10, ParishID: 100}
	res, intact := Restore(s, d, p, saved)
	if !intact || res.Selection != saved {
		t.Errorf("expected saved selection restored, got %+v intact=%v", res.Selection, intact)
	}
}

func TestRestore_FallsBackPerLevel(t *testing.T) {
	s, d, p := fixture()

	tests := []struct {
		name  string
		saved Selection
		want  Selection
	}{
		{"state gone", Selection{StateID: 42, DioceseID: 10, ParishID: 100}, Selection{}},
		{"diocese gone", Selection{StateID: 1, DioceseID: 77, ParishID: 100}, Selection{StateID: 1}},
		{"parish gone", Selection{StateID: 1, DioceseID: 10, ParishID: 555}, Selection{StateID: 1, DioceseID: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, intact := Restore(s, d, p, tt.saved)
			if intact {
				t.Error("expected intact=false")
			}
			if res.Selection != tt.want {
				t.Errorf("selection: got %+v, want %+v", res.Selection, tt.want)
			}
		})
	}
}

func TestDiocesesForState_EmptyAbbrev(t *testing.T) {
	_, d, _ := fixture()
	if got := DiocesesForState(d, ""); len(got) != 0 {
		t.Errorf("expected none, got %v", dioceseIDs(got))
	}
}
