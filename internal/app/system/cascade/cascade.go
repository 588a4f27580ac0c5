// Package cascade computes the state → diocese → parish dropdown cascade
// shared by every list filter and edit form.
//
// Dioceses join states through their list of associated state
// abbreviations; parishes join dioceses through DioceseID. Compute is pure:
// the same inputs always produce the same filtered sets, flags and
// selection, and feeding its output selection back in is a no-op.
//
// A child selection survives a parent change only if it is still in the
// recomputed child set; otherwise it is cleared.
package cascade

import (
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

// Selection is the chosen id at each level. Zero means "none".
type Selection struct {
	StateID   int64
	DioceseID int64
	ParishID  int64
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.StateID == 0 && s.DioceseID == 0 && s.ParishID == 0
}

// Result is the computed dropdown state.
type Result struct {
	Dioceses []models.Diocese
	Parishes []models.Parish

	DioceseDisabled bool
	ParishDisabled  bool

	// State is the resolved selected state, nil when none.
	State *models.State

	Selection Selection
}

// Compute filters dioceses by the selected state's abbreviation and
// parishes by the selected diocese, always starting from the full lists.
// Selections that are no longer valid are cleared.
func Compute(states []models.State, dioceses []models.Diocese, parishes []models.Parish, sel Selection) Result {
	res := Result{
		Dioceses:        []models.Diocese{},
		Parishes:        []models.Parish{},
		DioceseDisabled: true,
		ParishDisabled:  true,
	}

	st := findState(states, sel.StateID)
	if st == nil {
		return res
	}
	res.State = st
	res.Selection.StateID = st.ID

	res.Dioceses = DiocesesForState(dioceses, st.Abbreviation)
	res.DioceseDisabled = len(res.Dioceses) == 0

	if sel.DioceseID == 0 || !containsDiocese(res.Dioceses, sel.DioceseID) {
		return res
	}
	res.Selection.DioceseID = sel.DioceseID

	res.Parishes = ParishesForDiocese(parishes, sel.DioceseID)
	res.ParishDisabled = len(res.Parishes) == 0

	if sel.ParishID != 0 && containsParish(res.Parishes, sel.ParishID) {
		res.Selection.ParishID = sel.ParishID
	}
	return res
}

// Restore re-applies a saved selection against freshly loaded data, level
// by level. A saved id that no longer exists resets that level and every
// level below it to "no filter". intact is false when anything was reset.
func Restore(states []models.State, dioceses []models.Diocese, parishes []models.Parish, saved Selection) (res Result, intact bool) {
	res = Compute(states, dioceses, parishes, saved)
	return res, res.Selection == saved
}

// DiocesesForState returns the dioceses associating themselves with abbrev,
// in input order.
func DiocesesForState(dioceses []models.Diocese, abbrev string) []models.Diocese {
	out := []models.Diocese{}
	if abbrev == "" {
		return out
	}
	for _, d := range dioceses {
		if d.InState(abbrev) {
			out = append(out, d)
		}
	}
	return out
}

// ParishesForDiocese returns the parishes whose DioceseID is dioceseID, in
// input order.
func ParishesForDiocese(parishes []models.Parish, dioceseID int64) []models.Parish {
	out := []models.Parish{}
	if dioceseID == 0 {
		return out
	}
	for _, p := range parishes {
		if p.DioceseID == dioceseID {
			out = append(out, p)
		}
	}
	return out
}

func findState(states []models.State, id int64) *models.State {
	if id == 0 {
		return nil
	}
	for i := range states {
		if states[i].ID == id {
			st := states[i]
			return &st
		}
	}
	return nil
}

func containsDiocese(ds []models.Diocese, id int64) bool {
	for _, d := range ds {
		if d.ID == id {
			return true
		}
	}
	return false
}

func containsParish(ps []models.Parish, id int64) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}
