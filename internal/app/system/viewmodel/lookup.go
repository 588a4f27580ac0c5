// Package viewmodel derives display rows from domain records and the
// reference-data snapshot: state abbreviations, diocese and parish names,
// and optional hyperlinks. A dangling reference yields an empty name, never
// an error.
package viewmodel

import (
	"github.com/dalemusser/diocesehub/internal/app/system/refdata"
	"github.com/dalemusser/diocesehub/internal/domain/models"
)

// Lookup indexes a reference snapshot by id.
type Lookup struct {
	states   map[int64]models.State
	dioceses map[int64]models.Diocese
	parishes map[int64]models.Parish
}

// NewLookup builds a Lookup. A nil snapshot gives a Lookup that resolves
// nothing.
func NewLookup(s *refdata.Snapshot) Lookup {
	l := Lookup{
		states:   map[int64]models.State{},
		dioceses: map[int64]models.Diocese{},
		parishes: map[int64]models.Parish{},
	}
	if s == nil {
		return l
	}
	for _, st := range s.States {
		l.states[st.ID] = st
	}
	for _, d := range s.Dioceses {
		l.dioceses[d.ID] = d
	}
	for _, p := range s.Parishes {
		l.parishes[p.ID] = p
	}
	return l
}

func (l Lookup) State(id int64) (models.State, bool) {
	s, ok := l.states[id]
	return s, ok
}

func (l Lookup) Diocese(id int64) (models.Diocese, bool) {
	d, ok := l.dioceses[id]
	return d, ok
}

func (l Lookup) Parish(id int64) (models.Parish, bool) {
	p, ok := l.parishes[id]
	return p, ok
}

// StateAbbreviation returns the abbreviation of state id, or "".
func (l Lookup) StateAbbreviation(id int64) string {
	return l.states[id].Abbreviation
}

// DioceseName returns the name of diocese id, or "".
func (l Lookup) DioceseName(id int64) string {
	return l.dioceses[id].Name
}

// ParishName returns the name of parish id, or "".
func (l Lookup) ParishName(id int64) string {
	return l.parishes[id].Name
}
