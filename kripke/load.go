package kripke

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rfielding/ctlcheck/ctlerr"
)

// stateDoc mirrors one element of the "states" array in the model JSON
// format from spec.md §6.
type stateDoc struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Labels    []string `json:"labels"`
	TransitTo []int    `json:"transit_to"`
}

// modelDoc mirrors the root JSON object from spec.md §6.
type modelDoc struct {
	States       []stateDoc `json:"states"`
	InitialState int        `json:"initial_state"`
}

// LoadModel decodes a Kripke model from JSON per the wire format in
// spec.md §6 and validates it (Decided Open Question 6): every id named in
// a state's transit_to must be a declared state, and initial_state must be
// declared. Atomic-proposition label ids are assigned in the order they
// first occur scanning states top to bottom and each state's labels left
// to right, matching spec.md §6 exactly.
//
// encoding/json is used directly: no third-party decoder in the example
// pack offers anything beyond what the standard library already provides
// for this shape (see DESIGN.md).
func LoadModel(r io.Reader) (*Model, error) {
	var doc modelDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, ctlerr.ModelLoad(fmt.Errorf("decoding JSON: %w", err))
	}

	m := New()
	declared := make(map[StateID]bool, len(doc.States))
	for _, sd := range doc.States {
		id := StateID(sd.ID)
		if declared[id] {
			return nil, ctlerr.ModelLoad(fmt.Errorf("duplicate state id %d", sd.ID))
		}
		declared[id] = true
		m.AddState(id, sd.Name)
	}

	for _, sd := range doc.States {
		from := StateID(sd.ID)
		for _, to := range sd.TransitTo {
			toID := StateID(to)
			if !declared[toID] {
				return nil, ctlerr.ModelLoad(fmt.Errorf("state %d transitions to undeclared state %d", sd.ID, to))
			}
			m.AddTransition(from, toID)
		}
		for _, label := range sd.Labels {
			id := m.EnsureLabel(label)
			m.AddLabel(id, from)
		}
	}

	initial := StateID(doc.InitialState)
	if !declared[initial] {
		return nil, ctlerr.ModelLoad(fmt.Errorf("initial_state %d is not a declared state", doc.InitialState))
	}
	m.SetInitial(initial)

	return m, nil
}
