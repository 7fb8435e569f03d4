// Package kripke holds the Kripke structure K = (S, R, L): states,
// transitions, atomic-proposition labels, and the label tables that the
// checker grows as it labels states with derived subformulas.
package kripke

// StateID identifies a state. State-ids are opaque non-negative integers,
// not necessarily contiguous.
type StateID int

// LabelID identifies a label: either an atomic proposition fixed at load
// time, or a derived subformula label allocated during checking. The
// checker treats both uniformly.
type LabelID int

// TrueID is the reserved sentinel denoting the universal label, which holds
// at every state. It is never a key of labels, labelToStates, or
// stateToLabels; lookups translate it to "all state ids" instead.
const TrueID LabelID = -1

// Model is a Kripke structure K = (S, R, L) plus the evolving labeling that
// a checker run accumulates. States and transitions are immutable after
// construction; labels, labelToStates, and stateToLabels only grow.
type Model struct {
	states      map[StateID]string
	transitions map[StateID]map[StateID]struct{}
	initial     StateID

	labels        map[LabelID]string
	nameToLabel   map[string]LabelID
	labelToStates map[LabelID]map[StateID]struct{}
	stateToLabels map[StateID]map[LabelID]struct{}
	nextLabel     LabelID

	pred map[StateID][]StateID // lazily built reverse-adjacency cache
}

// New constructs an empty Model. Use AddState, AddTransition, and AddLabel
// to build it, then SetInitial to designate the initial state.
func New() *Model {
	return &Model{
		states:        make(map[StateID]string),
		transitions:   make(map[StateID]map[StateID]struct{}),
		labels:        make(map[LabelID]string),
		nameToLabel:   make(map[string]LabelID),
		labelToStates: make(map[LabelID]map[StateID]struct{}),
		stateToLabels: make(map[StateID]map[LabelID]struct{}),
	}
}

// AddState registers a state id with a human-readable name. It is a no-op
// if the id is already present.
func (m *Model) AddState(id StateID, name string) {
	if _, ok := m.states[id]; ok {
		return
	}
	m.states[id] = name
	m.transitions[id] = make(map[StateID]struct{})
	m.stateToLabels[id] = make(map[LabelID]struct{})
}

// SetInitial designates s as the initial state. s must already have been
// added via AddState.
func (m *Model) SetInitial(s StateID) {
	m.initial = s
}

// Initial returns the initial state id.
func (m *Model) Initial() StateID { return m.initial }

// AddTransition adds an edge from -> to. Both states must already exist.
func (m *Model) AddTransition(from, to StateID) {
	m.transitions[from][to] = struct{}{}
}

// States returns every declared state id. Iteration order is unspecified.
func (m *Model) States() []StateID {
	out := make([]StateID, 0, len(m.states))
	for s := range m.states {
		out = append(out, s)
	}
	return out
}

// NumStates returns the number of declared states.
func (m *Model) NumStates() int { return len(m.states) }

// StateName returns the human-readable name of s.
func (m *Model) StateName(s StateID) string { return m.states[s] }

// Successors returns the successor states of s.
func (m *Model) Successors(s StateID) []StateID {
	succ := m.transitions[s]
	out := make([]StateID, 0, len(succ))
	for t := range succ {
		out = append(out, t)
	}
	return out
}

// HasEdge reports whether there is a transition from -> to.
func (m *Model) HasEdge(from, to StateID) bool {
	_, ok := m.transitions[from][to]
	return ok
}

// Predecessors returns every state t with a transition t -> s. The
// reverse-adjacency map is built once, on first use, in O(|S|+|R|) and
// cached for the lifetime of the Model (states and transitions are
// immutable after construction, so the cache never goes stale).
func (m *Model) Predecessors(s StateID) []StateID {
	if m.pred == nil {
		m.pred = make(map[StateID][]StateID, len(m.states))
		for from, tos := range m.transitions {
			for to := range tos {
				m.pred[to] = append(m.pred[to], from)
			}
		}
	}
	return m.pred[s]
}

// EnsureLabel returns the id of the label named name, allocating a fresh
// one (the next free integer starting at 0) if it does not already exist.
// This is the only way new label ids are minted, keeping allocation
// deterministic and centralizing the bidirectional-consistency invariant
// between labelToStates and stateToLabels.
func (m *Model) EnsureLabel(name string) LabelID {
	if id, ok := m.nameToLabel[name]; ok {
		return id
	}
	id := m.nextLabel
	m.nextLabel++
	m.nameToLabel[name] = id
	m.labels[id] = name
	m.labelToStates[id] = make(map[StateID]struct{})
	return id
}

// LookupLabel returns the id of the label named name and whether it exists,
// without allocating one.
func (m *Model) LookupLabel(name string) (LabelID, bool) {
	id, ok := m.nameToLabel[name]
	return id, ok
}

// LabelName returns the name registered for id.
func (m *Model) LabelName(id LabelID) string { return m.labels[id] }

// AddLabel marks state s as satisfying label id, maintaining the
// bidirectional consistency invariant between labelToStates and
// stateToLabels (spec.md §3).
func (m *Model) AddLabel(id LabelID, s StateID) {
	if m.labelToStates[id] == nil {
		m.labelToStates[id] = make(map[StateID]struct{})
	}
	m.labelToStates[id][s] = struct{}{}
	if m.stateToLabels[s] == nil {
		m.stateToLabels[s] = make(map[LabelID]struct{})
	}
	m.stateToLabels[s][id] = struct{}{}
}

// HasLabel reports whether state s is labeled with id. TrueID holds at
// every declared state.
func (m *Model) HasLabel(id LabelID, s StateID) bool {
	if id == TrueID {
		_, declared := m.states[s]
		return declared
	}
	_, ok := m.labelToStates[id][s]
	return ok
}

// Extension returns the set of states labeled with id, as a fresh slice.
// TrueID's extension is every declared state.
func (m *Model) Extension(id LabelID) []StateID {
	if id == TrueID {
		return m.States()
	}
	set := m.labelToStates[id]
	out := make([]StateID, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// LabelIDs returns every allocated label id (atomic propositions plus
// derived subformula labels), excluding the TrueID sentinel. Iteration
// order is unspecified.
func (m *Model) LabelIDs() []LabelID {
	out := make([]LabelID, 0, len(m.labels))
	for id := range m.labels {
		out = append(out, id)
	}
	return out
}

// ExtensionSize returns len(Extension(id)) without allocating the slice.
func (m *Model) ExtensionSize(id LabelID) int {
	if id == TrueID {
		return len(m.states)
	}
	return len(m.labelToStates[id])
}
