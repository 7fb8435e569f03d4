package kripke

// Tarjan's algorithm for strongly connected components, run over the
// model's full transition graph or over an arbitrary induced subgraph.
// Grounded on the reachability shape of the original Rust implementation's
// non_trivial_scc (which wraps petgraph::algo::tarjan_scc); no graph
// library in the example pack exposes SCC extraction for Go, so this is a
// direct, dependency-free port of the classic algorithm (see DESIGN.md).

type tarjanState struct {
	index   map[StateID]int
	lowlink map[StateID]int
	onStack map[StateID]bool
	stack   []StateID
	next    int
	sccs    [][]StateID
	succ    func(StateID) []StateID
}

func runTarjan(states []StateID, succ func(StateID) []StateID) [][]StateID {
	ts := &tarjanState{
		index:   make(map[StateID]int, len(states)),
		lowlink: make(map[StateID]int, len(states)),
		onStack: make(map[StateID]bool, len(states)),
		succ:    succ,
	}
	for _, s := range states {
		if _, visited := ts.index[s]; !visited {
			ts.strongconnect(s)
		}
	}
	return ts.sccs
}

func (ts *tarjanState) strongconnect(v StateID) {
	ts.index[v] = ts.next
	ts.lowlink[v] = ts.next
	ts.next++
	ts.stack = append(ts.stack, v)
	ts.onStack[v] = true

	for _, w := range ts.succ(v) {
		if _, visited := ts.index[w]; !visited {
			ts.strongconnect(w)
			if ts.lowlink[w] < ts.lowlink[v] {
				ts.lowlink[v] = ts.lowlink[w]
			}
		} else if ts.onStack[w] {
			if ts.index[w] < ts.lowlink[v] {
				ts.lowlink[v] = ts.index[w]
			}
		}
	}

	if ts.lowlink[v] == ts.index[v] {
		var component []StateID
		for {
			n := len(ts.stack) - 1
			w := ts.stack[n]
			ts.stack = ts.stack[:n]
			ts.onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		ts.sccs = append(ts.sccs, component)
	}
}

// nonTrivial reports whether scc is a non-trivial strongly connected
// component: more than one state, or a single state with a self-loop.
// spec.md §9 Decided Open Question 5 makes this definition uniform across
// both the global and induced-subgraph variants below.
func nonTrivial(m *Model, scc []StateID) bool {
	if len(scc) > 1 {
		return true
	}
	s := scc[0]
	return m.HasEdge(s, s)
}

// NonTrivialSCCs returns the non-trivial strongly connected components of
// the full transition graph.
func (m *Model) NonTrivialSCCs() [][]StateID {
	sccs := runTarjan(m.States(), m.Successors)
	var out [][]StateID
	for _, scc := range sccs {
		if nonTrivial(m, scc) {
			out = append(out, scc)
		}
	}
	return out
}

// InducedNonTrivialSCCs returns the non-trivial strongly connected
// components of the subgraph induced by restricting states and edges to
// those in within. An edge s -> t only counts if both s and t are in
// within.
func (m *Model) InducedNonTrivialSCCs(within []StateID) [][]StateID {
	inSet := make(map[StateID]struct{}, len(within))
	for _, s := range within {
		inSet[s] = struct{}{}
	}
	succ := func(s StateID) []StateID {
		var out []StateID
		for _, t := range m.Successors(s) {
			if _, ok := inSet[t]; ok {
				out = append(out, t)
			}
		}
		return out
	}
	sccs := runTarjan(within, succ)
	var out [][]StateID
	for _, scc := range sccs {
		if nonTrivial(m, scc) {
			out = append(out, scc)
		}
	}
	return out
}
