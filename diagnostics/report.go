// Package diagnostics renders a checked Kripke model into human-readable
// reports: which states carry which labels, and the reverse index, so a
// caller can see Sat(phi) in context instead of as a bare id.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rfielding/ctlcheck/kripke"
)

// Report holds the rendered sections built from one model snapshot.
type Report struct {
	StatesByLabel string
	LabelsByState string
}

// Build walks m's full label table and produces both orientations of the
// labeling, states sorted by id.
func Build(m *kripke.Model) Report {
	return Report{
		StatesByLabel: statesByLabel(m),
		LabelsByState: labelsByState(m),
	}
}

func statesByLabel(m *kripke.Model) string {
	var sb strings.Builder
	sb.WriteString("| Label | States |\n")
	sb.WriteString("|-------|--------|\n")

	labelIDs := allLabelIDs(m)
	for _, id := range labelIDs {
		states := m.Extension(id)
		sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", m.LabelName(id), formatStates(m, states)))
	}
	return sb.String()
}

func labelsByState(m *kripke.Model) string {
	var sb strings.Builder
	sb.WriteString("| State | Labels |\n")
	sb.WriteString("|-------|--------|\n")

	states := append([]kripke.StateID(nil), m.States()...)
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	labelIDs := allLabelIDs(m)
	for _, s := range states {
		var names []string
		for _, id := range labelIDs {
			if m.HasLabel(id, s) {
				names = append(names, m.LabelName(id))
			}
		}
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", stateRef(m, s), strings.Join(names, ", ")))
	}
	return sb.String()
}

func allLabelIDs(m *kripke.Model) []kripke.LabelID {
	ids := m.LabelIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func formatStates(m *kripke.Model, states []kripke.StateID) string {
	refs := make([]string, len(states))
	for i, s := range states {
		refs[i] = stateRef(m, s)
	}
	return strings.Join(refs, ", ")
}

func stateRef(m *kripke.Model, s kripke.StateID) string {
	if name := m.StateName(s); name != "" {
		return fmt.Sprintf("%d(%s)", s, name)
	}
	return fmt.Sprintf("%d", s)
}
