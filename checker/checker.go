// Package checker implements the CTL labeling algorithm: given a Kripke
// model and a normalized formula, it grows the model's label tables until
// the formula's own label's extension equals Sat(formula).
package checker

import (
	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/ctlerr"
	"github.com/rfielding/ctlcheck/kripke"
)

// Check normalizes f and labels m until the label whose name is the
// normalized formula's canonical key has its full extension computed,
// returning that label id. On UnknownAtomic or NotInNormalForm, m may be
// left partially labeled; per spec.md §7 there is no partial-success
// return, and callers must discard m.
//
// Check is a convenience wrapper around CheckWithMetrics for callers that
// don't need counters; see CheckSession for the instrumented entry point.
func Check(m *kripke.Model, f ctl.Formula) (kripke.LabelID, error) {
	return CheckWithMetrics(m, f, nil)
}

// CheckWithMetrics behaves like Check but records counters into ms when ms
// is non-nil. Passing a nil *Metrics disables instrumentation entirely, so
// the hot path pays nothing for callers that don't ask for it.
func CheckWithMetrics(m *kripke.Model, f ctl.Formula, ms *Metrics) (kripke.LabelID, error) {
	c := &ctx{m: m, metrics: ms}
	normalized := ctl.Normalize(f)
	return c.process(normalized)
}

// ctx bundles the model under construction with the (possibly nil) counter
// set the current CheckSession is accumulating into. Every processX
// function hangs off ctx so instrumentation lives in one place instead of
// threading a *Metrics parameter through every call.
type ctx struct {
	m       *kripke.Model
	metrics *Metrics
}

func (c *ctx) inc(name, desc string) {
	if c.metrics != nil {
		c.metrics.inc(name, desc)
	}
}

// process is the recursive labeler. It returns a label id L such that, at
// the moment of return, m's extension of L equals Sat(node). It memoizes
// on node's canonical key: if a label by that name already exists, its id
// is returned without recomputation.
func (c *ctx) process(node ctl.Formula) (kripke.LabelID, error) {
	if _, ok := node.(ctl.True); ok {
		return kripke.TrueID, nil
	}

	key := node.Key()
	if id, ok := c.m.LookupLabel(key); ok {
		c.inc("memo_hits", "formulas resolved from an existing label without recomputation")
		return id, nil
	}

	switch n := node.(type) {
	case ctl.Atomic:
		id, ok := c.m.LookupLabel(n.Name)
		if !ok {
			return kripke.TrueID, ctlerr.UnknownAtomic(n.Name)
		}
		return id, nil

	case ctl.Not:
		return c.processNot(key, n)

	case ctl.Or:
		return c.processOr(key, n)

	case ctl.And:
		return c.processAnd(key, n)

	case ctl.Exist:
		switch inner := n.Inner.(type) {
		case ctl.Next:
			return c.processEX(key, inner.Inner)
		case ctl.Until:
			return c.processEU(key, inner.Left, inner.Right)
		case ctl.Globally:
			return c.processEG(key, inner.Inner)
		default:
			// Defensive: spec.md §4.4 "other normalized shapes" -- a bare
			// Exist of a non-temporal node is treated as EX of that node.
			return c.processEX(key, inner)
		}

	default:
		return kripke.TrueID, ctlerr.NotInNormalForm(key)
	}
}

func (c *ctx) newLabel(key string) kripke.LabelID {
	c.inc("labels_allocated", "distinct formula subterms given their own label")
	return c.m.EnsureLabel(key)
}

func (c *ctx) processNot(key string, n ctl.Not) (kripke.LabelID, error) {
	innerID, err := c.process(n.Inner)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)
	for _, s := range c.m.States() {
		if !c.m.HasLabel(innerID, s) {
			c.m.AddLabel(id, s)
		}
	}
	return id, nil
}

func (c *ctx) processOr(key string, n ctl.Or) (kripke.LabelID, error) {
	leftID, err := c.process(n.Left)
	if err != nil {
		return kripke.TrueID, err
	}
	rightID, err := c.process(n.Right)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)
	for _, s := range c.m.Extension(leftID) {
		c.m.AddLabel(id, s)
	}
	for _, s := range c.m.Extension(rightID) {
		c.m.AddLabel(id, s)
	}
	return id, nil
}

func (c *ctx) processAnd(key string, n ctl.And) (kripke.LabelID, error) {
	leftID, err := c.process(n.Left)
	if err != nil {
		return kripke.TrueID, err
	}
	rightID, err := c.process(n.Right)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)
	for _, s := range c.m.States() {
		if c.m.HasLabel(leftID, s) && c.m.HasLabel(rightID, s) {
			c.m.AddLabel(id, s)
		}
	}
	return id, nil
}

// processEX implements E X f: a state is in the extension iff at least one
// of its successors lies in ext(f).
func (c *ctx) processEX(key string, f ctl.Formula) (kripke.LabelID, error) {
	fID, err := c.process(f)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)
	for _, s := range c.m.States() {
		for _, t := range c.m.Successors(s) {
			if c.m.HasLabel(fID, t) {
				c.m.AddLabel(id, s)
				break
			}
		}
	}
	return id, nil
}

// processEU implements E(f U g) as the worklist fixpoint from spec.md
// §4.4: seed with ext(g), then back-propagate through predecessors
// whenever the predecessor satisfies f (or f is TrueID) and isn't already
// marked. Each state is pushed at most once, giving O(|S|+|R|).
func (c *ctx) processEU(key string, f, g ctl.Formula) (kripke.LabelID, error) {
	fID, err := c.process(f)
	if err != nil {
		return kripke.TrueID, err
	}
	gID, err := c.process(g)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)

	worklist := c.m.Extension(gID)
	for _, s := range worklist {
		c.m.AddLabel(id, s)
	}
	for len(worklist) > 0 {
		n := len(worklist) - 1
		s := worklist[n]
		worklist = worklist[:n]
		c.inc("eu_worklist_pops", "predecessor-expansion steps taken while computing E(f U g)")
		for _, t := range c.m.Predecessors(s) {
			if c.m.HasLabel(id, t) {
				continue
			}
			if fID != kripke.TrueID && !c.m.HasLabel(fID, t) {
				continue
			}
			c.m.AddLabel(id, t)
			worklist = append(worklist, t)
		}
	}
	return id, nil
}

// processEG implements E G f via non-trivial SCCs of the subgraph induced
// by ext(f) (spec.md §4.4/§4.5): seed the extension with every state in a
// non-trivial SCC, then back-propagate through predecessors that satisfy f
// and are not yet marked.
func (c *ctx) processEG(key string, f ctl.Formula) (kripke.LabelID, error) {
	fID, err := c.process(f)
	if err != nil {
		return kripke.TrueID, err
	}
	id := c.newLabel(key)

	fExtension := c.m.Extension(fID)
	sccs := c.m.InducedNonTrivialSCCs(fExtension)

	var worklist []kripke.StateID
	for _, scc := range sccs {
		for _, s := range scc {
			c.inc("eg_scc_seed_nodes", "states seeded into ext(EG f) from a non-trivial SCC")
			if !c.m.HasLabel(id, s) {
				c.m.AddLabel(id, s)
				worklist = append(worklist, s)
			}
		}
	}

	fInExtension := make(map[kripke.StateID]bool, len(fExtension))
	for _, s := range fExtension {
		fInExtension[s] = true
	}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		s := worklist[n]
		worklist = worklist[:n]
		for _, t := range c.m.Predecessors(s) {
			if !fInExtension[t] {
				continue
			}
			if c.m.HasLabel(id, t) {
				continue
			}
			c.m.AddLabel(id, t)
			worklist = append(worklist, t)
		}
	}
	return id, nil
}
