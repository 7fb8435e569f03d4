package ctl

// Normalize rewrites f onto the basis {True, Atomic, Not, And, Or,
// Exist(Next), Exist(Globally), Exist(Until)} such that Sat is preserved on
// every Kripke model. It is pure: f is never mutated, a new tree is
// returned.
//
// Two passes are required to reach a fixpoint on chains like
// AG f -> Not(Exist(Finally(Not f))) -> Not(Exist(Until(True, Not f))):
// the first pass introduces the Exist(Finally(...)) shape, the second
// rewrites that shape into Exist(Until(...)).
func Normalize(f Formula) Formula {
	pass1 := normalizeOnce(f)
	pass2 := normalizeOnce(pass1)
	return pass2
}

func normalizeOnce(f Formula) Formula {
	switch n := f.(type) {
	case True:
		return n
	case Atomic:
		return n
	case Not:
		if inner, ok := n.Inner.(Not); ok {
			return normalizeOnce(inner.Inner)
		}
		return Not{Inner: normalizeOnce(n.Inner)}
	case And:
		return And{Left: normalizeOnce(n.Left), Right: normalizeOnce(n.Right)}
	case Or:
		return Or{Left: normalizeOnce(n.Left), Right: normalizeOnce(n.Right)}
	case Next:
		return Next{Inner: normalizeOnce(n.Inner)}
	case Finally:
		return Finally{Inner: normalizeOnce(n.Inner)}
	case Globally:
		return Globally{Inner: normalizeOnce(n.Inner)}
	case Until:
		return Until{Left: normalizeOnce(n.Left), Right: normalizeOnce(n.Right)}
	case Release:
		return Release{Left: normalizeOnce(n.Left), Right: normalizeOnce(n.Right)}
	case All:
		return normalizeAll(n.Inner)
	case Exist:
		return normalizeExist(n.Inner)
	default:
		// Programmer error: an unhandled Formula variant was added without
		// a matching normalization rule.
		panic("ctl: Normalize: unhandled formula variant")
	}
}

// normalizeAll rewrites the body of an All(...) quantifier using the
// dualities AX f = ¬EX¬f, AF f = ¬EG¬f, AG f = ¬EF¬f, A(f U g) = ¬E(¬g U
// (¬f ∧ ¬g)) ∧ ¬EG¬g, A(f R g) = ¬E(¬f U ¬g).
func normalizeAll(inner Formula) Formula {
	switch body := inner.(type) {
	case Next:
		f := normalizeOnce(body.Inner)
		return Not{Inner: Exist{Inner: Next{Inner: Not{Inner: f}}}}
	case Finally:
		f := normalizeOnce(body.Inner)
		return Not{Inner: Exist{Inner: Globally{Inner: Not{Inner: f}}}}
	case Globally:
		f := normalizeOnce(body.Inner)
		return Not{Inner: Exist{Inner: Finally{Inner: Not{Inner: f}}}}
	case Until:
		f := normalizeOnce(body.Left)
		g := normalizeOnce(body.Right)
		return And{
			Left: Not{Inner: Exist{Inner: Until{
				Left:  Not{Inner: g},
				Right: And{Left: Not{Inner: f}, Right: Not{Inner: g}},
			}}},
			Right: Not{Inner: Exist{Inner: Globally{Inner: Not{Inner: g}}}},
		}
	case Release:
		f := normalizeOnce(body.Left)
		g := normalizeOnce(body.Right)
		return Not{Inner: Exist{Inner: Until{Left: Not{Inner: f}, Right: Not{Inner: g}}}}
	default:
		// A raw A applied to a non-temporal formula should never reach the
		// normalizer: the parser only admits a path quantifier immediately
		// followed by a temporal operator. Treat it as a no-op quantifier
		// for robustness rather than panicking on defensive input.
		return normalizeOnce(body)
	}
}

// normalizeExist rewrites the body of an Exist(...) quantifier: EF f =
// E(true U f); E(f R g) = ¬A(¬f U ¬g); EX/EG/EU pass through unchanged
// (modulo recursing into children).
func normalizeExist(inner Formula) Formula {
	switch body := inner.(type) {
	case Finally:
		f := normalizeOnce(body.Inner)
		return Exist{Inner: Until{Left: True{}, Right: f}}
	case Release:
		f := normalizeOnce(body.Left)
		g := normalizeOnce(body.Right)
		return normalizeOnce(Not{Inner: All{Inner: Until{Left: Not{Inner: f}, Right: Not{Inner: g}}}})
	case Next:
		return Exist{Inner: Next{Inner: normalizeOnce(body.Inner)}}
	case Globally:
		return Exist{Inner: Globally{Inner: normalizeOnce(body.Inner)}}
	case Until:
		return Exist{Inner: Until{Left: normalizeOnce(body.Left), Right: normalizeOnce(body.Right)}}
	default:
		// Defensive: an Exist applied to a non-temporal node is treated as
		// EX of that node (spec.md §4.4, "other normalized shapes").
		return Exist{Inner: Next{Inner: normalizeOnce(body)}}
	}
}
