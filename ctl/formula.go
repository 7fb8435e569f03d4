// Package ctl holds the CTL formula syntax tree, its canonical string keys,
// the normalizer that rewrites any formula onto the basis {true, atomic,
// not, and, or, EX, EG, EU}, and the parser that reads the textual CTL
// grammar into the tree.
package ctl

import "fmt"

// Formula is the sum type over CTL constructors. Two formulas are
// semantically identical iff their canonical Key()s are equal; Formula does
// not attempt any deeper structural sharing or CSE.
type Formula interface {
	// String renders the formula using the Unicode notation (¬, ∧, ∨, A, E,
	// X, F, G, U, R) for human-facing output.
	String() string

	// Key returns the canonical ASCII identity of the formula, used as the
	// label name during checking and as the memoization key.
	Key() string
}

// True is the boolean constant holding at every state.
type True struct{}

func (True) String() string { return "⊤" }
func (True) Key() string    { return "true" }

// Atomic is a named atomic proposition; its extension is fixed at model
// load time.
type Atomic struct {
	Name string
}

func (a Atomic) String() string { return a.Name }
func (a Atomic) Key() string    { return a.Name }

// Not is negation.
type Not struct {
	Inner Formula
}

func (n Not) String() string { return fmt.Sprintf("¬%s", n.Inner) }
func (n Not) Key() string    { return "!" + n.Inner.Key() }

// And is conjunction.
type And struct {
	Left, Right Formula
}

func (a And) String() string { return fmt.Sprintf("(%s ∧ %s)", a.Left, a.Right) }
func (a And) Key() string    { return "(" + a.Left.Key() + "&&" + a.Right.Key() + ")" }

// Or is disjunction.
type Or struct {
	Left, Right Formula
}

func (o Or) String() string { return fmt.Sprintf("(%s ∨ %s)", o.Left, o.Right) }
func (o Or) Key() string    { return "(" + o.Left.Key() + "||" + o.Right.Key() + ")" }

// All is the universal path quantifier: "on every path from here".
type All struct {
	Inner Formula
}

func (a All) String() string { return fmt.Sprintf("A%s", a.Inner) }
func (a All) Key() string    { return "A" + a.Inner.Key() }

// Exist is the existential path quantifier: "on some path from here".
type Exist struct {
	Inner Formula
}

func (e Exist) String() string { return fmt.Sprintf("E%s", e.Inner) }
func (e Exist) Key() string    { return "E" + e.Inner.Key() }

// Next is the path operator "at the very next state".
type Next struct {
	Inner Formula
}

func (n Next) String() string { return fmt.Sprintf("X%s", n.Inner) }
func (n Next) Key() string    { return "X" + n.Inner.Key() }

// Finally is the path operator "eventually".
type Finally struct {
	Inner Formula
}

func (f Finally) String() string { return fmt.Sprintf("F%s", f.Inner) }
func (f Finally) Key() string    { return "F" + f.Inner.Key() }

// Globally is the path operator "forever".
type Globally struct {
	Inner Formula
}

func (g Globally) String() string { return fmt.Sprintf("G%s", g.Inner) }
func (g Globally) Key() string    { return "G" + g.Inner.Key() }

// Until is the path operator "left holds until right does".
type Until struct {
	Left, Right Formula
}

func (u Until) String() string { return fmt.Sprintf("(%s U %s)", u.Left, u.Right) }
func (u Until) Key() string    { return "(" + u.Left.Key() + "U" + u.Right.Key() + ")" }

// Release is the path operator dual to Until: "right holds until and
// including the point, if any, where left becomes true".
type Release struct {
	Left, Right Formula
}

func (r Release) String() string { return fmt.Sprintf("(%s R %s)", r.Left, r.Right) }
func (r Release) Key() string    { return "(" + r.Left.Key() + "R" + r.Right.Key() + ")" }
