// Package ltl holds a Linear Temporal Logic formula AST and parser. It is
// not wired into the checker: the original program carried LTL syntax
// without ever model-checking it, and this port keeps that same shape
// rather than inventing an LTL semantics the spec never asked for.
package ltl

import "fmt"

// Formula is an LTL formula node.
type Formula interface {
	String() string
}

type Atomic struct{ Name string }
type Not struct{ Inner Formula }
type And struct{ Left, Right Formula }
type Or struct{ Left, Right Formula }
type Next struct{ Inner Formula }
type Finally struct{ Inner Formula }
type Globally struct{ Inner Formula }
type Until struct{ Left, Right Formula }

func (f Atomic) String() string   { return f.Name }
func (f Not) String() string      { return "¬" + f.Inner.String() }
func (f And) String() string      { return fmt.Sprintf("(%s ∧ %s)", f.Left, f.Right) }
func (f Or) String() string       { return fmt.Sprintf("(%s ∨ %s)", f.Left, f.Right) }
func (f Next) String() string     { return "X" + f.Inner.String() }
func (f Finally) String() string  { return "F" + f.Inner.String() }
func (f Globally) String() string { return "G" + f.Inner.String() }
func (f Until) String() string    { return fmt.Sprintf("(%s U %s)", f.Left, f.Right) }
