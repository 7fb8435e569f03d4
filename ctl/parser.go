package ctl

import (
	"fmt"

	"github.com/rfielding/ctlcheck/ctlerr"
)

// ParseError reports a malformed CTL formula, carrying the byte position in
// the source where the problem was detected (spec.md §7: "Parse and load
// errors are surfaced to the caller with diagnostic location").
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ctl: parse error at byte %d: %s", e.Pos, e.Message)
}

// Unwrap lets errors.Is(err, ctlerr.ErrParse) succeed for any ParseError.
func (e *ParseError) Unwrap() error { return ctlerr.ErrParse }

// Binding powers for the precedence-climbing parser. Higher binds tighter.
// From spec.md §4.3, lowest to highest: {&&,||,->} < {U,W,R} < {A,E} < {!,X,F,G}.
const (
	bpPropositional = 10 // &&, ||, -> (left-associative)
	bpTemporalInfix = 20 // U, W, R (right-associative)
	bpQuantifier    = 30 // A, E
	bpUnaryTemporal = 40 // !, X, F, G
)

type parser struct {
	toks     []token
	pos      int
	warnings []string
}

// Parse reads src as a CTL formula per the grammar in spec.md §4.3. It
// returns the parsed Formula, any non-fatal warnings (currently only
// doubled-quantifier collapses such as "AA" or "EE"), and an error if the
// input is malformed.
func Parse(src string) (Formula, []string, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{toks: toks}
	f, err := p.parseExpr(0)
	if err != nil {
		return nil, nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, nil, &ParseError{Pos: p.cur().pos, Message: fmt.Sprintf("unexpected trailing %s", p.cur().kind)}
	}
	if err := validateWellFormed(f, false); err != nil {
		return nil, nil, err
	}
	return f, p.warnings, nil
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseExpr implements precedence climbing: it parses a primary (possibly
// prefixed) term, then repeatedly consumes infix operators whose binding
// power is at least minBP, combining as it goes.
func (p *parser) parseExpr(minBP int) (Formula, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		kind := p.cur().kind
		bp, rightAssoc, ok := infixInfo(kind)
		if !ok || bp < minBP {
			return left, nil
		}
		opTok := p.advance()
		nextMinBP := bp + 1
		if rightAssoc {
			nextMinBP = bp
		}
		right, err := p.parseExpr(nextMinBP)
		if err != nil {
			return nil, err
		}
		left, err = combineInfix(opTok, left, right)
		if err != nil {
			return nil, err
		}
	}
}

func infixInfo(k tokenKind) (bp int, rightAssoc bool, ok bool) {
	switch k {
	case tokAnd, tokOr, tokImplies:
		return bpPropositional, false, true
	case tokUntil, tokWeakUntil, tokRelease:
		return bpTemporalInfix, true, true
	default:
		return 0, false, false
	}
}

func combineInfix(op token, left, right Formula) (Formula, error) {
	switch op.kind {
	case tokAnd:
		return And{Left: left, Right: right}, nil
	case tokOr:
		return Or{Left: left, Right: right}, nil
	case tokImplies:
		// a -> b desugars immediately to ¬a ∨ b (spec.md §4.3, Decided
		// Open Question 2).
		return Or{Left: Not{Inner: left}, Right: right}, nil
	case tokUntil:
		return Until{Left: left, Right: right}, nil
	case tokRelease:
		return Release{Left: left, Right: right}, nil
	case tokWeakUntil:
		return nil, &ParseError{Pos: op.pos, Message: "weak-until ('W') is reserved and not implemented"}
	default:
		return nil, &ParseError{Pos: op.pos, Message: "unexpected infix operator"}
	}
}

// parsePrimary parses an atom, a parenthesized group, or a prefix-operator
// application (¬, X, F, G, A, E).
func (p *parser) parsePrimary() (Formula, error) {
	t := p.cur()
	switch t.kind {
	case tokTrue:
		p.advance()
		return True{}, nil
	case tokIdent:
		p.advance()
		return Atomic{Name: t.text}, nil
	case tokLParen:
		p.advance()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, &ParseError{Pos: p.cur().pos, Message: "expected ')'"}
		}
		p.advance()
		return inner, nil
	case tokNot:
		p.advance()
		inner, err := p.parseExpr(bpUnaryTemporal)
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil
	case tokNext:
		p.advance()
		inner, err := p.parseExpr(bpUnaryTemporal)
		if err != nil {
			return nil, err
		}
		return Next{Inner: inner}, nil
	case tokFinally:
		p.advance()
		inner, err := p.parseExpr(bpUnaryTemporal)
		if err != nil {
			return nil, err
		}
		return Finally{Inner: inner}, nil
	case tokGlobally:
		p.advance()
		inner, err := p.parseExpr(bpUnaryTemporal)
		if err != nil {
			return nil, err
		}
		return Globally{Inner: inner}, nil
	case tokAll:
		p.advance()
		rhs, err := p.parseExpr(bpQuantifier)
		if err != nil {
			return nil, err
		}
		return p.wrapAll(t.pos, rhs)
	case tokExist:
		p.advance()
		rhs, err := p.parseExpr(bpQuantifier)
		if err != nil {
			return nil, err
		}
		return p.wrapExist(t.pos, rhs)
	case tokEOF:
		return nil, &ParseError{Pos: t.pos, Message: "unexpected end of formula"}
	default:
		return nil, &ParseError{Pos: t.pos, Message: fmt.Sprintf("unexpected %s", t.kind)}
	}
}

// wrapAll implements the "A" path quantifier's well-formedness rule from
// spec.md §4.3: its argument must be exactly one temporal operator. A
// doubled "AA" collapses with a recorded warning; "AE" is a hard error.
func (p *parser) wrapAll(pos int, rhs Formula) (Formula, error) {
	switch rhs.(type) {
	case All:
		p.warnings = append(p.warnings, "repeated path quantifier 'AA' collapsed to 'A'")
		return rhs, nil
	case Exist:
		return nil, &ParseError{Pos: pos, Message: "cannot mix path quantifiers ('AE')"}
	case Next, Finally, Globally, Until, Release:
		return All{Inner: rhs}, nil
	default:
		return nil, &ParseError{Pos: pos, Message: "path quantifier 'A' must be followed by a temporal operator"}
	}
}

func (p *parser) wrapExist(pos int, rhs Formula) (Formula, error) {
	switch rhs.(type) {
	case Exist:
		p.warnings = append(p.warnings, "repeated path quantifier 'EE' collapsed to 'E'")
		return rhs, nil
	case All:
		return nil, &ParseError{Pos: pos, Message: "cannot mix path quantifiers ('EA')"}
	case Next, Finally, Globally, Until, Release:
		return Exist{Inner: rhs}, nil
	default:
		return nil, &ParseError{Pos: pos, Message: "path quantifier 'E' must be followed by a temporal operator"}
	}
}

// validateWellFormed walks the full tree rejecting any temporal operator
// (Next, Finally, Globally, Until, Release) that is not the immediate
// argument of a path quantifier (All/Exist) -- spec.md §9 Open Question 1,
// decided: reject rather than implicitly quantify.
func validateWellFormed(f Formula, quantified bool) error {
	switch n := f.(type) {
	case True, Atomic:
		return nil
	case Not:
		return validateWellFormed(n.Inner, false)
	case And:
		if err := validateWellFormed(n.Left, false); err != nil {
			return err
		}
		return validateWellFormed(n.Right, false)
	case Or:
		if err := validateWellFormed(n.Left, false); err != nil {
			return err
		}
		return validateWellFormed(n.Right, false)
	case All:
		return validateWellFormed(n.Inner, true)
	case Exist:
		return validateWellFormed(n.Inner, true)
	case Next:
		if !quantified {
			return &ParseError{Message: "'X' used without a preceding path quantifier"}
		}
		return validateWellFormed(n.Inner, false)
	case Finally:
		if !quantified {
			return &ParseError{Message: "'F' used without a preceding path quantifier"}
		}
		return validateWellFormed(n.Inner, false)
	case Globally:
		if !quantified {
			return &ParseError{Message: "'G' used without a preceding path quantifier"}
		}
		return validateWellFormed(n.Inner, false)
	case Until:
		if !quantified {
			return &ParseError{Message: "'U' used without a preceding path quantifier"}
		}
		if err := validateWellFormed(n.Left, false); err != nil {
			return err
		}
		return validateWellFormed(n.Right, false)
	case Release:
		if !quantified {
			return &ParseError{Message: "'R' used without a preceding path quantifier"}
		}
		if err := validateWellFormed(n.Left, false); err != nil {
			return err
		}
		return validateWellFormed(n.Right, false)
	default:
		return nil
	}
}
