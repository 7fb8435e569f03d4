package ctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfielding/ctlcheck/ctlerr"
)

func Test_Parse_well_formed_formulas(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string // Key() of the expected tree
	}{
		{
			name:   "bare atomic requires no quantifier",
			input:  "p",
			expect: Atomic{Name: "p"}.Key(),
		},
		{
			name:   "true literal",
			input:  "true",
			expect: True{}.Key(),
		},
		{
			name:  "AG(s -> AF h), spec.md's running example",
			input: "AG(s -> AF h)",
			expect: All{Inner: Globally{Inner: Or{
				Left:  Not{Inner: Atomic{Name: "s"}},
				Right: All{Inner: Finally{Inner: Atomic{Name: "h"}}},
			}}}.Key(),
		},
		{
			name:   "EX p",
			input:  "EX p",
			expect: Exist{Inner: Next{Inner: Atomic{Name: "p"}}}.Key(),
		},
		{
			name:   "E(p U q)",
			input:  "E(p U q)",
			expect: Exist{Inner: Until{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}}}.Key(),
		},
		{
			name:   "unicode operators",
			input:  "A G (¬p ∨ q)",
			expect: All{Inner: Globally{Inner: Or{Left: Not{Inner: Atomic{Name: "p"}}, Right: Atomic{Name: "q"}}}}.Key(),
		},
		{
			name:  "U binds looser than the quantified unary operators it separates",
			input: "E(AX p U AX q)",
			expect: Exist{Inner: Until{
				Left:  All{Inner: Next{Inner: Atomic{Name: "p"}}},
				Right: All{Inner: Next{Inner: Atomic{Name: "q"}}},
			}}.Key(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			f, _, err := Parse(tc.input)
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, f.Key())
		})
	}
}

func Test_Parse_doubled_quantifiers_collapse_with_warning(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "AA", input: "AAG p"},
		{name: "EE", input: "EEX p"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			_, warnings, err := Parse(tc.input)
			assert.NoError(err)
			assert.NotEmpty(warnings)
		})
	}
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "mixed quantifiers AE", input: "AEX p"},
		{name: "mixed quantifiers EA", input: "EAX p"},
		{name: "quantifier without temporal operator", input: "A p"},
		{name: "weak until is reserved", input: "E(p W q)"},
		{name: "bare temporal operator with no quantifier", input: "X p"},
		{name: "bare until with no quantifier", input: "p U q"},
		{name: "unbalanced parens", input: "A G (p"},
		{name: "trailing garbage", input: "p q"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			_, _, err := Parse(tc.input)
			assert.Error(err)
			assert.True(errors.Is(err, ctlerr.ErrParse))
		})
	}
}

func Test_Parse_implication_desugars_to_or_not(t *testing.T) {
	assert := assert.New(t)
	f, _, err := Parse("AG(p -> q)")
	if !assert.NoError(err) {
		return
	}
	expect := All{Inner: Globally{Inner: Or{
		Left:  Not{Inner: Atomic{Name: "p"}},
		Right: Atomic{Name: "q"},
	}}}
	assert.Equal(expect.Key(), f.Key())
}
