package ctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Formula_Key(t *testing.T) {
	testCases := []struct {
		name   string
		input  Formula
		expect string
	}{
		{
			name:   "true",
			input:  True{},
			expect: "true",
		},
		{
			name:   "atomic",
			input:  Atomic{Name: "p"},
			expect: "p",
		},
		{
			name:   "negation",
			input:  Not{Inner: Atomic{Name: "p"}},
			expect: "!p",
		},
		{
			name:   "conjunction",
			input:  And{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}},
			expect: "(p&&q)",
		},
		{
			name:   "disjunction",
			input:  Or{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}},
			expect: "(p||q)",
		},
		{
			name:   "exist next",
			input:  Exist{Inner: Next{Inner: Atomic{Name: "p"}}},
			expect: "EXp",
		},
		{
			name:   "all globally",
			input:  All{Inner: Globally{Inner: Atomic{Name: "p"}}},
			expect: "AGp",
		},
		{
			name:   "exist until",
			input:  Exist{Inner: Until{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}}},
			expect: "E(pUq)",
		},
		{
			name:   "release",
			input:  Release{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}},
			expect: "(pRq)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.input.Key())
		})
	}
}

func Test_Formula_Key_distinguishes_distinct_shapes(t *testing.T) {
	assert := assert.New(t)

	a := And{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}}
	b := Or{Left: Atomic{Name: "p"}, Right: Atomic{Name: "q"}}

	assert.NotEqual(a.Key(), b.Key())
}
