package kripke

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rfielding/ctlcheck/ctlerr"
)

func Test_LoadModel_valid_document(t *testing.T) {
	assert := assert.New(t)

	doc := `{
		"states": [
			{"id": 0, "name": "idle", "labels": ["p"], "transit_to": [1]},
			{"id": 1, "name": "busy", "labels": ["q", "p"], "transit_to": [0]}
		],
		"initial_state": 0
	}`

	m, err := LoadModel(strings.NewReader(doc))
	if !assert.NoError(err) {
		return
	}

	assert.Equal(2, m.NumStates())
	assert.Equal(StateID(0), m.Initial())
	assert.ElementsMatch([]StateID{1}, m.Successors(0))
	assert.ElementsMatch([]StateID{0}, m.Successors(1))

	pID, ok := m.LookupLabel("p")
	if !assert.True(ok) {
		return
	}
	assert.ElementsMatch([]StateID{0, 1}, m.Extension(pID))

	qID, ok := m.LookupLabel("q")
	if !assert.True(ok) {
		return
	}
	assert.ElementsMatch([]StateID{1}, m.Extension(qID))
}

func Test_LoadModel_rejects_dangling_transition(t *testing.T) {
	assert := assert.New(t)

	doc := `{
		"states": [{"id": 0, "name": "only", "labels": [], "transit_to": [7]}],
		"initial_state": 0
	}`

	_, err := LoadModel(strings.NewReader(doc))
	assert.Error(err)
	assert.True(errors.Is(err, ctlerr.ErrModelLoad))
}

func Test_LoadModel_rejects_undeclared_initial_state(t *testing.T) {
	assert := assert.New(t)

	doc := `{
		"states": [{"id": 0, "name": "only", "labels": [], "transit_to": []}],
		"initial_state": 9
	}`

	_, err := LoadModel(strings.NewReader(doc))
	assert.Error(err)
	assert.True(errors.Is(err, ctlerr.ErrModelLoad))
}

func Test_LoadModel_rejects_duplicate_state_ids(t *testing.T) {
	assert := assert.New(t)

	doc := `{
		"states": [
			{"id": 0, "name": "a", "labels": [], "transit_to": []},
			{"id": 0, "name": "b", "labels": [], "transit_to": []}
		],
		"initial_state": 0
	}`

	_, err := LoadModel(strings.NewReader(doc))
	assert.Error(err)
	assert.True(errors.Is(err, ctlerr.ErrModelLoad))
}

func Test_LoadModel_rejects_malformed_json(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadModel(strings.NewReader("{not json"))
	assert.Error(err)
	assert.True(errors.Is(err, ctlerr.ErrModelLoad))
}
