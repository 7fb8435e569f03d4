// Package suite loads and runs batches of CTL checks described in a TOML
// file, in the style of the example pack's TOML-based resource formats
// (dekarrin-tunaq's tqw package): a small [format/type] header plus a body
// of typed tables, decoded with BurntSushi/toml.
package suite

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rfielding/ctlcheck/checker"
	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/ctlerr"
	"github.com/rfielding/ctlcheck/kripke"
)

// Check is one named formula to evaluate against the suite's model.
type Check struct {
	Name    string `toml:"name"`
	Formula string `toml:"formula"`
}

// Suite is a batch of checks against a single model file.
type Suite struct {
	ModelPath string  `toml:"model"`
	Checks    []Check `toml:"check"`
}

// doc mirrors the on-disk TOML shape. TOML arrays-of-tables under [[check]]
// decode into Checks directly.
type doc struct {
	Model string  `toml:"model"`
	Check []Check `toml:"check"`
}

// Load reads a suite definition from path.
func Load(path string) (*Suite, error) {
	var d doc
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return nil, ctlerr.ModelLoad(fmt.Errorf("decoding suite %s: %w", path, err))
	}
	if d.Model == "" {
		return nil, ctlerr.ModelLoad(fmt.Errorf("suite %s: missing \"model\" key", path))
	}
	return &Suite{ModelPath: d.Model, Checks: d.Check}, nil
}

// Result is the outcome of one named check.
type Result struct {
	Name     string
	Formula  string
	Sat      []kripke.StateID
	Warnings []string
	Err      error
}

// Run loads the suite's model once, then evaluates every check against it
// under one CheckSession, so the session's accumulated Metrics cover the
// whole batch. It does not stop at the first failing check; each Result
// carries its own error.
func (s *Suite) Run(ctx context.Context) ([]Result, *checker.CheckSession, error) {
	f, err := os.Open(s.ModelPath)
	if err != nil {
		return nil, nil, ctlerr.ModelLoad(fmt.Errorf("opening model %s: %w", s.ModelPath, err))
	}
	defer f.Close()

	m, err := kripke.LoadModel(f)
	if err != nil {
		return nil, nil, err
	}

	session, err := checker.NewSession()
	if err != nil {
		return nil, nil, err
	}

	results := make([]Result, 0, len(s.Checks))
	for _, c := range s.Checks {
		if err := ctx.Err(); err != nil {
			return results, session, err
		}
		results = append(results, s.runOne(m, session, c))
	}
	return results, session, nil
}

func (s *Suite) runOne(m *kripke.Model, session *checker.CheckSession, c Check) Result {
	formula, warnings, err := ctl.Parse(c.Formula)
	if err != nil {
		return Result{Name: c.Name, Formula: c.Formula, Warnings: warnings, Err: err}
	}
	id, err := session.Check(m, formula)
	if err != nil {
		return Result{Name: c.Name, Formula: c.Formula, Warnings: warnings, Err: err}
	}
	return Result{Name: c.Name, Formula: c.Formula, Sat: m.Extension(id), Warnings: warnings}
}
