package checker

import (
	"github.com/google/uuid"

	"github.com/rfielding/ctlcheck/ctl"
	"github.com/rfielding/ctlcheck/kripke"
)

// CheckSession groups one or more Check calls against the same model under
// a single correlation id and a shared counter set, the way the example
// pack's server layer tags a unit of work with a uuid.UUID for log
// correlation (see dekarrin-tunaq's session store). The id has no effect on
// Sat; it exists purely so a caller can line up log lines and the metrics
// table with one invocation of the session.
type CheckSession struct {
	ID      uuid.UUID
	Metrics *Metrics
}

// NewSession allocates a fresh correlation id and an empty counter set.
func NewSession() (*CheckSession, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	return &CheckSession{ID: id, Metrics: NewMetrics()}, nil
}

// Check labels m for f, accumulating into the session's shared Metrics so
// that checking several formulas against the same model under one session
// yields one combined counters table.
func (s *CheckSession) Check(m *kripke.Model, f ctl.Formula) (kripke.LabelID, error) {
	return CheckWithMetrics(m, f, s.Metrics)
}

// Report renders the session id and its accumulated counters as markdown,
// suitable for appending to a diagnostics.Report.
func (s *CheckSession) Report() string {
	return "session " + s.ID.String() + "\n\n" + s.Metrics.Table()
}
