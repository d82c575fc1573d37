package mip

import "errors"

// ErrNoSolver is returned by Optimize when no solver is attached.
var ErrNoSolver = errors.New("mip: no solver attached to model")

// Result is what a solver hands back for one solve.
type Result struct {
	Status Status

	// Objective and Values are only meaningful for StatusOptimal and
	// StatusDegenerate. Values is indexed like Model.Variables().
	Objective float64
	Values    []float64
}

// Solver solves a model. Implementations read the model through its
// accessors and must not mutate it.
type Solver interface {
	Solve(m *Model) (Result, error)
}

// SetSolver attaches a solver to the model for subsequent Optimize calls.
func (m *Model) SetSolver(s Solver) { m.solver = s }

// SetQuiet silences diagnostic output of solves on this model.
func (m *Model) SetQuiet(quiet bool) { m.quiet = quiet }

// Quiet reports whether solver output should be suppressed.
func (m *Model) Quiet() bool { return m.quiet }

// Optimize runs the attached solver and records the resulting status and
// variable values on the model. A definite infeasible or unbounded verdict
// is a successful solve, not an error; errors indicate the solver itself
// could not conclude.
func (m *Model) Optimize() error {
	if m.solver == nil {
		return ErrNoSolver
	}

	res, err := m.solver.Solve(m)
	if err != nil {
		m.status = StatusFailed
		return err
	}

	m.status = res.Status
	m.objValue = res.Objective

	if len(res.Values) == len(m.vars) {
		for i, v := range m.vars {
			v.value = res.Values[i]
			v.hasValue = true
		}
	}
	return nil
}
