package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsleuth/lpsleuth/mip"
	"github.com/lpsleuth/lpsleuth/solve"
)

// spySolver counts solves so tests can verify that the cheap layers
// short-circuit before any solver work happens.
type spySolver struct {
	calls int
	inner mip.Solver
}

func (s *spySolver) Solve(m *mip.Model) (mip.Result, error) {
	s.calls++
	return s.inner.Solve(m)
}

func TestCascadeStopsAtBounds(t *testing.T) {
	m := mip.NewModel("bounds")
	x := m.AddVariable("x")
	x.SetBounds(2, 1)
	m.AddConstraint("c", mip.LinExpr{Terms: []mip.Term{{Coef: 1, Var: x}}}, mip.LessThan, 0)

	spy := &spySolver{inner: solve.NewSimplex()}
	res, err := Run(m, spy)
	require.NoError(t, err)

	assert.Len(t, res.Bounds, 1)
	assert.Empty(t, res.Ranges)
	assert.Empty(t, res.IIS)
	assert.False(t, res.Clean())
	assert.Zero(t, spy.calls)
}

func TestCascadeStopsAtRanges(t *testing.T) {
	m := mip.NewModel("ranges")
	x := m.AddVariable("x")
	x.SetBounds(10, 11)
	y := m.AddVariable("y")
	y.SetBounds(1, 11)
	m.AddConstraint("c", mip.LinExpr{Terms: []mip.Term{
		{Coef: 1, Var: x},
		{Coef: 1, Var: y},
	}}, mip.LessThan, 1)

	spy := &spySolver{inner: solve.NewSimplex()}
	res, err := Run(m, spy)
	require.NoError(t, err)

	assert.Empty(t, res.Bounds)
	assert.Len(t, res.Ranges, 1)
	assert.Empty(t, res.IIS)
	assert.Zero(t, spy.calls)
}

func TestCascadeReachesIIS(t *testing.T) {
	m, cons := conflictingPairModel()
	solver := solve.NewSimplex()
	m.SetSolver(solver)
	m.SetQuiet(true)
	require.NoError(t, m.Optimize())

	res, err := Run(m, solver)
	require.NoError(t, err)

	assert.Empty(t, res.Bounds)
	assert.Empty(t, res.Integrality)
	assert.Empty(t, res.Ranges)
	require.Len(t, res.IIS, 1)
	assert.Len(t, res.IIS[0].Constraints, 2)
	assert.Contains(t, res.IIS[0].Constraints, cons[0])
	assert.Contains(t, res.IIS[0].Constraints, cons[1])
	assert.False(t, res.Clean())
}

func TestCascadeNilSolver(t *testing.T) {
	m, _ := conflictingPairModel()

	res, err := Run(m, nil)
	require.NoError(t, err)

	assert.Empty(t, res.IIS)
	assert.Contains(t, res.Note, "no solver")
}

func TestCascadeUnconfirmedInfeasibility(t *testing.T) {
	// the model is clean at the bound and range layers and was never
	// solved, so the IIS layer refuses to run.
	m, _ := conflictingPairModel()

	res, err := Run(m, solve.NewSimplex())
	require.NoError(t, err)

	assert.Empty(t, res.IIS)
	assert.Contains(t, res.Note, "not solver-confirmed")
}

func TestCascadeCleanModel(t *testing.T) {
	m := mip.NewModel("clean")
	x := m.AddVariable("x")
	x.SetBounds(0, 10)
	m.AddConstraint("c", mip.LinExpr{Terms: []mip.Term{{Coef: 1, Var: x}}}, mip.LessThan, 5)

	solver := solve.NewSimplex()
	m.SetSolver(solver)
	m.SetQuiet(true)
	require.NoError(t, m.Optimize())

	res, err := Run(m, solver)
	require.NoError(t, err)
	assert.True(t, res.Clean())
	assert.Contains(t, res.Note, "not solver-confirmed")
}
