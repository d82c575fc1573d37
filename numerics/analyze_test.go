package numerics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsleuth/lpsleuth/mip"
)

func testModel() *mip.Model {
	m := mip.NewModel("stats")
	x := m.AddVariable("x")
	x.SetBounds(0, 100)
	y := m.AddIntegerVariable("y")
	y.SetBounds(0, 10)
	b := m.AddBinaryVariable("b")
	f := m.AddVariable("f")
	f.Fix(2)

	m.SetObjective(mip.LinExpr{Terms: []mip.Term{
		{Coef: 1, Var: x},
		{Coef: -50, Var: y},
	}}, false)

	m.AddConstraint("c1", mip.LinExpr{Terms: []mip.Term{
		{Coef: 2, Var: x},
		{Coef: 0.5, Var: y},
	}}, mip.LessThan, 40)
	m.AddConstraint("c2", mip.LinExpr{Terms: []mip.Term{
		{Coef: 1, Var: x},
		{Coef: 1, Var: b},
		{Coef: 0, Var: y}, // structural zero, not a nonzero
	}}, mip.EqualTo, 5)
	m.AddConstraint("c3", mip.LinExpr{Terms: []mip.Term{
		{Coef: -3, Var: y},
	}}, mip.GreaterThan, -12)

	return m
}

func TestAnalyzeCounts(t *testing.T) {
	s := Analyze(testModel())

	assert.Equal(t, "stats", s.Name)
	assert.Equal(t, 4, s.Variables)
	assert.Equal(t, 2, s.IntegerVariables)
	assert.Equal(t, 1, s.BinaryVariables)
	assert.Equal(t, 1, s.FixedVariables)

	assert.Equal(t, 3, s.Constraints)
	assert.Equal(t, 1, s.Equalities)
	assert.Equal(t, 1, s.LessThans)
	assert.Equal(t, 1, s.GreaterThans)

	assert.Equal(t, 5, s.Nonzeros)
	assert.InDelta(t, 5.0/12.0, s.Density, 1e-12)
}

func TestAnalyzeRanges(t *testing.T) {
	s := Analyze(testModel())

	assert.False(t, s.Matrix.Empty)
	assert.Equal(t, 0.5, s.Matrix.Min)
	assert.Equal(t, 3.0, s.Matrix.Max)
	assert.InDelta(t, 6, s.Matrix.Spread(), 1e-12)

	assert.Equal(t, 1.0, s.Objective.Min)
	assert.Equal(t, 50.0, s.Objective.Max)

	assert.Equal(t, 5.0, s.RHS.Min)
	assert.Equal(t, 40.0, s.RHS.Max)

	// bounds: 100, 10, 1, 2 plus the zero lower bounds, which do not count.
	assert.Equal(t, 1.0, s.Bound.Min)
	assert.Equal(t, 100.0, s.Bound.Max)
}

func TestAnalyzeExtremes(t *testing.T) {
	m := mip.NewModel("extremes")
	x := m.AddVariable("x")
	y := m.AddVariable("y")
	c := m.AddConstraint("mix", mip.LinExpr{Terms: []mip.Term{
		{Coef: 1e-10, Var: x},
		{Coef: 1e10, Var: y},
	}}, mip.LessThan, 1)

	a := &Analyzer{}
	s := a.Analyze(m)

	require.Len(t, s.Small, 1)
	assert.Equal(t, c, s.Small[0].Constraint)
	assert.Equal(t, x, s.Small[0].Variable)

	require.Len(t, s.Large, 1)
	assert.Equal(t, y, s.Large[0].Variable)

	// wider thresholds clear both lists.
	wide := &Analyzer{SmallThreshold: 1e-12, LargeThreshold: 1e12}
	s = wide.Analyze(m)
	assert.Empty(t, s.Small)
	assert.Empty(t, s.Large)
}

func TestCoefRangeEmpty(t *testing.T) {
	m := mip.NewModel("empty")
	m.AddVariable("x")

	s := Analyze(m)
	assert.True(t, s.Matrix.Empty)
	assert.Equal(t, 1.0, s.Matrix.Spread())
	assert.Zero(t, s.Density)
}
