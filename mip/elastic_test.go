package mip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElasticizeInequalities(t *testing.T) {
	testdata := []struct {
		name    string
		sense   Sense
		wantDir ReliefDir
		wantLb  float64
		wantUb  float64
		objCoef float64
	}{
		{"less than", LessThan, ReliefDown, math.Inf(-1), 0, -2},
		{"greater than", GreaterThan, ReliefUp, 0, math.Inf(1), 2},
	}

	for _, td := range testdata {
		t.Run(td.name, func(t *testing.T) {
			m := NewModel("elastic")
			x := m.AddVariable("x")
			c := m.AddConstraint("c", LinExpr{Terms: []Term{{Coef: 1, Var: x}}}, td.sense, 5)

			relief := m.Elasticize(c, 2)

			require.Len(t, relief.Slacks, 1)
			assert.Equal(t, []ReliefDir{td.wantDir}, relief.Dirs)
			assert.Equal(t, c, relief.Con)

			slack := relief.Slacks[0]
			lb, ub := slack.Bounds()
			assert.Equal(t, td.wantLb, lb)
			assert.Equal(t, td.wantUb, ub)

			// the slack joins the constraint expression with unit coefficient
			// and the objective with the signed penalty.
			assert.Len(t, c.Expr().Terms, 2)
			assert.Equal(t, Term{Coef: 1, Var: slack}, c.Expr().Terms[1])

			obj, maximize := m.Objective()
			assert.False(t, maximize)
			require.Len(t, obj.Terms, 1)
			assert.Equal(t, Term{Coef: td.objCoef, Var: slack}, obj.Terms[0])
		})
	}
}

func TestElasticizeEquality(t *testing.T) {
	m := NewModel("elastic")
	x := m.AddVariable("x")
	c := m.AddConstraint("bal", LinExpr{Terms: []Term{{Coef: 1, Var: x}}}, EqualTo, 5)

	relief := m.Elasticize(c, 1)

	require.Len(t, relief.Slacks, 2)
	assert.Equal(t, []ReliefDir{ReliefUp, ReliefDown}, relief.Dirs)
	assert.Equal(t, "bal_relief_up", relief.Slacks[0].Name())
	assert.Equal(t, "bal_relief_down", relief.Slacks[1].Name())
	assert.Len(t, c.Expr().Terms, 3)

	obj, _ := m.Objective()
	require.Len(t, obj.Terms, 2)
	assert.Equal(t, 1.0, obj.Terms[0].Coef)
	assert.Equal(t, -1.0, obj.Terms[1].Coef)
}

func TestReliefActive(t *testing.T) {
	m := NewModel("active")
	x := m.AddVariable("x")
	c := m.AddConstraint("bal", LinExpr{Terms: []Term{{Coef: 1, Var: x}}}, EqualTo, 5)
	relief := m.Elasticize(c, 1)

	// x, up slack, down slack: only the up slack exceeds the tolerance.
	m.SetSolver(&stubSolver{res: Result{
		Status: StatusOptimal,
		Values: []float64{2, 3, -1e-9},
	}})
	require.NoError(t, m.Optimize())

	assert.Equal(t, []int{0}, relief.Active(1e-5))
	assert.Empty(t, relief.Active(10))
}

func TestReliefDrop(t *testing.T) {
	m := NewModel("drop")
	x := m.AddVariable("x")
	c := m.AddConstraint("bal", LinExpr{Terms: []Term{{Coef: 1, Var: x}}}, EqualTo, 5)
	relief := m.Elasticize(c, 1)

	down := relief.Slacks[1]
	relief.Drop(0)

	require.Len(t, relief.Slacks, 1)
	assert.Equal(t, down, relief.Slacks[0])
	assert.Equal(t, []ReliefDir{ReliefDown}, relief.Dirs)
}

func TestReliefBounds(t *testing.T) {
	lb, ub := ReliefBounds(ReliefUp)
	assert.Equal(t, 0.0, lb)
	assert.True(t, math.IsInf(ub, 1))

	lb, ub = ReliefBounds(ReliefDown)
	assert.True(t, math.IsInf(lb, -1))
	assert.Equal(t, 0.0, ub)
}
