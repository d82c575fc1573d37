package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lpsleuth/lpsleuth/mip"
)

func TestCheckBoundsConflict(t *testing.T) {
	m := mip.NewModel("conflict")
	x := m.AddVariable("x")
	x.SetBounds(2, 1)

	bounds, integrality, intervals := CheckBounds(m.Variables())

	assert.Equal(t, []InfeasibleBounds{{Variable: x, Lb: 2, Ub: 1}}, bounds)
	assert.Empty(t, integrality)

	// the interval of a conflicting variable is undefined downstream.
	_, ok := intervals[x]
	assert.False(t, ok)
}

func TestCheckBoundsIntegrality(t *testing.T) {
	m := mip.NewModel("integrality")
	x := m.AddIntegerVariable("x")
	x.SetBounds(2.2, 2.9)

	bounds, integrality, _ := CheckBounds(m.Variables())

	assert.Empty(t, bounds)
	assert.Equal(t, []InfeasibleIntegrality{{Variable: x, Lb: 2.2, Ub: 2.9, Kind: KindInteger}}, integrality)
}

func TestCheckBoundsBinary(t *testing.T) {
	m := mip.NewModel("binary")
	b := m.AddBinaryVariable("b")
	b.SetBounds(0.2, 0.9)

	_, integrality, _ := CheckBounds(m.Variables())

	// the integer and binary rules fire independently, so a squeezed
	// binary reports both kinds.
	kinds := make(map[IntegralityKind]bool)
	for _, is := range integrality {
		kinds[is.Kind] = true
		assert.Equal(t, b, is.Variable)
		assert.Equal(t, 0.2, is.Lb)
		assert.Equal(t, 0.9, is.Ub)
	}
	assert.True(t, kinds[KindBinary])
	assert.True(t, kinds[KindInteger])
}

func TestCheckBoundsClean(t *testing.T) {
	m := mip.NewModel("clean")
	x := m.AddVariable("x")
	x.SetBounds(0, 10)
	y := m.AddIntegerVariable("y")
	y.SetBounds(2, 4)
	z := m.AddVariable("z")
	z.Fix(3.5)

	bounds, integrality, intervals := CheckBounds(m.Variables())

	assert.Empty(t, bounds)
	assert.Empty(t, integrality)
	assert.Equal(t, Interval{0, 10}, intervals[x])
	assert.Equal(t, Interval{2, 4}, intervals[y])

	// a fixed value counts as both bounds.
	assert.Equal(t, Interval{3.5, 3.5}, intervals[z])
}

func TestCheckBoundsIdempotent(t *testing.T) {
	m := mip.NewModel("idempotent")
	m.AddVariable("x").SetBounds(2, 1)
	y := m.AddIntegerVariable("y")
	y.SetBounds(1.2, 1.8)

	b1, i1, iv1 := CheckBounds(m.Variables())
	b2, i2, iv2 := CheckBounds(m.Variables())

	assert.Equal(t, b1, b2)
	assert.Equal(t, i1, i2)
	assert.Equal(t, iv1, iv2)
}
