package lpfile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpsleuth/lpsleuth/mip"
)

func TestParseModel(t *testing.T) {
	src := `
/* a small mixed model */
max: 3x + 2y - z;
c1: x + y <= 4;
c2: x + 3y <= 6;  // crowding
x <= 3;
z >= -2;
int x;
free z;
`
	m, err := Parse(strings.NewReader(src), "small")
	require.NoError(t, err)

	assert.Equal(t, "small", m.Name())
	require.Len(t, m.Variables(), 3)

	byName := make(map[string]*mip.Variable)
	for _, v := range m.Variables() {
		byName[v.Name()] = v
	}

	x, y, z := byName["x"], byName["y"], byName["z"]
	require.NotNil(t, x)
	require.NotNil(t, y)
	require.NotNil(t, z)

	// unnamed single-variable rows fold into bounds.
	lb, ub := x.Bounds()
	assert.Equal(t, 0.0, lb)
	assert.Equal(t, 3.0, ub)
	assert.True(t, x.Integer())

	// default lp_solve bounds.
	lb, ub = y.Bounds()
	assert.Equal(t, 0.0, lb)
	assert.True(t, math.IsInf(ub, 1))

	// free lifts the lower bound after the z >= -2 row set it.
	lb, ub = z.Bounds()
	assert.True(t, math.IsInf(lb, -1))
	assert.True(t, math.IsInf(ub, 1))

	require.Len(t, m.Constraints(), 2)
	c1 := m.Constraints()[0]
	assert.Equal(t, "c1", c1.Name())
	assert.Equal(t, mip.LessThan, c1.Sense())
	assert.Equal(t, 4.0, c1.RHS())
	require.Len(t, c1.Expr().Terms, 2)
	assert.Equal(t, 1.0, c1.Expr().Terms[0].Coef)
	assert.Same(t, x, c1.Expr().Terms[0].Var)

	obj, maximize := m.Objective()
	assert.True(t, maximize)
	require.Len(t, obj.Terms, 3)
	assert.Equal(t, 3.0, obj.Terms[0].Coef)
	assert.Equal(t, -1.0, obj.Terms[2].Coef)
}

func TestParseBinaryAndCoefStar(t *testing.T) {
	src := `
min: 2*x + 1.5 y;
pick: x + y >= 1;
bin x, y;
`
	m, err := Parse(strings.NewReader(src), "bin")
	require.NoError(t, err)

	for _, v := range m.Variables() {
		assert.True(t, v.Binary(), v.Name())
		lb, ub := v.Bounds()
		assert.Equal(t, 0.0, lb)
		assert.Equal(t, 1.0, ub)
	}

	obj, maximize := m.Objective()
	assert.False(t, maximize)
	assert.Equal(t, 2.0, obj.Terms[0].Coef)
	assert.Equal(t, 1.5, obj.Terms[1].Coef)
}

func TestParseMovesRHSTermsLeft(t *testing.T) {
	src := `c: 2x + 1 <= x + 5;`

	m, err := Parse(strings.NewReader(src), "move")
	require.NoError(t, err)

	require.Len(t, m.Constraints(), 1)
	c := m.Constraints()[0]

	// 2x + 1 <= x + 5 normalizes to 2x - x <= 4.
	require.Len(t, c.Expr().Terms, 2)
	assert.Equal(t, 2.0, c.Expr().Terms[0].Coef)
	assert.Equal(t, -1.0, c.Expr().Terms[1].Coef)
	assert.Equal(t, 0.0, c.Expr().Constant)
	assert.Equal(t, 4.0, c.RHS())
}

func TestParseNegativeCoefBoundFlipsSense(t *testing.T) {
	src := `-2x <= -6;`

	m, err := Parse(strings.NewReader(src), "flip")
	require.NoError(t, err)
	require.Len(t, m.Constraints(), 0)

	// -2x <= -6 means x >= 3.
	lb, _ := m.Variables()[0].Bounds()
	assert.Equal(t, 3.0, lb)
}

func TestParseAutoNamesRows(t *testing.T) {
	src := `
x + y <= 4;
x - y >= 1;
`
	m, err := Parse(strings.NewReader(src), "auto")
	require.NoError(t, err)

	require.Len(t, m.Constraints(), 2)
	assert.Equal(t, "R1", m.Constraints()[0].Name())
	assert.Equal(t, "R2", m.Constraints()[1].Name())
}

func TestParseErrors(t *testing.T) {
	testdata := []struct {
		name string
		src  string
	}{
		{"bad character", `c: x ? y <= 1;`},
		{"missing relation", `c: x + y;`},
		{"dangling sign", `c: x + <= 1;`},
		{"trailing input", `c: x <= 1 2;`},
		{"bad declaration", `int 4;`},
	}

	for _, td := range testdata {
		t.Run(td.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(td.src), "bad")
			assert.Error(t, err)
		})
	}
}

func TestParseFileNamesModelAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.lp")
	require.NoError(t, os.WriteFile(path, []byte(`min: x; c: x >= 1;`), 0o644))

	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "widget", m.Name())
	require.Len(t, m.Constraints(), 1)
}
