package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lpsleuth/lpsleuth/diagnose"
	"github.com/lpsleuth/lpsleuth/feascheck"
	"github.com/lpsleuth/lpsleuth/mip"
	"github.com/lpsleuth/lpsleuth/numerics"
)

func render(fn func(r *Renderer, w *bytes.Buffer)) string {
	var buf bytes.Buffer
	fn(&Renderer{}, &buf)
	return buf.String()
}

func TestDiagnosisRendersBounds(t *testing.T) {
	m := mip.NewModel("m")
	x := m.AddVariable("x")
	x.SetBounds(2, 1)

	res := &diagnose.Result{Bounds: []diagnose.InfeasibleBounds{{Variable: x, Lb: 2, Ub: 1}}}

	out := render(func(r *Renderer, w *bytes.Buffer) { r.Diagnosis(w, "m", res) })
	assert.Contains(t, out, "diagnosis for m")
	assert.Contains(t, out, "conflicting bounds")
	assert.Contains(t, out, "x: lower bound 2 exceeds upper bound 1")
}

func TestDiagnosisRendersIIS(t *testing.T) {
	m := mip.NewModel("m")
	x := m.AddVariable("x")
	c1 := m.AddConstraint("c1", mip.LinExpr{Terms: []mip.Term{{Coef: 1, Var: x}}}, mip.GreaterThan, 10)
	c2 := m.AddConstraint("c2", mip.LinExpr{Terms: []mip.Term{{Coef: 1, Var: x}}}, mip.LessThan, 5)

	res := &diagnose.Result{IIS: []diagnose.IrreducibleInfeasibleSubset{
		{Constraints: []*mip.Constraint{c1, c2}},
	}}

	out := render(func(r *Renderer, w *bytes.Buffer) { r.Diagnosis(w, "m", res) })
	assert.Contains(t, out, "irreducible infeasible subset (2 constraints)")
	assert.Contains(t, out, "c1: x >= 10")
	assert.Contains(t, out, "c2: x <= 5")
	assert.Contains(t, out, "removing any single one")
}

func TestDiagnosisRendersCleanWithNote(t *testing.T) {
	res := &diagnose.Result{Note: "IIS search skipped: no solver supplied"}

	out := render(func(r *Renderer, w *bytes.Buffer) { r.Diagnosis(w, "m", res) })
	assert.Contains(t, out, "no infeasibility cause found")
	assert.Contains(t, out, "note: IIS search skipped")
}

func TestDiagnosisPlainOutputHasNoANSI(t *testing.T) {
	res := &diagnose.Result{}
	out := render(func(r *Renderer, w *bytes.Buffer) { r.Diagnosis(w, "m", res) })
	assert.False(t, strings.Contains(out, "\x1b["), "uncolored output must carry no escape codes")
}

func TestNumericsRendering(t *testing.T) {
	m := mip.NewModel("stats")
	x := m.AddVariable("x")
	x.SetBounds(0, 10)
	m.AddConstraint("c", mip.LinExpr{Terms: []mip.Term{{Coef: 1e10, Var: x}}}, mip.LessThan, 1)

	out := render(func(r *Renderer, w *bytes.Buffer) { r.Numerics(w, numerics.Analyze(m)) })
	assert.Contains(t, out, "numerical summary for stats")
	assert.Contains(t, out, "variables:   1")
	assert.Contains(t, out, "constraints: 1")
	assert.Contains(t, out, "very large coefficient 1e+10 on x in c")

	// the objective is empty, rendered as such.
	assert.Contains(t, out, "no finite nonzero coefficients")
}

func TestFeasibilityRendering(t *testing.T) {
	m := mip.NewModel("m")
	x := m.AddIntegerVariable("x")
	x.SetBounds(0, 3)
	m.AddConstraint("cap", mip.LinExpr{Terms: []mip.Term{{Coef: 1, Var: x}}}, mip.LessThan, 4)

	rep := (&feascheck.Checker{}).CheckPoint(m, map[*mip.Variable]float64{x: 4.5})
	out := render(func(r *Renderer, w *bytes.Buffer) { r.Feasibility(w, "m", rep) })

	assert.Contains(t, out, "feasibility check for m")
	assert.Contains(t, out, "cap: activity 4.5 violates the constraint by 0.5")
	assert.Contains(t, out, "x = 4.5 escapes bounds [0, 3] by 1.5")
	assert.Contains(t, out, "x = 4.5 is not integral")
}

func TestFeasibilityRendersFeasiblePoint(t *testing.T) {
	m := mip.NewModel("m")
	x := m.AddVariable("x")
	x.SetBounds(0, 3)

	rep := (&feascheck.Checker{}).CheckPoint(m, map[*mip.Variable]float64{x: 1})
	out := render(func(r *Renderer, w *bytes.Buffer) { r.Feasibility(w, "m", rep) })
	assert.Contains(t, out, "point is feasible")
}
