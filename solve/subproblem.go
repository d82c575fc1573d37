package solve

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// subProblem is one node of the branch-and-bound search: the shared standard
// form plus the cuts accumulated on the path from the root.
type subProblem struct {
	// unique identifier for the subproblem, and the id of its parent.
	id     int64
	parent int64

	// shared, read-only standard form of the root model.
	form *standardForm

	// heuristic to determine the variable to branch on. Inherited from the
	// parent and not modified.
	heuristic BranchHeuristic

	// additional inequality cuts added by branching. Each step down in the
	// search adds one.
	cuts []cut
}

// cut is a single-variable bound row added by branching: factor * x_v <= rhs.
// A ">=" branch is expressed with factor -1 and a negated right-hand side.
type cut struct {
	variable int
	factor   float64
	rhs      float64
}

func (ct cut) row(sf *standardForm) []float64 {
	row := make([]float64, sf.ncols)
	j := sf.col[ct.variable]
	row[j] = ct.factor
	row[j+1] = -ct.factor
	return row
}

// solution is the outcome of solving one subproblem. x is in model-variable
// space; raw is the internal minimization objective.
type solution struct {
	problem *subProblem
	x       []float64
	raw     float64
	err     error
}

func (p subProblem) solve(simplexTol float64) solution {
	c, aRows, b := p.form.embedInequalities(p.cuts)

	// a system with no rows at all: minimizing c over y >= 0 is either 0 at
	// the origin or unbounded.
	if len(aRows) == 0 {
		for _, ci := range c {
			if ci < 0 {
				return solution{problem: &p, err: lp.ErrUnbounded}
			}
		}
		return solution{problem: &p, x: make([]float64, p.form.nvars)}
	}

	flat := make([]float64, 0, len(aRows)*len(c))
	for _, row := range aRows {
		flat = append(flat, row...)
	}
	a := mat.NewDense(len(aRows), len(c), flat)

	raw, y, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return solution{problem: &p, err: err}
	}

	return solution{
		problem: &p,
		x:       p.form.modelValues(y),
		raw:     raw,
	}
}

// branch splits the solution into two subproblems around the fractional
// value of the branching variable: one capped below its floor, one forced
// above it.
func (s solution) branch() (p1, p2 subProblem) {
	branchOn := s.branchPoint()
	floor := math.Floor(s.x[branchOn])

	p1 = s.problem.child(cut{variable: branchOn, factor: 1, rhs: floor})
	p2 = s.problem.child(cut{variable: branchOn, factor: -1, rhs: -(floor + 1)})
	return
}

// child inherits everything from the parent problem and appends one cut.
// The cuts slice is copied: siblings must not share a backing array.
func (p *subProblem) child(ct cut) subProblem {
	next := subProblem{
		parent:    p.id,
		form:      p.form,
		heuristic: p.heuristic,
		cuts:      make([]cut, len(p.cuts), len(p.cuts)+1),
	}
	copy(next.cuts, p.cuts)
	next.cuts = append(next.cuts, ct)
	return next
}

// integerFeasible checks the solution against the integrality constraints.
func (s solution) integerFeasible(tol float64) bool {
	for _, j := range s.problem.form.integers {
		if !nearInteger(s.x[j], tol) {
			return false
		}
	}
	return true
}

func nearInteger(v, tol float64) bool {
	return math.Abs(v-math.Round(v)) <= tol
}
