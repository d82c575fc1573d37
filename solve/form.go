// Package solve implements the Solver contract of package mip on top of
// gonum's simplex method, with a concurrent branch-and-bound search layered
// on for integer variables.
package solve

import (
	"math"

	"github.com/lpsleuth/lpsleuth/mip"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// standardForm is a model rewritten for lp.Simplex, which wants
// min c'y s.t. Ay = b, y >= 0.
//
// Every model variable x_j is split into a nonnegative pair (p_j, n_j) with
// x_j = p_j - n_j, occupying columns col[j] and col[j]+1. Finite variable
// bounds become inequality rows; fixed variables become equality rows.
// Inequality rows (Gy <= h) are folded into equalities with one extra slack
// column each at solve time, following the usual slack embedding.
type standardForm struct {
	nvars int   // number of model variables
	col   []int // first split column per variable, -1 if the variable was eliminated
	ncols int   // total split columns

	c        []float64 // objective over split columns, always minimization
	objConst float64
	maximize bool // original direction, for mapping the objective value back

	eqRows [][]float64
	eqRHS  []float64

	ineqRows [][]float64
	ineqRHS  []float64

	// model variable indexes carrying an integrality constraint.
	integers []int

	// set when the model is trivially infeasible before any simplex call
	// (a constraint with no terms and an unsatisfiable right-hand side).
	trivialInfeasible bool
}

// buildStandardForm rewrites a model into standard form. Variables that
// occur in no constraint, carry no finite bound and have a zero objective
// coefficient are eliminated (their value is reported as 0), keeping the
// matrix free of all-zero columns.
func buildStandardForm(m *mip.Model) *standardForm {
	vars := m.Variables()
	obj, maximize := m.Objective()

	sf := &standardForm{
		nvars:    len(vars),
		col:      make([]int, len(vars)),
		objConst: obj.Constant,
		maximize: maximize,
	}

	used := make([]bool, len(vars))
	for _, c := range m.Constraints() {
		for _, t := range c.Expr().Terms {
			if t.Coef != 0 {
				used[t.Var.Index()] = true
			}
		}
	}
	for _, t := range obj.Terms {
		if t.Coef != 0 {
			used[t.Var.Index()] = true
		}
	}
	for i, v := range vars {
		lb, ub := v.Bounds()
		if !math.IsInf(lb, -1) || !math.IsInf(ub, 1) {
			used[i] = true
		}
	}

	for i := range vars {
		if used[i] {
			sf.col[i] = sf.ncols
			sf.ncols += 2
		} else {
			sf.col[i] = -1
		}
	}

	// objective over split columns, negated for maximization so that the
	// simplex always minimizes.
	sf.c = make([]float64, sf.ncols)
	sign := 1.0
	if maximize {
		sign = -1.0
	}
	for _, t := range obj.Terms {
		if j := sf.col[t.Var.Index()]; j >= 0 {
			sf.c[j] += sign * t.Coef
			sf.c[j+1] -= sign * t.Coef
		}
	}

	for _, con := range m.Constraints() {
		row := make([]float64, sf.ncols)
		for _, t := range con.Expr().Terms {
			if j := sf.col[t.Var.Index()]; j >= 0 {
				row[j] += t.Coef
				row[j+1] -= t.Coef
			}
		}
		rhs := con.RHS() - con.Expr().Constant

		if allZero(row) {
			// constant-only constraint: either vacuous or unsatisfiable.
			switch con.Sense() {
			case mip.EqualTo:
				if rhs != 0 {
					sf.trivialInfeasible = true
				}
			case mip.LessThan:
				if rhs < 0 {
					sf.trivialInfeasible = true
				}
			case mip.GreaterThan:
				if rhs > 0 {
					sf.trivialInfeasible = true
				}
			}
			continue
		}

		switch con.Sense() {
		case mip.EqualTo:
			sf.eqRows = append(sf.eqRows, row)
			sf.eqRHS = append(sf.eqRHS, rhs)
		case mip.LessThan:
			sf.ineqRows = append(sf.ineqRows, row)
			sf.ineqRHS = append(sf.ineqRHS, rhs)
		case mip.GreaterThan:
			neg := make([]float64, len(row))
			for i, v := range row {
				neg[i] = -v
			}
			sf.ineqRows = append(sf.ineqRows, neg)
			sf.ineqRHS = append(sf.ineqRHS, -rhs)
		}
	}

	// variable bounds as rows over the split pair.
	for i, v := range vars {
		j := sf.col[i]
		if j < 0 {
			continue
		}
		if fv, ok := v.Fixed(); ok {
			row := make([]float64, sf.ncols)
			row[j] = 1
			row[j+1] = -1
			sf.eqRows = append(sf.eqRows, row)
			sf.eqRHS = append(sf.eqRHS, fv)
			continue
		}
		lb, ub := v.Bounds()
		if !math.IsInf(ub, 1) {
			row := make([]float64, sf.ncols)
			row[j] = 1
			row[j+1] = -1
			sf.ineqRows = append(sf.ineqRows, row)
			sf.ineqRHS = append(sf.ineqRHS, ub)
		}
		if !math.IsInf(lb, -1) {
			row := make([]float64, sf.ncols)
			row[j] = -1
			row[j+1] = 1
			sf.ineqRows = append(sf.ineqRows, row)
			sf.ineqRHS = append(sf.ineqRHS, -lb)
		}
	}

	for i, v := range vars {
		if v.Integer() && sf.col[i] >= 0 {
			sf.integers = append(sf.integers, i)
		}
	}

	return sf
}

func allZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

// modelValues maps a split-column solution vector back to model variable
// values.
func (sf *standardForm) modelValues(y []float64) []float64 {
	x := make([]float64, sf.nvars)
	for i, j := range sf.col {
		if j >= 0 && j+1 < len(y) {
			x[i] = y[j] - y[j+1]
		}
	}
	return x
}

// modelObjective maps the raw simplex objective value back to the model's
// objective.
func (sf *standardForm) modelObjective(raw float64) float64 {
	if sf.maximize {
		return -raw + sf.objConst
	}
	return raw + sf.objConst
}

// trivialSolution is used when the form has no columns at all: every
// variable was eliminated and every constraint was constant.
func (sf *standardForm) trivial() (mip.Result, bool) {
	if sf.trivialInfeasible {
		return mip.Result{Status: mip.StatusInfeasible}, true
	}
	if sf.ncols == 0 {
		return mip.Result{
			Status:    mip.StatusOptimal,
			Objective: sf.objConst,
			Values:    make([]float64, sf.nvars),
		}, true
	}
	return mip.Result{}, false
}

// embedInequalities folds the inequality rows (plus any branch cuts) into a
// single equality system with one nonnegative slack column per inequality.
func (sf *standardForm) embedInequalities(cuts []cut) (c []float64, a [][]float64, b []float64) {
	// the form is shared read-only by concurrent subproblems: cap-limit the
	// views so appending cuts reallocates instead of writing into spare
	// capacity of the shared backing arrays.
	ineqRows := sf.ineqRows[:len(sf.ineqRows):len(sf.ineqRows)]
	ineqRHS := sf.ineqRHS[:len(sf.ineqRHS):len(sf.ineqRHS)]
	for _, ct := range cuts {
		ineqRows = append(ineqRows, ct.row(sf))
		ineqRHS = append(ineqRHS, ct.rhs)
	}

	nIneq := len(ineqRows)
	ncols := sf.ncols + nIneq

	c = make([]float64, ncols)
	copy(c, sf.c)

	for _, row := range sf.eqRows {
		wide := make([]float64, ncols)
		copy(wide, row)
		a = append(a, wide)
	}
	b = append(b, sf.eqRHS...)

	for i, row := range ineqRows {
		wide := make([]float64, ncols)
		copy(wide, row)
		wide[sf.ncols+i] = 1
		a = append(a, wide)
		b = append(b, ineqRHS[i])
	}

	return c, a, b
}

// expected simplex failures that mean "prune this node" rather than "the
// search is broken".
var expectedFailures = map[error]Decision{
	lp.ErrInfeasible: NodeNotFeasible,
	lp.ErrUnbounded:  NodeUnbounded,
	lp.ErrSingular:   NodeDegenerate,
}
