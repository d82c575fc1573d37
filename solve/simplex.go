package solve

import (
	"fmt"
	"math"

	"github.com/lpsleuth/lpsleuth/mip"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const (
	defaultIntTol  = 1e-6
	defaultWorkers = 4
)

// Simplex solves mip models with gonum's simplex method, running a
// branch-and-bound search when integer variables are present. The zero
// value is ready to use.
type Simplex struct {
	// Tol is passed through to lp.Simplex; 0 selects gonum's default.
	Tol float64

	// IntTol is the integrality tolerance; 0 selects the default of 1e-6.
	IntTol float64

	// Workers is the number of concurrent branch-and-bound workers; 0
	// selects the default of 4.
	Workers int

	Heuristic BranchHeuristic

	// Middleware receives every branch-and-bound decision. Nil disables
	// instrumentation.
	Middleware Middleware
}

// NewSimplex returns a solver with default settings.
func NewSimplex() *Simplex { return &Simplex{} }

func (s *Simplex) intTol() float64 {
	if s.IntTol > 0 {
		return s.IntTol
	}
	return defaultIntTol
}

func (s *Simplex) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return defaultWorkers
}

// Solve implements mip.Solver.
func (s *Simplex) Solve(m *mip.Model) (mip.Result, error) {
	sf := buildStandardForm(m)
	if res, ok := sf.trivial(); ok {
		return res, nil
	}

	root := subProblem{form: sf, heuristic: s.Heuristic}

	if len(sf.integers) == 0 {
		sol := root.solve(s.Tol)
		return s.lpResult(sf, sol)
	}

	tree := newEnumerationTree(root, s.Tol, s.intTol(), s.Middleware)
	best, err := tree.startSearch(s.workers())
	if err != nil {
		// an infeasible or unbounded root relaxation settles the integer
		// problem as well.
		if st, ok := statusOf(err); ok {
			return mip.Result{Status: st}, nil
		}
		return mip.Result{}, fmt.Errorf("solve: branch and bound failed: %w", err)
	}
	if best == nil {
		// the relaxations were solvable but no integer point survived.
		return mip.Result{Status: mip.StatusInfeasible}, nil
	}

	return mip.Result{
		Status:    mip.StatusOptimal,
		Objective: sf.modelObjective(best.raw),
		Values:    roundIntegers(sf, best.x, s.intTol()),
	}, nil
}

// lpResult translates a plain LP solve into a Result.
func (s *Simplex) lpResult(sf *standardForm, sol solution) (mip.Result, error) {
	if sol.err != nil {
		if st, ok := statusOf(sol.err); ok {
			return mip.Result{Status: st}, nil
		}
		return mip.Result{}, fmt.Errorf("solve: simplex failed: %w", sol.err)
	}
	return mip.Result{
		Status:    mip.StatusOptimal,
		Objective: sf.modelObjective(sol.raw),
		Values:    sol.x,
	}, nil
}

// statusOf maps the simplex failures that are definite verdicts onto solve
// statuses. Anything else is a genuine error.
func statusOf(err error) (mip.Status, bool) {
	switch err {
	case lp.ErrInfeasible:
		return mip.StatusInfeasible, true
	case lp.ErrUnbounded:
		return mip.StatusUnbounded, true
	case lp.ErrSingular:
		return mip.StatusDegenerate, true
	}
	return 0, false
}

// roundIntegers snaps near-integer values of integer variables, so callers
// reading back variable values see exact integers.
func roundIntegers(sf *standardForm, x []float64, tol float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for _, j := range sf.integers {
		if nearInteger(out[j], tol) {
			out[j] = math.Round(out[j])
		}
	}
	return out
}
