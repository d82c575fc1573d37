package solve

import "math"

// BranchHeuristic selects which fractional integer variable to branch on.
type BranchHeuristic int

const (
	// BranchNaive picks the first integer variable with a fractional value.
	BranchNaive BranchHeuristic = iota

	// BranchMaxObjective picks the fractional integer variable with the
	// largest absolute objective coefficient.
	BranchMaxObjective

	// BranchMostInfeasible picks the fractional integer variable whose
	// fractional part is closest to 1/2.
	BranchMostInfeasible
)

// branchPoint returns the model-variable index to branch on. The solution
// is assumed to violate at least one integrality constraint.
func (s solution) branchPoint() int {
	switch s.problem.heuristic {
	case BranchMaxObjective:
		return s.maxObjectiveBranchPoint()
	case BranchMostInfeasible:
		return s.mostInfeasibleBranchPoint()
	case BranchNaive:
		return s.naiveBranchPoint()
	default:
		panic("solve: unknown branching heuristic")
	}
}

func (s solution) naiveBranchPoint() int {
	for _, j := range s.problem.form.integers {
		if !nearInteger(s.x[j], defaultIntTol) {
			return j
		}
	}
	// nothing fractional; fall back to the first integer variable.
	return s.problem.form.integers[0]
}

// pick the fractional variable with the highest absolute objective
// coefficient, so branching happens where the objective is most sensitive.
func (s solution) maxObjectiveBranchPoint() int {
	sf := s.problem.form
	candidate := sf.integers[0]
	best := -1.0
	for _, j := range sf.integers {
		if nearInteger(s.x[j], defaultIntTol) {
			continue
		}
		weight := math.Abs(sf.c[sf.col[j]])
		if weight >= best {
			best = weight
			candidate = j
		}
	}
	return candidate
}

// pick the variable with the fractional part closest to 1/2.
func (s solution) mostInfeasibleBranchPoint() int {
	sf := s.problem.form
	candidate := sf.integers[0]
	best := 1.0
	for _, j := range sf.integers {
		if nearInteger(s.x[j], defaultIntTol) {
			continue
		}
		_, frac := math.Modf(math.Abs(s.x[j]))
		if d := math.Abs(0.5 - frac); d <= best {
			best = d
			candidate = j
		}
	}
	return candidate
}
