package mip

// Status is the categorical outcome of a solve.
type Status int

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusDegenerate
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotSolved:
		return "not solved"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusDegenerate:
		return "degenerate"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}
