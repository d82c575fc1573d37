package diagnose

import "github.com/lpsleuth/lpsleuth/mip"

// IntegralityKind discriminates the two integrality conflicts.
type IntegralityKind int

const (
	KindInteger IntegralityKind = iota
	KindBinary
)

func (k IntegralityKind) String() string {
	if k == KindBinary {
		return "binary"
	}
	return "integer"
}

// InfeasibleBounds reports a variable whose lower bound exceeds its upper
// bound.
type InfeasibleBounds struct {
	Variable *mip.Variable
	Lb, Ub   float64
}

// InfeasibleIntegrality reports an integer or binary variable whose bound
// interval contains no admissible value.
type InfeasibleIntegrality struct {
	Variable *mip.Variable
	Lb, Ub   float64
	Kind     IntegralityKind
}

// Target is the value set a constraint requires: its sense together with the
// right-hand side.
type Target struct {
	Sense mip.Sense
	Value float64
}

// InfeasibleConstraintRange reports a constraint whose achievable interval
// excludes every value the target set admits.
type InfeasibleConstraintRange struct {
	Constraint *mip.Constraint
	Range      Interval
	Target     Target
}

// IrreducibleInfeasibleSubset is a set of constraints that is jointly
// infeasible but becomes feasible when any single member is removed. The
// member order is the order in which the deletion filter confirmed them.
type IrreducibleInfeasibleSubset struct {
	Constraints []*mip.Constraint
}

// Result aggregates the issues of one diagnosis run, one list per issue
// kind, each in insertion order. The cascade populates at most one of the
// four lists per run.
type Result struct {
	Bounds      []InfeasibleBounds
	Integrality []InfeasibleIntegrality
	Ranges      []InfeasibleConstraintRange
	IIS         []IrreducibleInfeasibleSubset

	// Note carries an informational remark when a layer was skipped, e.g.
	// because no solver was supplied.
	Note string
}

// Clean reports whether the run found no issue of any kind.
func (r *Result) Clean() bool {
	return len(r.Bounds) == 0 && len(r.Integrality) == 0 &&
		len(r.Ranges) == 0 && len(r.IIS) == 0
}
