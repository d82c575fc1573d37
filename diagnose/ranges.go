package diagnose

import "github.com/lpsleuth/lpsleuth/mip"

// CheckRanges runs the range-consistency layer: for each scalar linear
// constraint, the achievable interval of its expression (from the variable
// intervals) is compared against the constraint's target set. A constraint
// whose achievable interval excludes every admissible value can never be
// satisfied, regardless of the rest of the model.
//
// The interval map must be complete for the variables the constraints use,
// which is only guaranteed when the bound-consistency layer found no issue.
func CheckRanges(cons []*mip.Constraint, intervals map[*mip.Variable]Interval) []InfeasibleConstraintRange {
	var issues []InfeasibleConstraintRange

	for _, c := range cons {
		achievable, ok := evalExpr(c.Expr(), intervals)
		if !ok {
			continue
		}

		rhs := c.RHS()
		violated := false
		switch c.Sense() {
		case mip.EqualTo:
			violated = achievable.Lo > rhs || achievable.Hi < rhs
		case mip.LessThan:
			violated = achievable.Lo > rhs
		case mip.GreaterThan:
			violated = achievable.Hi < rhs
		default:
			// not a supported target set; skip rather than guess.
			continue
		}

		if violated {
			issues = append(issues, InfeasibleConstraintRange{
				Constraint: c,
				Range:      achievable,
				Target:     Target{Sense: c.Sense(), Value: rhs},
			})
		}
	}

	return issues
}
