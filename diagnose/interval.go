// Package diagnose explains why a model is infeasible. It layers three
// analyses from cheap to expensive: per-variable bound consistency,
// per-constraint range consistency via interval arithmetic, and extraction
// of one irreducible infeasible subset (IIS) through elastic relaxation and
// a deletion filter. The cascade stops at the first layer that finds a
// cause, so the expensive solver-driven search only runs when no simpler
// explanation exists.
package diagnose

import "github.com/lpsleuth/lpsleuth/mip"

// Interval is a closed numeric range. An interval with Lo > Hi is valid and
// representable: it is exactly how an infeasible bound pair shows up.
type Interval struct {
	Lo, Hi float64
}

// Empty reports whether the interval contains no value.
func (iv Interval) Empty() bool { return iv.Lo > iv.Hi }

// Contains reports whether v lies in the interval.
func (iv Interval) Contains(v float64) bool { return iv.Lo <= v && v <= iv.Hi }

// Scale multiplies both ends by c, swapping them when c is negative so the
// result keeps Lo as the lower end.
func (iv Interval) Scale(c float64) Interval {
	if c >= 0 {
		return Interval{Lo: c * iv.Lo, Hi: c * iv.Hi}
	}
	return Interval{Lo: c * iv.Hi, Hi: c * iv.Lo}
}

// Add sums two intervals componentwise.
func (iv Interval) Add(other Interval) Interval {
	return Interval{Lo: iv.Lo + other.Lo, Hi: iv.Hi + other.Hi}
}

// Shift adds a constant to both ends.
func (iv Interval) Shift(c float64) Interval {
	return Interval{Lo: iv.Lo + c, Hi: iv.Hi + c}
}

// evalExpr computes the achievable interval of an affine expression, given
// an interval per variable: each term's interval is summed componentwise and
// the constant is added to both ends. Variables are treated as independent,
// which is exact for affine expressions. The second return is false if some
// variable of the expression has no interval.
func evalExpr(e mip.LinExpr, intervals map[*mip.Variable]Interval) (Interval, bool) {
	acc := Interval{}
	for _, t := range e.Terms {
		iv, ok := intervals[t.Var]
		if !ok {
			return Interval{}, false
		}
		acc = acc.Add(iv.Scale(t.Coef))
	}
	return acc.Shift(e.Constant), true
}
