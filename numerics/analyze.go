// Package numerics aggregates coefficient statistics of a model: sizes,
// matrix density and the magnitude ranges of objective, matrix, right-hand
// side and bound coefficients. Wide magnitude ranges and extreme
// coefficients are the usual suspects behind solver trouble, so they are
// called out explicitly. Pure data aggregation, no solving.
package numerics

import (
	"math"

	"github.com/lpsleuth/lpsleuth/mip"
)

const (
	DefaultSmallThreshold = 1e-8
	DefaultLargeThreshold = 1e8
)

// CoefRange is the magnitude range of a group of nonzero coefficients.
// Empty is true when the group has no nonzero member.
type CoefRange struct {
	Min, Max float64
	Empty    bool
}

func newCoefRange() CoefRange {
	return CoefRange{Min: math.Inf(1), Max: 0, Empty: true}
}

func (r *CoefRange) observe(v float64) {
	if v == 0 {
		return
	}
	a := math.Abs(v)
	if a < r.Min {
		r.Min = a
	}
	if a > r.Max {
		r.Max = a
	}
	r.Empty = false
}

// Spread is the ratio Max/Min, the usual single-number summary of scaling
// quality. It is 1 for an empty range.
func (r CoefRange) Spread() float64 {
	if r.Empty || r.Min == 0 {
		return 1
	}
	return r.Max / r.Min
}

// ExtremeCoefficient flags one matrix entry outside the configured
// magnitude thresholds.
type ExtremeCoefficient struct {
	Constraint *mip.Constraint
	Variable   *mip.Variable
	Value      float64
}

// Summary is the aggregate of one analysis run.
type Summary struct {
	Name string

	Variables        int
	IntegerVariables int
	BinaryVariables  int
	FixedVariables   int

	Constraints  int
	Equalities   int
	LessThans    int
	GreaterThans int

	Nonzeros int
	Density  float64

	Objective CoefRange
	Matrix    CoefRange
	RHS       CoefRange
	Bound     CoefRange

	Small []ExtremeCoefficient
	Large []ExtremeCoefficient
}

// Analyzer scans models for coefficient statistics. The zero value uses the
// default thresholds.
type Analyzer struct {
	SmallThreshold float64
	LargeThreshold float64
}

func (a *Analyzer) small() float64 {
	if a.SmallThreshold > 0 {
		return a.SmallThreshold
	}
	return DefaultSmallThreshold
}

func (a *Analyzer) large() float64 {
	if a.LargeThreshold > 0 {
		return a.LargeThreshold
	}
	return DefaultLargeThreshold
}

// Analyze scans the model once and returns its summary.
func (a *Analyzer) Analyze(m *mip.Model) *Summary {
	s := &Summary{
		Name:      m.Name(),
		Objective: newCoefRange(),
		Matrix:    newCoefRange(),
		RHS:       newCoefRange(),
		Bound:     newCoefRange(),
	}

	for _, v := range m.Variables() {
		s.Variables++
		if v.Integer() {
			s.IntegerVariables++
		}
		if v.Binary() {
			s.BinaryVariables++
		}
		if _, fixed := v.Fixed(); fixed {
			s.FixedVariables++
		}
		lb, ub := v.Bounds()
		if !math.IsInf(lb, -1) {
			s.Bound.observe(lb)
		}
		if !math.IsInf(ub, 1) {
			s.Bound.observe(ub)
		}
	}

	obj, _ := m.Objective()
	for _, t := range obj.Terms {
		s.Objective.observe(t.Coef)
	}

	for _, c := range m.Constraints() {
		s.Constraints++
		switch c.Sense() {
		case mip.EqualTo:
			s.Equalities++
		case mip.LessThan:
			s.LessThans++
		case mip.GreaterThan:
			s.GreaterThans++
		}
		s.RHS.observe(c.RHS())

		for _, t := range c.Expr().Terms {
			if t.Coef == 0 {
				continue
			}
			s.Nonzeros++
			s.Matrix.observe(t.Coef)

			if abs := math.Abs(t.Coef); abs < a.small() {
				s.Small = append(s.Small, ExtremeCoefficient{Constraint: c, Variable: t.Var, Value: t.Coef})
			} else if abs > a.large() {
				s.Large = append(s.Large, ExtremeCoefficient{Constraint: c, Variable: t.Var, Value: t.Coef})
			}
		}
	}

	if s.Variables > 0 && s.Constraints > 0 {
		s.Density = float64(s.Nonzeros) / float64(s.Variables*s.Constraints)
	}

	return s
}

// Analyze scans a model with default thresholds.
func Analyze(m *mip.Model) *Summary {
	a := &Analyzer{}
	return a.Analyze(m)
}
