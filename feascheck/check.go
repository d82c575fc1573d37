// Package feascheck evaluates a model at a candidate point: which
// constraints, bounds and integrality requirements the point violates, and,
// when dual values are supplied, whether the duals have admissible signs
// and how far the pair is from complementary slackness. It performs no
// search and calls no solver.
package feascheck

import (
	"math"

	"github.com/lpsleuth/lpsleuth/mip"
)

// DefaultTol is the violation tolerance below which a residual counts as
// zero.
const DefaultTol = 1e-6

// ConstraintViolation is a constraint the point fails to satisfy.
// Activity is the value of the constraint expression at the point;
// Violation is how far it lies outside the target set.
type ConstraintViolation struct {
	Constraint *mip.Constraint
	Activity   float64
	Violation  float64
}

// BoundViolation is a variable whose value escapes its bounds.
type BoundViolation struct {
	Variable  *mip.Variable
	Value     float64
	Lb, Ub    float64
	Violation float64
}

// IntegralityViolation is an integer variable with a fractional value.
type IntegralityViolation struct {
	Variable *mip.Variable
	Value    float64
}

// DualSignViolation is a dual value whose sign is inadmissible for its
// constraint's sense under minimization.
type DualSignViolation struct {
	Constraint *mip.Constraint
	Dual       float64
}

// SlacknessResidual is the complementary-slackness product of one
// constraint: dual * (activity - rhs). Nonzero means the dual pays for a
// constraint that is not tight.
type SlacknessResidual struct {
	Constraint *mip.Constraint
	Residual   float64
}

// StationarityViolation is a variable strictly between its bounds whose
// reduced cost is not zero.
type StationarityViolation struct {
	Variable    *mip.Variable
	ReducedCost float64
}

// Report is the outcome of one check.
type Report struct {
	Constraints []ConstraintViolation
	Bounds      []BoundViolation
	Integrality []IntegralityViolation

	// dual side; only populated by CheckDuals.
	DualSigns    []DualSignViolation
	Slackness    []SlacknessResidual
	Stationarity []StationarityViolation
}

// PrimalFeasible reports whether the point satisfies all constraints,
// bounds and integrality requirements.
func (r *Report) PrimalFeasible() bool {
	return len(r.Constraints) == 0 && len(r.Bounds) == 0 && len(r.Integrality) == 0
}

// Checker evaluates points against a model. The zero value uses DefaultTol.
type Checker struct {
	Tol float64
}

func (c *Checker) tol() float64 {
	if c.Tol > 0 {
		return c.Tol
	}
	return DefaultTol
}

// CheckPoint evaluates the primal side: constraint, bound and integrality
// violations of the point. Variables missing from the point are taken as 0.
func (c *Checker) CheckPoint(m *mip.Model, point map[*mip.Variable]float64) *Report {
	tol := c.tol()
	rep := &Report{}

	for _, con := range m.Constraints() {
		activity := evalAt(con.Expr(), point)
		var violation float64
		switch con.Sense() {
		case mip.EqualTo:
			violation = math.Abs(activity - con.RHS())
		case mip.LessThan:
			violation = activity - con.RHS()
		case mip.GreaterThan:
			violation = con.RHS() - activity
		}
		if violation > tol {
			rep.Constraints = append(rep.Constraints, ConstraintViolation{
				Constraint: con,
				Activity:   activity,
				Violation:  violation,
			})
		}
	}

	for _, v := range m.Variables() {
		val := point[v]
		lb, ub := v.Bounds()
		if d := math.Max(lb-val, val-ub); d > tol {
			rep.Bounds = append(rep.Bounds, BoundViolation{
				Variable:  v,
				Value:     val,
				Lb:        lb,
				Ub:        ub,
				Violation: d,
			})
		}
		if v.Integer() && math.Abs(val-math.Round(val)) > tol {
			rep.Integrality = append(rep.Integrality, IntegralityViolation{Variable: v, Value: val})
		}
	}

	return rep
}

// CheckDuals evaluates the dual side on top of the primal check: dual sign
// admissibility, complementary slackness, and reduced-cost stationarity for
// variables strictly inside their bounds. Sign conventions assume
// minimization; for a maximization model the duals are negated first.
func (c *Checker) CheckDuals(m *mip.Model, point map[*mip.Variable]float64, duals map[*mip.Constraint]float64) *Report {
	tol := c.tol()
	rep := c.CheckPoint(m, point)

	_, maximize := m.Objective()
	sign := 1.0
	if maximize {
		sign = -1.0
	}

	for _, con := range m.Constraints() {
		y := sign * duals[con]

		// under minimization: ">=" rows carry nonnegative duals, "<=" rows
		// nonpositive ones, equalities are free.
		switch con.Sense() {
		case mip.GreaterThan:
			if y < -tol {
				rep.DualSigns = append(rep.DualSigns, DualSignViolation{Constraint: con, Dual: duals[con]})
			}
		case mip.LessThan:
			if y > tol {
				rep.DualSigns = append(rep.DualSigns, DualSignViolation{Constraint: con, Dual: duals[con]})
			}
		}

		residual := y * (evalAt(con.Expr(), point) - con.RHS())
		if math.Abs(residual) > tol {
			rep.Slackness = append(rep.Slackness, SlacknessResidual{Constraint: con, Residual: residual})
		}
	}

	// reduced costs: c_j - sum_i y_i a_ij must vanish for variables
	// strictly between their bounds.
	reduced := make(map[*mip.Variable]float64)
	obj, _ := m.Objective()
	for _, t := range obj.Terms {
		reduced[t.Var] += sign * t.Coef
	}
	for _, con := range m.Constraints() {
		y := sign * duals[con]
		if y == 0 {
			continue
		}
		for _, t := range con.Expr().Terms {
			reduced[t.Var] -= y * t.Coef
		}
	}
	for _, v := range m.Variables() {
		lb, ub := v.Bounds()
		val := point[v]
		interior := val > lb+tol && val < ub-tol
		if interior && math.Abs(reduced[v]) > tol {
			rep.Stationarity = append(rep.Stationarity, StationarityViolation{
				Variable:    v,
				ReducedCost: reduced[v],
			})
		}
	}

	return rep
}

func evalAt(e mip.LinExpr, point map[*mip.Variable]float64) float64 {
	acc := e.Constant
	for _, t := range e.Terms {
		acc += t.Coef * point[t.Var]
	}
	return acc
}
