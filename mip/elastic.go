package mip

import "math"

// ReliefDir is the direction in which an elastic slack variable relieves
// its constraint.
type ReliefDir int

const (
	// ReliefUp is a nonnegative slack: it lifts the expression, relieving
	// a ">=" constraint (or the lower side of an equality).
	ReliefUp ReliefDir = iota
	// ReliefDown is a nonpositive slack: it lowers the expression,
	// relieving a "<=" constraint (or the upper side of an equality).
	ReliefDown
)

// Relief is the handle returned by Elasticize: the slack expression that was
// added to one constraint. An equality constraint carries two slack terms,
// an inequality one.
type Relief struct {
	Con    *Constraint
	Slacks []*Variable
	Dirs   []ReliefDir
}

// Active returns the indexes of slack terms whose last solve value exceeds
// tol in magnitude.
func (r *Relief) Active(tol float64) []int {
	var active []int
	for i, s := range r.Slacks {
		if val, ok := s.Value(); ok && math.Abs(val) > tol {
			active = append(active, i)
		}
	}
	return active
}

// Drop shrinks the relief to exclude the slack term at index i, leaving the
// remaining term(s) in place.
func (r *Relief) Drop(i int) {
	r.Slacks = append(r.Slacks[:i:i], r.Slacks[i+1:]...)
	r.Dirs = append(r.Dirs[:i:i], r.Dirs[i+1:]...)
}

// ReliefBounds returns the one-sided bound pair matching a relief direction.
func ReliefBounds(dir ReliefDir) (lb, ub float64) {
	if dir == ReliefUp {
		return 0, math.Inf(1)
	}
	return math.Inf(-1), 0
}

// Elasticize relaxes a constraint of this model by adding a sign-bounded
// slack term to its expression and a penalty on the slack's magnitude to the
// objective. The constraint relation itself is unchanged; the slack is what
// makes it satisfiable. Equality constraints receive one slack per
// direction.
func (m *Model) Elasticize(c *Constraint, penalty float64) *Relief {
	relief := &Relief{Con: c}

	var dirs []ReliefDir
	switch c.sense {
	case LessThan:
		dirs = []ReliefDir{ReliefDown}
	case GreaterThan:
		dirs = []ReliefDir{ReliefUp}
	case EqualTo:
		dirs = []ReliefDir{ReliefUp, ReliefDown}
	}

	for _, dir := range dirs {
		s := m.AddVariable(c.name + reliefSuffix(dir))
		s.SetBounds(ReliefBounds(dir))

		c.expr.Terms = append(c.expr.Terms, Term{Coef: 1, Var: s})

		// the objective coefficient is chosen so that minimization
		// penalizes |slack|, whichever sign the slack is bounded to.
		objCoef := penalty
		if dir == ReliefDown {
			objCoef = -penalty
		}
		m.AddToObjective(Term{Coef: objCoef, Var: s})

		relief.Slacks = append(relief.Slacks, s)
		relief.Dirs = append(relief.Dirs, dir)
	}

	return relief
}

func reliefSuffix(dir ReliefDir) string {
	if dir == ReliefUp {
		return "_relief_up"
	}
	return "_relief_down"
}
