// Package mip contains a small container for linear and mixed-integer
// models: variables with bounds and integrality flags, scalar linear
// constraints, and an objective. It is the substrate the diagnosis engine
// works on; solving is delegated to an attached Solver.
package mip

import "math"

// Sense is the relation between a constraint's expression and its right-hand side.
type Sense int

const (
	EqualTo Sense = iota
	LessThan
	GreaterThan
)

func (s Sense) String() string {
	switch s {
	case EqualTo:
		return "="
	case LessThan:
		return "<="
	case GreaterThan:
		return ">="
	}
	return "?"
}

// Term is a coefficient applied to a variable, e.g. "-1 * x1".
type Term struct {
	Coef float64
	Var  *Variable
}

// LinExpr is an affine expression: the sum of its terms plus a constant.
type LinExpr struct {
	Terms    []Term
	Constant float64
}

// Variable is identified by its pointer. All fields are managed through the
// owning Model and the setter methods below.
type Variable struct {
	name  string
	index int

	lb, ub  float64
	integer bool
	binary  bool

	fixed    bool
	fixValue float64

	// value assigned by the most recent solve, if any.
	value    float64
	hasValue bool
}

func (v *Variable) Name() string  { return v.name }
func (v *Variable) Index() int    { return v.index }
func (v *Variable) Integer() bool { return v.integer }
func (v *Variable) Binary() bool  { return v.binary }

// Bounds returns the effective bounds of the variable: a fixed variable
// reports its fixed value as both ends.
func (v *Variable) Bounds() (lb, ub float64) {
	if v.fixed {
		return v.fixValue, v.fixValue
	}
	return v.lb, v.ub
}

func (v *Variable) SetLower(lb float64) { v.lb = lb }
func (v *Variable) SetUpper(ub float64) { v.ub = ub }

func (v *Variable) SetBounds(lb, ub float64) {
	v.lb = lb
	v.ub = ub
}

// Fix pins the variable to an exact value, shadowing its declared bounds
// until Unfix is called.
func (v *Variable) Fix(value float64) {
	v.fixed = true
	v.fixValue = value
}

// Unfix releases a fixed variable back to its declared bounds.
func (v *Variable) Unfix() { v.fixed = false }

// Fixed reports the fixed value, if the variable is fixed.
func (v *Variable) Fixed() (float64, bool) { return v.fixValue, v.fixed }

// Value returns the value assigned by the last solve. The second return is
// false if the model has not been solved since the variable was added.
func (v *Variable) Value() (float64, bool) { return v.value, v.hasValue }

// Constraint is a scalar linear constraint "expr sense rhs", identified by
// its pointer.
type Constraint struct {
	name  string
	index int
	expr  LinExpr
	sense Sense
	rhs   float64
}

func (c *Constraint) Name() string  { return c.name }
func (c *Constraint) Index() int    { return c.index }
func (c *Constraint) Expr() LinExpr { return c.expr }
func (c *Constraint) Sense() Sense  { return c.sense }
func (c *Constraint) RHS() float64  { return c.rhs }

// Model holds variables and constraints in creation order. The zero value is
// not usable; use NewModel.
type Model struct {
	name string

	vars []*Variable
	cons []*Constraint

	objective LinExpr
	maximize  bool

	status   Status
	solver   Solver
	quiet    bool
	objValue float64
}

func NewModel(name string) *Model {
	return &Model{name: name, status: StatusNotSolved}
}

func (m *Model) Name() string { return m.name }

// AddVariable adds a continuous variable with free bounds and returns a
// reference to it.
func (m *Model) AddVariable(name string) *Variable {
	v := &Variable{
		name:  name,
		index: len(m.vars),
		lb:    math.Inf(-1),
		ub:    math.Inf(1),
	}
	m.vars = append(m.vars, v)
	return v
}

// AddIntegerVariable adds a free integer variable.
func (m *Model) AddIntegerVariable(name string) *Variable {
	v := m.AddVariable(name)
	v.integer = true
	return v
}

// AddBinaryVariable adds a binary variable bounded to [0, 1].
func (m *Model) AddBinaryVariable(name string) *Variable {
	v := m.AddVariable(name)
	v.integer = true
	v.binary = true
	v.lb = 0
	v.ub = 1
	return v
}

// Variables returns the model's variables in creation order. The returned
// slice must not be modified.
func (m *Model) Variables() []*Variable { return m.vars }

// Constraints returns the model's constraints in creation order. The
// returned slice must not be modified.
func (m *Model) Constraints() []*Constraint { return m.cons }

// AddConstraint adds the scalar linear constraint "expr sense rhs" and
// returns a reference to it. Every variable referenced by the expression
// must already belong to this model.
func (m *Model) AddConstraint(name string, expr LinExpr, sense Sense, rhs float64) *Constraint {
	for _, t := range expr.Terms {
		if !m.owns(t.Var) {
			panic("mip: constraint references a variable that was not declared on this model")
		}
	}

	c := &Constraint{
		name:  name,
		index: len(m.cons),
		expr:  expr,
		sense: sense,
		rhs:   rhs,
	}
	m.cons = append(m.cons, c)
	return c
}

// check whether the variable pointer belongs to this model.
func (m *Model) owns(v *Variable) bool {
	if v == nil {
		return false
	}
	if v.index < len(m.vars) && m.vars[v.index] == v {
		return true
	}
	return false
}

// SetObjective replaces the model's objective.
func (m *Model) SetObjective(expr LinExpr, maximize bool) {
	m.objective = expr
	m.maximize = maximize
}

// Objective returns the current objective expression and the optimization
// direction (true for maximization).
func (m *Model) Objective() (LinExpr, bool) { return m.objective, m.maximize }

// DropObjective clears the objective, leaving a pure feasibility problem
// until a new objective is set.
func (m *Model) DropObjective() {
	m.objective = LinExpr{}
	m.maximize = false
}

// AddToObjective appends terms to the current objective.
func (m *Model) AddToObjective(terms ...Term) {
	m.objective.Terms = append(m.objective.Terms, terms...)
}

// Status reports the outcome of the most recent solve.
func (m *Model) Status() Status { return m.status }

// ObjectiveValue returns the objective value of the most recent solve.
func (m *Model) ObjectiveValue() float64 { return m.objValue }
