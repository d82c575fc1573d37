package mip

// RefMap links the elements of a cloned model to the elements of the model
// it was cloned from, in both directions. Elements created on the clone
// after the Clone call (slack variables, extra constraints) have no
// original and resolve to false.
type RefMap struct {
	varToCopy map[*Variable]*Variable
	varToOrig map[*Variable]*Variable
	conToCopy map[*Constraint]*Constraint
	conToOrig map[*Constraint]*Constraint
}

// CopyVariable resolves an original variable to its counterpart on the clone.
func (r *RefMap) CopyVariable(orig *Variable) (*Variable, bool) {
	v, ok := r.varToCopy[orig]
	return v, ok
}

// OriginalVariable resolves a clone variable back to the original.
func (r *RefMap) OriginalVariable(cp *Variable) (*Variable, bool) {
	v, ok := r.varToOrig[cp]
	return v, ok
}

// CopyConstraint resolves an original constraint to its counterpart on the clone.
func (r *RefMap) CopyConstraint(orig *Constraint) (*Constraint, bool) {
	c, ok := r.conToCopy[orig]
	return c, ok
}

// OriginalConstraint resolves a clone constraint back to the original.
func (r *RefMap) OriginalConstraint(cp *Constraint) (*Constraint, bool) {
	c, ok := r.conToOrig[cp]
	return c, ok
}

// Clone produces a deep copy of the model together with the reference map
// between copy and original. The attached solver is not carried over; the
// last solve status and variable values are.
func (m *Model) Clone() (*Model, *RefMap) {
	refs := &RefMap{
		varToCopy: make(map[*Variable]*Variable, len(m.vars)),
		varToOrig: make(map[*Variable]*Variable, len(m.vars)),
		conToCopy: make(map[*Constraint]*Constraint, len(m.cons)),
		conToOrig: make(map[*Constraint]*Constraint, len(m.cons)),
	}

	cp := &Model{
		name:     m.name,
		maximize: m.maximize,
		status:   m.status,
		quiet:    m.quiet,
		objValue: m.objValue,
		vars:     make([]*Variable, len(m.vars)),
		cons:     make([]*Constraint, 0, len(m.cons)),
	}

	for i, v := range m.vars {
		nv := &Variable{}
		*nv = *v
		cp.vars[i] = nv
		refs.varToCopy[v] = nv
		refs.varToOrig[nv] = v
	}

	for _, c := range m.cons {
		nc := &Constraint{
			name:  c.name,
			index: c.index,
			expr:  remapExpr(c.expr, refs.varToCopy),
			sense: c.sense,
			rhs:   c.rhs,
		}
		cp.cons = append(cp.cons, nc)
		refs.conToCopy[c] = nc
		refs.conToOrig[nc] = c
	}

	cp.objective = remapExpr(m.objective, refs.varToCopy)

	return cp, refs
}

// remapExpr rewrites an expression onto another model's variable pointers.
func remapExpr(e LinExpr, varMap map[*Variable]*Variable) LinExpr {
	out := LinExpr{
		Terms:    make([]Term, len(e.Terms)),
		Constant: e.Constant,
	}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Coef: t.Coef, Var: varMap[t.Var]}
	}
	return out
}
