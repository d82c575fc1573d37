package mip

import (
	"fmt"
	"math"
	"strings"
)

// String renders the expression in the usual "2 x + 3 y - 4" shape.
func (e LinExpr) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		coef := t.Coef
		switch {
		case i == 0 && coef < 0:
			b.WriteString("-")
			coef = -coef
		case i > 0 && coef < 0:
			b.WriteString(" - ")
			coef = -coef
		case i > 0:
			b.WriteString(" + ")
		}
		if coef != 1 {
			b.WriteString(trimFloat(coef))
			b.WriteString(" ")
		}
		b.WriteString(t.Var.Name())
	}
	if e.Constant != 0 || len(e.Terms) == 0 {
		if len(e.Terms) > 0 {
			if e.Constant >= 0 {
				b.WriteString(" + ")
				b.WriteString(trimFloat(e.Constant))
			} else {
				b.WriteString(" - ")
				b.WriteString(trimFloat(-e.Constant))
			}
		} else {
			b.WriteString(trimFloat(e.Constant))
		}
	}
	return b.String()
}

// String renders the constraint as "name: expr <= rhs".
func (c *Constraint) String() string {
	if c.name != "" {
		return fmt.Sprintf("%s: %s %s %s", c.name, c.expr, c.sense, trimFloat(c.rhs))
	}
	return fmt.Sprintf("%s %s %s", c.expr, c.sense, trimFloat(c.rhs))
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// SetInteger adds or removes the integrality constraint on the variable.
// Removing it also clears the binary flag.
func (v *Variable) SetInteger(integer bool) {
	v.integer = integer
	if !integer {
		v.binary = false
	}
}

// SetBinary marks the variable binary, bounding it to [0, 1].
func (v *Variable) SetBinary() {
	v.integer = true
	v.binary = true
	v.lb = 0
	v.ub = 1
}
