// Package report renders diagnosis results, numerics summaries and
// feasibility reports as sectioned text, optionally colored.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lpsleuth/lpsleuth/diagnose"
	"github.com/lpsleuth/lpsleuth/feascheck"
	"github.com/lpsleuth/lpsleuth/numerics"
)

// Renderer writes reports to a writer. The zero value writes plain text;
// set Color for ANSI-colored section headers and verdicts.
type Renderer struct {
	Color bool
}

func (r *Renderer) palette() (header, bad, good, dim *color.Color) {
	header = color.New(color.Bold)
	bad = color.New(color.FgRed)
	good = color.New(color.FgGreen)
	dim = color.New(color.Faint)
	if !r.Color {
		for _, c := range []*color.Color{header, bad, good, dim} {
			c.DisableColor()
		}
	}
	return
}

// Diagnosis renders one diagnosis result.
func (r *Renderer) Diagnosis(w io.Writer, modelName string, res *diagnose.Result) {
	header, bad, good, dim := r.palette()

	header.Fprintf(w, "diagnosis for %s\n", modelName)

	if res.Clean() {
		good.Fprintln(w, "  no infeasibility cause found")
		if res.Note != "" {
			dim.Fprintf(w, "  note: %s\n", res.Note)
		}
		return
	}

	if len(res.Bounds) > 0 {
		bad.Fprintf(w, "  %d variable(s) with conflicting bounds:\n", len(res.Bounds))
		for _, is := range res.Bounds {
			fmt.Fprintf(w, "    %s: lower bound %g exceeds upper bound %g\n",
				is.Variable.Name(), is.Lb, is.Ub)
		}
	}

	if len(res.Integrality) > 0 {
		bad.Fprintf(w, "  %d variable(s) with no feasible %s value:\n",
			len(res.Integrality), "integer/binary")
		for _, is := range res.Integrality {
			fmt.Fprintf(w, "    %s: no %s value in [%g, %g]\n",
				is.Variable.Name(), is.Kind, is.Lb, is.Ub)
		}
	}

	if len(res.Ranges) > 0 {
		bad.Fprintf(w, "  %d constraint(s) that can never be satisfied:\n", len(res.Ranges))
		for _, is := range res.Ranges {
			fmt.Fprintf(w, "    %s: achievable range [%g, %g] cannot meet %s %g\n",
				is.Constraint.Name(), is.Range.Lo, is.Range.Hi,
				is.Target.Sense, is.Target.Value)
		}
	}

	for _, iis := range res.IIS {
		bad.Fprintf(w, "  irreducible infeasible subset (%d constraints):\n", len(iis.Constraints))
		for _, con := range iis.Constraints {
			fmt.Fprintf(w, "    %s\n", con)
		}
		dim.Fprintln(w, "  removing any single one of these makes the rest satisfiable")
	}

	if res.Note != "" {
		dim.Fprintf(w, "  note: %s\n", res.Note)
	}
}

// Numerics renders a coefficient summary.
func (r *Renderer) Numerics(w io.Writer, s *numerics.Summary) {
	header, bad, _, dim := r.palette()

	header.Fprintf(w, "numerical summary for %s\n", s.Name)
	fmt.Fprintf(w, "  variables:   %d (%d integer, %d binary, %d fixed)\n",
		s.Variables, s.IntegerVariables, s.BinaryVariables, s.FixedVariables)
	fmt.Fprintf(w, "  constraints: %d (%d =, %d <=, %d >=)\n",
		s.Constraints, s.Equalities, s.LessThans, s.GreaterThans)
	fmt.Fprintf(w, "  nonzeros:    %d (density %.4f)\n", s.Nonzeros, s.Density)

	printRange := func(label string, cr numerics.CoefRange) {
		if cr.Empty {
			dim.Fprintf(w, "  %-10s (no finite nonzero coefficients)\n", label)
			return
		}
		fmt.Fprintf(w, "  %-10s |coef| in [%.3g, %.3g], spread %.3g\n", label, cr.Min, cr.Max, cr.Spread())
	}
	printRange("objective:", s.Objective)
	printRange("matrix:", s.Matrix)
	printRange("rhs:", s.RHS)
	printRange("bounds:", s.Bound)

	for _, e := range s.Small {
		bad.Fprintf(w, "  very small coefficient %g on %s in %s\n", e.Value, e.Variable.Name(), e.Constraint.Name())
	}
	for _, e := range s.Large {
		bad.Fprintf(w, "  very large coefficient %g on %s in %s\n", e.Value, e.Variable.Name(), e.Constraint.Name())
	}
}

// Feasibility renders a point-check report.
func (r *Renderer) Feasibility(w io.Writer, modelName string, rep *feascheck.Report) {
	header, bad, good, dim := r.palette()

	header.Fprintf(w, "feasibility check for %s\n", modelName)
	if rep.PrimalFeasible() {
		good.Fprintln(w, "  point is feasible")
	}

	for _, v := range rep.Constraints {
		bad.Fprintf(w, "  %s: activity %g violates the constraint by %g\n",
			v.Constraint.Name(), v.Activity, v.Violation)
	}
	for _, v := range rep.Bounds {
		bad.Fprintf(w, "  %s = %g escapes bounds [%g, %g] by %g\n",
			v.Variable.Name(), v.Value, v.Lb, v.Ub, v.Violation)
	}
	for _, v := range rep.Integrality {
		bad.Fprintf(w, "  %s = %g is not integral\n", v.Variable.Name(), v.Value)
	}

	for _, v := range rep.DualSigns {
		bad.Fprintf(w, "  dual %g on %s has an inadmissible sign\n", v.Dual, v.Constraint.Name())
	}
	for _, v := range rep.Slackness {
		dim.Fprintf(w, "  complementary slackness residual %g on %s\n", v.Residual, v.Constraint.Name())
	}
	for _, v := range rep.Stationarity {
		dim.Fprintf(w, "  nonzero reduced cost %g on interior variable %s\n", v.ReducedCost, v.Variable.Name())
	}
}
