package diagnose

import "github.com/lpsleuth/lpsleuth/mip"

// Cascade orchestrates the three diagnosis layers. Each layer only runs
// when every earlier layer came back clean, so a single run populates at
// most one issue category and the causal story stays unambiguous. The zero
// value uses the default penalty and slack tolerance for the IIS layer.
type Cascade struct {
	Penalty  float64
	SlackTol float64
}

// Run diagnoses the model. Solver may be nil, in which case the IIS layer
// is skipped with a note on the result.
//
// The cascade, in order:
//  1. bound consistency over all variables. Any issue ends the run: the
//     variable intervals are not trustworthy once a bound conflict exists.
//  2. range consistency over all constraints, using the intervals from 1.
//     Any issue ends the run.
//  3. IIS extraction, only with a solver at hand and only when the model's
//     last solve status is infeasible.
//
// The result is created fresh per call and holds constraint and variable
// handles of the caller's model, never internal copies.
func (c *Cascade) Run(m *mip.Model, solver mip.Solver) (*Result, error) {
	res := &Result{}

	bounds, integrality, intervals := CheckBounds(m.Variables())
	res.Bounds = bounds
	res.Integrality = integrality
	if len(bounds) > 0 || len(integrality) > 0 {
		return res, nil
	}

	res.Ranges = CheckRanges(m.Constraints(), intervals)
	if len(res.Ranges) > 0 {
		return res, nil
	}

	if solver == nil {
		res.Note = "IIS search skipped: no solver supplied"
		return res, nil
	}
	if m.Status() != mip.StatusInfeasible {
		res.Note = "IIS search skipped: model is not solver-confirmed infeasible"
		return res, nil
	}

	resolver := &IISResolver{Penalty: c.Penalty, SlackTol: c.SlackTol}
	iis, err := resolver.FindIIS(m, solver)
	if err != nil {
		return nil, err
	}
	if iis != nil {
		res.IIS = append(res.IIS, *iis)
	}
	return res, nil
}

// Run diagnoses a model with default cascade settings.
func Run(m *mip.Model, solver mip.Solver) (*Result, error) {
	c := &Cascade{}
	return c.Run(m, solver)
}
