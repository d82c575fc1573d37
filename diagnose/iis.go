package diagnose

import (
	"errors"
	"fmt"

	"github.com/lpsleuth/lpsleuth/mip"
)

// ErrNumericalInstability is returned when the elastic relaxation or the
// deletion filter observes a state that a well-posed elastic program cannot
// produce. A partial IIS would be unsound at that point, so the search
// terminates instead of guessing.
var ErrNumericalInstability = errors.New("diagnose: numerical instability in IIS search")

const (
	// DefaultPenalty is the objective coefficient put on each elastic
	// slack during relaxation.
	DefaultPenalty = 1.0

	// DefaultSlackTol is the magnitude above which a slack counts as
	// actively relieving its constraint.
	DefaultSlackTol = 1e-5
)

// IISResolver extracts one irreducible infeasible subset from a model the
// solver has already confirmed infeasible. The zero value uses the default
// penalty and slack tolerance.
type IISResolver struct {
	Penalty  float64
	SlackTol float64
}

func (r *IISResolver) penalty() float64 {
	if r.Penalty > 0 {
		return r.Penalty
	}
	return DefaultPenalty
}

func (r *IISResolver) slackTol() float64 {
	if r.SlackTol > 0 {
		return r.SlackTol
	}
	return DefaultSlackTol
}

// FindIIS searches for one IIS. It returns (nil, nil) when the model's last
// solve status is not infeasible: without a solver-confirmed infeasible
// verdict there is no IIS to look for.
//
// The search never touches the caller's model: it works on an internal copy
// whose elements are mapped back to the original at the end. Infeasibility
// of a linear or mixed-integer system is monotonic under constraint
// removal, which is what makes the deletion filter in the final phase
// sound.
func (r *IISResolver) FindIIS(m *mip.Model, solver mip.Solver) (*IrreducibleInfeasibleSubset, error) {
	if m.Status() != mip.StatusInfeasible {
		return nil, nil
	}

	ws, err := newIISWorkspace(m, solver, r.penalty())
	if err != nil {
		return nil, err
	}

	if err := ws.fixViolatedSlacks(r.slackTol()); err != nil {
		return nil, err
	}

	members, err := ws.deletionFilter()
	if err != nil {
		return nil, err
	}

	// map the surviving copy constraints back onto the caller's model.
	// Synthetic constructs of the copy (none today, but the map is the
	// gatekeeper) have no original and are dropped.
	var originals []*mip.Constraint
	for _, con := range members {
		if orig, ok := ws.refs.OriginalConstraint(con); ok {
			originals = append(originals, orig)
		}
	}
	if len(originals) == 0 {
		return nil, nil
	}
	return &IrreducibleInfeasibleSubset{Constraints: originals}, nil
}

// iisWorkspace is the mutable state of one FindIIS call: the model copy,
// the reference map back to the original, the still-elastic constraints and
// the ones made hard again. It is owned exclusively by the call that
// created it.
type iisWorkspace struct {
	model *mip.Model
	refs  *mip.RefMap

	// still-elastic constraints, keyed by constraint, plus the creation
	// order in which they are scanned. The explicit order makes the
	// forward loop deterministic; map iteration order would not be.
	elastic map[*mip.Constraint]*mip.Relief
	order   []*mip.Constraint

	// constraints whose relief was taken away in at least one direction, in
	// the order of their first fix. This order is also the removal-test
	// order of the deletion filter. An equality that is only hard on one
	// side still counts: its fixed direction can be what makes the model
	// infeasible, so it must be a deletion-filter candidate.
	hardened    []*hardenedConstraint
	hardenedIdx map[*mip.Constraint]*hardenedConstraint

	// total number of slack variables introduced by the relaxation; upper
	// bound on the number of fixes the forward loop can perform.
	nslacks int
}

// hardenedConstraint collects the fixed slacks of one constraint. slacks and
// dirs grow as further directions are fixed; an equality can accumulate two.
type hardenedConstraint struct {
	con    *mip.Constraint
	slacks []*mip.Variable
	dirs   []mip.ReliefDir
}

// recordFix merges a fixed slack into the constraint's hardened entry,
// creating the entry on first fix.
func (ws *iisWorkspace) recordFix(con *mip.Constraint, slack *mip.Variable, dir mip.ReliefDir) {
	h, ok := ws.hardenedIdx[con]
	if !ok {
		h = &hardenedConstraint{con: con}
		ws.hardened = append(ws.hardened, h)
		ws.hardenedIdx[con] = h
	}
	h.slacks = append(h.slacks, slack)
	h.dirs = append(h.dirs, dir)
}

// newIISWorkspace runs the elastic-relaxation phase: clone the model,
// attach the solver silenced, replace the objective with pure penalty
// minimization, relax every constraint, and solve once.
func newIISWorkspace(m *mip.Model, solver mip.Solver, penalty float64) (*iisWorkspace, error) {
	cp, refs := m.Clone()
	cp.SetSolver(solver)
	cp.SetQuiet(true)
	cp.DropObjective()

	ws := &iisWorkspace{
		model:       cp,
		refs:        refs,
		elastic:     make(map[*mip.Constraint]*mip.Relief),
		hardenedIdx: make(map[*mip.Constraint]*hardenedConstraint),
	}

	for _, con := range cp.Constraints() {
		relief := cp.Elasticize(con, penalty)
		ws.elastic[con] = relief
		ws.order = append(ws.order, con)
		ws.nslacks += len(relief.Slacks)
	}

	if err := cp.Optimize(); err != nil {
		return nil, fmt.Errorf("diagnose: solving elastic relaxation: %w", err)
	}
	return ws, nil
}

// fixViolatedSlacks is the forward phase: as long as the relaxed model
// stays solvable, find the first still-elastic constraint whose slack is
// actively relieving it, take that relief away, and re-solve. Once the
// model turns infeasible, the constraints hardened so far, fully or in a
// single direction, already suffice to reproduce the infeasibility.
//
// Every pass fixes at least one slack, so the number of introduced slacks
// bounds the iteration count.
func (ws *iisWorkspace) fixViolatedSlacks(tol float64) error {
	for iter := 0; iter < ws.nslacks; iter++ {
		if ws.model.Status() == mip.StatusInfeasible {
			return nil
		}

		fixed := false
		for _, con := range ws.order {
			relief, ok := ws.elastic[con]
			if !ok {
				continue
			}
			active := relief.Active(tol)
			if len(active) == 0 {
				continue
			}

			switch {
			case len(relief.Slacks) == 2 && len(active) == 2:
				// both directions relieving at once cannot happen in a
				// well-posed elastic program.
				return fmt.Errorf("diagnose: constraint %q has both slack directions active: %w",
					con.Name(), ErrNumericalInstability)

			case len(relief.Slacks) == 1:
				// single relief term: remove it and make the constraint
				// hard again.
				slack, dir := relief.Slacks[0], relief.Dirs[0]
				slack.Fix(0)
				delete(ws.elastic, con)
				ws.recordFix(con, slack, dir)

			default:
				// two slack terms, one active: fix that one and keep the
				// constraint elastic in the remaining direction. The fixed
				// direction is hard from here on, so the constraint already
				// qualifies for the deletion filter.
				i := active[0]
				slack, dir := relief.Slacks[i], relief.Dirs[i]
				slack.Fix(0)
				relief.Drop(i)
				ws.recordFix(con, slack, dir)
			}

			fixed = true
			break
		}

		if !fixed {
			return nil
		}
		if err := ws.model.Optimize(); err != nil {
			return fmt.Errorf("diagnose: re-solving after slack fix: %w", err)
		}
	}
	return nil
}

// deletionFilter is the backward phase: walk the hardened constraints in
// the order they were first fixed, re-relax each one in isolation (all of
// its fixed directions at once, so the constraint is removed as a whole)
// and re-solve. If the model stays infeasible without this constraint's
// hardness, the constraint is not load-bearing and stays relaxed. If the
// model turns solvable, the constraint is part of the IIS and is made hard
// again before moving on.
func (ws *iisWorkspace) deletionFilter() ([]*mip.Constraint, error) {
	var members []*mip.Constraint

	for _, h := range ws.hardened {
		for i, slack := range h.slacks {
			slack.Unfix()
			slack.SetBounds(mip.ReliefBounds(h.dirs[i]))
		}

		if err := ws.model.Optimize(); err != nil {
			return nil, fmt.Errorf("diagnose: re-solving in deletion filter: %w", err)
		}

		switch st := ws.model.Status(); st {
		case mip.StatusInfeasible:
			// still infeasible without it: not a member, leave relaxed.

		case mip.StatusOptimal:
			// feasible without it: load-bearing, re-fix and keep.
			for _, slack := range h.slacks {
				slack.Fix(0)
			}
			members = append(members, h.con)

		default:
			return nil, fmt.Errorf("diagnose: unexpected status %q in deletion filter: %w",
				st, ErrNumericalInstability)
		}
	}

	return members, nil
}
