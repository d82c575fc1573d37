package solve

import (
	"math"
	"sync"
	"sync/atomic"
)

// enumerationTree runs the branch-and-bound search over subproblems. The
// buffer pump decouples the solve workers from the single solution checker
// so that neither side can deadlock on an unbuffered channel.
type enumerationTree struct {
	active     chan subProblem
	toSolve    chan subProblem
	candidates chan solution

	incumbent *solution

	// track the number of jobs (solving + checking) currently in progress.
	inProgress sync.WaitGroup

	rootProblem subProblem

	simplexTol float64
	intTol     float64
	middleware Middleware

	nextID int64

	// first unexpected solver failure; inspected after the search drains.
	fatal error
}

func newEnumerationTree(root subProblem, simplexTol, intTol float64, mw Middleware) *enumerationTree {
	if mw == nil {
		mw = dummyMiddleware{}
	}
	return &enumerationTree{
		// do not use buffered channels: buffering is managed by the pump.
		active:     make(chan subProblem),
		toSolve:    make(chan subProblem),
		candidates: make(chan solution),

		rootProblem: root,
		simplexTol:  simplexTol,
		intTol:      intTol,
		middleware:  mw,
	}
}

// startSearch solves the root relaxation and, if it is fractional, runs the
// worker pool until the tree is exhausted. It returns the incumbent (nil if
// no integer-feasible solution exists) or the root relaxation's error.
func (p *enumerationTree) startSearch(nworkers int) (*solution, error) {
	rootSolution := p.rootProblem.solve(p.simplexTol)
	if rootSolution.err != nil {
		return nil, rootSolution.err
	}

	if rootSolution.integerFeasible(p.intTol) {
		p.middleware.ProcessDecision(nodeOf(rootSolution), RootFeasible)
		return &rootSolution, nil
	}

	go p.bufferPump()
	go p.solutionChecker()
	for j := 0; j < nworkers; j++ {
		go p.solveWorker()
	}

	// seed the search with the fractional root relaxation.
	p.postCandidate(rootSolution)

	p.inProgress.Wait()

	// close the channel feeding the pump, which closes the others.
	close(p.toSolve)

	if p.fatal != nil {
		return nil, p.fatal
	}
	return p.incumbent, nil
}

func (p *enumerationTree) postCandidate(s solution) {
	p.inProgress.Add(1)
	p.candidates <- s
}

func (p *enumerationTree) enqueueProblems(probs ...subProblem) {
	for _, prob := range probs {
		prob.id = atomic.AddInt64(&p.nextID, 1)
		p.inProgress.Add(1)
		p.toSolve <- prob
	}
}

// bufferPump shuttles subproblems from the unbounded queue into the worker
// pool. It exploits nil channels: select skips a send on a nil channel, so
// output is only armed while the buffer is nonempty.
func (p *enumerationTree) bufferPump() {
	var buffer []subProblem
	var next subProblem
	var output chan subProblem

loopy:
	for {
		select {
		case msg, open := <-p.toSolve:
			if !open {
				break loopy
			}
			buffer = append(buffer, msg)

		case output <- next:
			if len(buffer) > 1 {
				buffer = buffer[1:]
			} else {
				buffer = nil
			}
		}

		if len(buffer) > 0 {
			next = buffer[0]
			output = p.active
		} else {
			output = nil
		}
	}
	close(p.active)
	close(p.candidates)
}

func (p *enumerationTree) solveWorker() {
	for prob := range p.active {
		p.postCandidate(prob.solve(p.simplexTol))
		p.inProgress.Done()
	}
}

// solutionChecker is the single consumer of candidate solutions: it owns the
// incumbent and decides whether to prune, replace the incumbent, or branch.
func (p *enumerationTree) solutionChecker() {
	for candidate := range p.candidates {

		// objective value of the incumbent, +Inf if none is set. The
		// internal objective is always minimization.
		incumbentZ := math.Inf(1)
		if p.incumbent != nil {
			incumbentZ = p.incumbent.raw
		}

		switch {
		case candidate.err != nil:
			decision, expected := expectedFailures[candidate.err]
			if !expected {
				if p.fatal == nil {
					p.fatal = candidate.err
				}
				break
			}
			p.middleware.ProcessDecision(nodeOf(candidate), decision)

		case incumbentZ <= candidate.raw:
			p.middleware.ProcessDecision(nodeOf(candidate), WorseThanIncumbent)

		default:
			if candidate.integerFeasible(p.intTol) {
				// take a copy before storing a pointer: candidate is the
				// loop variable.
				inc := candidate
				p.incumbent = &inc
				p.middleware.ProcessDecision(nodeOf(candidate), BetterFeasible)
			} else {
				p.middleware.ProcessDecision(nodeOf(candidate), BetterBranching)
				p1, p2 := candidate.branch()
				p.enqueueProblems(p1, p2)
			}
		}

		p.inProgress.Done()
	}
}

func nodeOf(s solution) Node {
	return Node{
		ID:     s.problem.id,
		Parent: s.problem.parent,
		Z:      s.raw,
		X:      s.x,
	}
}
