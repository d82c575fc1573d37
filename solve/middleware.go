package solve

import "sync"

// Decision labels what the branch-and-bound search did with a node.
type Decision string

const (
	NodeDegenerate     Decision = "subproblem contains a degenerate (singular) matrix"
	NodeNotFeasible    Decision = "subproblem has no feasible solution"
	NodeUnbounded      Decision = "subproblem relaxation is unbounded"
	WorseThanIncumbent Decision = "worse than incumbent"
	BetterBranching    Decision = "better than incumbent but not integer feasible, so branching"
	BetterFeasible     Decision = "better than incumbent and integer feasible, so replacing incumbent"
	RootFeasible       Decision = "root relaxation is integer feasible"
)

// Node is a summary of one solved subproblem handed to middleware. We do
// not hand out the subproblem struct itself to keep middleware from pinning
// the search tree in memory.
type Node struct {
	ID     int64
	Parent int64
	Z      float64
	X      []float64
}

// Middleware receives each subproblem solution and the decision taken on it.
// Implementations must be safe for use from a single checker goroutine.
type Middleware interface {
	ProcessDecision(Node, Decision)
}

type dummyMiddleware struct{}

func (dummyMiddleware) ProcessDecision(Node, Decision) {}

// Recorder is a Middleware that counts decisions, for tests and debugging.
type Recorder struct {
	mu     sync.Mutex
	counts map[Decision]int
	nodes  int
}

func NewRecorder() *Recorder {
	return &Recorder{counts: make(map[Decision]int)}
}

func (r *Recorder) ProcessDecision(n Node, d Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[d]++
	r.nodes++
}

// Nodes returns the number of nodes seen.
func (r *Recorder) Nodes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nodes
}

// Count returns how often a decision was taken.
func (r *Recorder) Count(d Decision) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[d]
}
