package render

import (
	"slices"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
)

// NodeState is the colouring state of one node.
type NodeState int

const (
	StateInitial NodeState = iota
	StateSourceVisited
	StateDestVisited
	StateSource
	StateDest
	StateWaiting // discovered, queued for a visit
	StateNext    // the node the next tick expands
)

// Trace accumulates driver events into per-node state. It is not safe for
// concurrent use; sinks guard it with their own lock.
type Trace struct {
	Graph   *graph.Graph
	Source  graph.NodeID
	Dest    graph.NodeID
	Counter Counter
	Events  int
	Done    bool

	states  []NodeState
	waiting []bool
	queue   []graph.NodeID
	next    graph.NodeID
}

// NewTrace returns a trace with only the endpoints coloured.
func NewTrace(g *graph.Graph, source, dest graph.NodeID) *Trace {
	t := &Trace{
		Graph:   g,
		Source:  source,
		Dest:    dest,
		Counter: Counter{Total: g.Len()},
		states:  make([]NodeState, g.Len()),
		waiting: make([]bool, g.Len()),
		next:    graph.None,
	}
	if g.Valid(source) {
		t.states[source] = StateSource
	}
	if g.Valid(dest) {
		t.states[dest] = StateDest
	}
	return t
}

// Apply records one event. Visits of the endpoints and repeated visits do
// not change state or the counter.
func (t *Trace) Apply(e animate.Event) {
	t.Events++
	if e.Kind == animate.Done {
		t.Done = true
		return
	}
	if !t.Graph.Valid(e.Node) || t.states[e.Node] != StateInitial {
		return
	}
	if e.Kind == animate.VisitedDest {
		t.states[e.Node] = StateDestVisited
	} else {
		t.states[e.Node] = StateSourceVisited
	}
	t.Counter.Inc()
}

// SetFrontier replaces the queued nodes and the next node to expand.
// Ids outside the graph are ignored.
func (t *Trace) SetFrontier(waiting []graph.NodeID, next graph.NodeID) {
	clear(t.waiting)
	t.queue = t.queue[:0]
	for _, id := range waiting {
		if t.Graph.Valid(id) {
			t.waiting[id] = true
			t.queue = append(t.queue, id)
		}
	}
	t.next = next
}

// Queue returns the queued nodes in frontier order.
func (t *Trace) Queue() []graph.NodeID { return slices.Clone(t.queue) }

// Next returns the node the next tick expands, or graph.None.
func (t *Trace) Next() graph.NodeID { return t.next }

// State returns the state of node id. Queue states only show on nodes that
// are neither endpoints nor visited.
func (t *Trace) State(id graph.NodeID) NodeState {
	if !t.Graph.Valid(id) {
		return StateInitial
	}
	st := t.states[id]
	switch {
	case st != StateInitial:
		return st
	case id == t.next:
		return StateNext
	case t.waiting[id]:
		return StateWaiting
	}
	return st
}

// Clone returns an independent copy.
func (t *Trace) Clone() *Trace {
	c := *t
	c.states = slices.Clone(t.states)
	c.waiting = slices.Clone(t.waiting)
	c.queue = slices.Clone(t.queue)
	return &c
}
