package animate

import (
	"sync"

	"github.com/matzehuels/searchviz/pkg/graph"
)

// Recorder is a Sink that keeps everything it receives.
type Recorder struct {
	mu     sync.Mutex
	graph  *graph.Graph
	source graph.NodeID
	dest   graph.NodeID
	draws  int
	events []Event
	fronts []Frontier
}

// Frontier is one snapshot delivered through FrontierSink.OnFrontier.
type Frontier struct {
	Waiting []graph.NodeID
	Next    graph.NodeID
}

var _ FrontierSink = (*Recorder)(nil)

func (r *Recorder) DrawStaticGraph(g *graph.Graph, source, dest graph.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph, r.source, r.dest = g, source, dest
	r.draws++
}

func (r *Recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) OnFrontier(waiting []graph.NodeID, next graph.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fronts = append(r.fronts, Frontier{Waiting: waiting, Next: next})
}

// Frontiers returns the recorded frontier snapshots in order.
func (r *Recorder) Frontiers() []Frontier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frontier(nil), r.fronts...)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Draws returns how many times DrawStaticGraph was called.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// Graph returns the graph passed to DrawStaticGraph.
func (r *Recorder) Graph() *graph.Graph {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph
}

// Visited returns the nodes of the recorded visit events in order.
func (r *Recorder) Visited() []graph.NodeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []graph.NodeID
	for _, e := range r.events {
		if e.Kind != Done {
			ids = append(ids, e.Node)
		}
	}
	return ids
}
