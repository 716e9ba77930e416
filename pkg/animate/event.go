package animate

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/searchviz/pkg/graph"
)

// EventKind classifies driver events.
type EventKind int

const (
	// VisitedSource reports a node visited from the source side.
	VisitedSource EventKind = iota
	// VisitedDest reports a node visited from the destination side of a
	// bidirectional search.
	VisitedDest
	// Done reports that the traversal is terminal. It is delivered once.
	Done
)

func (k EventKind) String() string {
	switch k {
	case VisitedSource:
		return "visitedSource"
	case VisitedDest:
		return "visitedDest"
	case Done:
		return "done"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one driver notification to a Sink.
type Event struct {
	Kind EventKind
	Node graph.NodeID // graph.None for Done
}

// MarshalJSON encodes the event as {"visitedSource": id},
// {"visitedDest": id} or {"done": true}.
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Kind == Done {
		return json.Marshal(map[string]bool{"done": true})
	}
	return json.Marshal(map[string]graph.NodeID{e.Kind.String(): e.Node})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if _, ok := m["done"]; ok {
		*e = Event{Kind: Done, Node: graph.None}
		return nil
	}
	for _, k := range []EventKind{VisitedSource, VisitedDest} {
		raw, ok := m[k.String()]
		if !ok {
			continue
		}
		var id graph.NodeID
		if err := json.Unmarshal(raw, &id); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*e = Event{Kind: k, Node: id}
		return nil
	}
	return fmt.Errorf("unknown event %s", data)
}

// Sink receives the static graph once and then the events of each tick: a
// visit, followed by Done on the tick that ends the search.
type Sink interface {
	DrawStaticGraph(g *graph.Graph, source, dest graph.NodeID)
	OnEvent(e Event)
}

// FrontierSink is a Sink that also draws the search's waiting nodes.
// OnFrontier receives a snapshot of the discovered but unvisited nodes and
// the node the next tick will expand (graph.None once the search is over).
type FrontierSink interface {
	Sink
	OnFrontier(waiting []graph.NodeID, next graph.NodeID)
}
