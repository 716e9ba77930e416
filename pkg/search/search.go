package search

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/graph"
)

// ErrUnknownNode is the cause of errors for source or target ids that are
// not nodes of the graph.
var ErrUnknownNode = errors.New("unknown node")

// Algorithm selects the traversal strategy of an Agent.
type Algorithm int

const (
	BFS Algorithm = iota
	DFS
	Bidirectional
)

var algorithmNames = map[Algorithm]string{
	BFS:           "bfs",
	DFS:           "dfs",
	Bidirectional: "bidirectional",
}

// String returns the canonical lower-case name.
func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm accepts the canonical names plus the short forms
// "breadth-first", "depth-first", "bidi" and "bi-directional".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first":
		return BFS, nil
	case "dfs", "depth-first":
		return DFS, nil
	case "bidirectional", "bi-directional", "bidi":
		return Bidirectional, nil
	}
	return 0, apperrors.New(apperrors.ErrCodeInvalidAlgorithm,
		"unknown algorithm %q (must be 'bfs', 'dfs' or 'bidirectional')", s)
}

// Side tells which end of the search produced a step.
type Side int

const (
	// Source is the side rooted at the search's start node.
	// Single-ended searches only ever report Source.
	Source Side = iota
	// Dest is the side rooted at the target node of a bidirectional search.
	Dest
)

func (s Side) String() string {
	if s == Dest {
		return "dest"
	}
	return "source"
}

// Step is the result of one Agent.Step call: either a visited node or Done.
type Step struct {
	Side Side
	Node graph.NodeID
	Done bool
}

// Agent is an externally driven, single-step graph traversal.
type Agent interface {
	// Step visits one node. After the agent is terminal it returns
	// Step{Done: true, Node: graph.None} on every call.
	Step() Step
	// Done reports whether the agent is terminal.
	Done() bool
	// Found reports whether the target was reached (or, for bidirectional
	// searches, whether the two halves met).
	Found() bool
	// Path returns the source-to-target path once Found, or nil.
	Path() []graph.NodeID
	// Visited returns the number of nodes visited so far.
	Visited() int
	// Frontier returns a snapshot of the discovered but unvisited nodes.
	Frontier() []graph.NodeID
	// Next returns the node the following Step will visit, or graph.None
	// once the agent is terminal.
	Next() graph.NodeID
}

// New builds an agent for alg over g from source to target.
// It fails with an INVALID_NODE error if either id is not a node of g.
func New(alg Algorithm, g *graph.Graph, source, target graph.NodeID) (Agent, error) {
	for _, id := range []graph.NodeID{source, target} {
		if !g.Valid(id) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidNode, ErrUnknownNode,
				"node %d not in graph of %d nodes", id, g.Len())
		}
	}

	switch alg {
	case BFS:
		return newWalker(g, source, target, fifo), nil
	case DFS:
		return newWalker(g, source, target, lifo), nil
	case Bidirectional:
		return newBidirectional(g, source, target), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidAlgorithm, "unsupported algorithm %v", alg)
}

var done = Step{Done: true, Node: graph.None}
