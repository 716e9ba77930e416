package graph

import (
	"errors"
	"slices"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/geom"
)

// ErrEdgeOutOfRange is the cause of construction errors for edges that
// reference a node index outside the node sequence.
var ErrEdgeOutOfRange = errors.New("edge endpoint out of range")

// NodeID identifies a node by its index in the graph's node sequence.
type NodeID int

// None is the NodeID used when no node applies.
const None NodeID = -1

// Node is a positioned vertex with its undirected adjacency.
type Node struct {
	ID       NodeID
	Label    string
	Pos      geom.Point
	Adjacent []NodeID
}

// Edge is an unordered pair of node ids. Edges produced by a Graph have A < B.
type Edge struct {
	A, B NodeID
}

// Graph is an immutable adjacency-list graph of positioned nodes.
// The zero value is an empty graph.
type Graph struct {
	nodes []Node
	edges []Edge
}

// New builds a graph from nodes and edges. Node ids are reassigned to their
// index. Adjacency already present on the input nodes is merged with edges.
// Duplicate edges and self loops collapse.
func New(nodes []Node, edges []Edge) (*Graph, error) {
	b := &Builder{}
	for _, n := range nodes {
		b.AddNode(n.Label, n.Pos)
	}
	for i, n := range nodes {
		for _, nb := range n.Adjacent {
			b.Connect(NodeID(i), nb)
		}
	}
	for _, e := range edges {
		b.Connect(e.A, e.B)
	}
	return b.Build()
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Valid reports whether id indexes a node of g.
func (g *Graph) Valid(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) }

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if !g.Valid(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns the nodes in id order. The slice must not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Neighbors returns the adjacency list of id in insertion order,
// or nil if id is not a node of g. The slice must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if !g.Valid(id) {
		return nil
	}
	return g.nodes[id].Adjacent
}

// Adjacent reports whether a and b share an edge.
func (g *Graph) Adjacent(a, b NodeID) bool {
	return slices.Contains(g.Neighbors(a), b)
}

// Edges returns every edge once, ordered by lower endpoint and then by
// adjacency order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Points returns the node positions in id order.
func (g *Graph) Points() []geom.Point {
	pts := make([]geom.Point, len(g.nodes))
	for i, n := range g.nodes {
		pts[i] = n.Pos
	}
	return pts
}

// Lookup returns the first node whose label equals label.
func (g *Graph) Lookup(label string) (NodeID, bool) {
	for _, n := range g.nodes {
		if n.Label == label {
			return n.ID, true
		}
	}
	return None, false
}

// Normalized returns a copy of g with every position mapped into vp.
// Adjacency is shared with g since both graphs are read-only.
func (g *Graph) Normalized(vp geom.Viewport) *Graph {
	pts := geom.Normalize(g.Points(), vp)
	nodes := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		n.Pos = pts[i]
		nodes[i] = n
	}
	return &Graph{nodes: nodes, edges: g.edges}
}

// Builder accumulates nodes and edges and validates them in Build.
// The zero value is ready to use.
type Builder struct {
	nodes []Node
	pairs []Edge
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// AddNode appends a node and returns its id.
func (b *Builder) AddNode(label string, pos geom.Point) NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{ID: id, Label: label, Pos: pos})
	return id
}

// Len returns the number of nodes added so far.
func (b *Builder) Len() int { return len(b.nodes) }

// Connect records an undirected edge. Endpoints are checked in Build.
func (b *Builder) Connect(a, c NodeID) {
	b.pairs = append(b.pairs, Edge{A: a, B: c})
}

// Build validates the recorded edges and returns the graph. It fails with a
// MALFORMED_GRAPH error wrapping ErrEdgeOutOfRange on the first edge that
// references a missing node.
func (b *Builder) Build() (*Graph, error) {
	n := len(b.nodes)
	nodes := make([]Node, n)
	copy(nodes, b.nodes)
	for i := range nodes {
		nodes[i].Adjacent = nil
	}

	for _, e := range b.pairs {
		if e.A < 0 || int(e.A) >= n || e.B < 0 || int(e.B) >= n {
			return nil, apperrors.Wrap(apperrors.ErrCodeMalformedGraph, ErrEdgeOutOfRange,
				"edge %d-%d references a node outside [0, %d)", e.A, e.B, n)
		}
		if e.A == e.B || slices.Contains(nodes[e.A].Adjacent, e.B) {
			continue
		}
		nodes[e.A].Adjacent = append(nodes[e.A].Adjacent, e.B)
		nodes[e.B].Adjacent = append(nodes[e.B].Adjacent, e.A)
	}

	var edges []Edge
	for _, nd := range nodes {
		for _, nb := range nd.Adjacent {
			if nd.ID < nb {
				edges = append(edges, Edge{A: nd.ID, B: nb})
			}
		}
	}

	return &Graph{nodes: nodes, edges: edges}, nil
}
