// Package graph provides the positioned, undirected graph that searches run on.
//
// A [Graph] is an ordered sequence of nodes, where a node's index is its
// identity ([NodeID]), plus the undirected edges between them. Each node
// carries a position in drawing space and its adjacency list. Edges are a
// derived view of adjacency and are reported with the lower id first.
//
// # Invariants
//
//   - Every edge endpoint is a valid index into the node sequence.
//   - Adjacency is symmetric: B is adjacent to A exactly when A is adjacent to B.
//   - Adjacency lists keep insertion order and contain no duplicates or self loops.
//   - A Graph is read-only once built and safe for concurrent readers.
//
// Construction fails fast with a MALFORMED_GRAPH error when an edge
// references an index outside the node sequence; such edges are never
// silently dropped.
//
// # Construction
//
//	b := graph.NewBuilder()
//	a := b.AddNode("A", geom.Point{X: 0, Y: 0})
//	c := b.AddNode("C", geom.Point{X: 10, Y: 10})
//	b.Connect(a, c)
//	g, err := b.Build()
//
// # Serialization
//
// Graphs use a compact node-link JSON format where edges are index pairs:
//
//	{
//	  "nodes": [{"id": 0, "label": "A", "x": 0, "y": 0}, {"id": 1, "x": 10, "y": 0}],
//	  "edges": [[0, 1]]
//	}
//
// The same document can be written as YAML. [ReadFile] and [WriteFile] pick
// the codec from the file extension.
package graph
