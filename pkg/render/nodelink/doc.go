// Package nodelink renders a traversal as a Graphviz node-link diagram.
//
// # Overview
//
// This package exports the state of a search as DOT so it can be rendered by
// Graphviz or processed with external tools. Node positions are pinned to the
// animation layout and nodes are filled with their visit colour, so the
// output matches the final animation frame.
//
// # Usage
//
//	dot := nodelink.ToDOT(sink.Trace(), nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated graph is undirected, declares layout=neato and
// inputscale=72 so pos attributes are read as points, and carries the step
// counter as the graph label.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
