// Package pkg provides the libraries behind searchviz, a graph-search
// visualizer for road networks.
//
// # Overview
//
// searchviz steps a breadth-first, depth-first or bidirectional search across
// a graph one node per tick and reports each visit to a renderer. The pkg
// directory is organized into four areas:
//
//  1. Domain: [geom], [graph], [search] and [roads]
//  2. Animation: [animate] drives a search on a scheduler and feeds a Sink
//  3. Rendering: [render] and its svg, nodelink, term and stream sinks
//  4. Infrastructure: [pipeline], [cache], [config], [observability], [errors]
//
// # Architecture
//
//	KML export / roads JSON / graph file
//	         ↓
//	    [roads] package (placemarks → graph, joining close points)
//	         ↓
//	    [pipeline] package (cache, resolve endpoints, normalize)
//	         ↓
//	    [animate] package (Driver ticks the [search] agent)
//	         ↓
//	    Sink: SVG frames, terminal, Server-Sent Events
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil)
//	res, _ := runner.LoadGraph(ctx, pipeline.Options{Input: "roads.kml", Algorithm: "bidi"})
//
//	sink := svg.NewSink(svg.WithViewport(res.Viewport))
//	result, _ := animate.Complete(animate.Config{
//	    Graph:     res.Normalized,
//	    Algorithm: res.Algorithm,
//	    Source:    res.Source,
//	    Dest:      res.Dest,
//	    Sink:      sink,
//	})
//	os.WriteFile("run.svg", sink.SVG(), 0644)
package pkg
