// Package render turns a running traversal into pictures.
//
// # Overview
//
// The root package holds what every output format shares:
//
//   - [Palette]: node, edge and endpoint colours plus node radius
//   - [Counter]: the "N nodes" step counter and its green-to-red colour
//   - [Trace]: per-node visit state accumulated from driver events
//   - [ToPNG]: SVG to PNG conversion for frame export
//
// Output formats live in subpackages, each providing an [animate.Sink] or a
// function of a [Trace]:
//
//   - [svg]: SVG frames, optionally capturing a frame sequence
//   - [nodelink]: Graphviz DOT with pinned positions, rendered by neato
//   - [term]: bubbletea terminal animation
//   - [stream]: Server-Sent Events for the HTTP server
//
// # Format Conversion
//
// [ToPNG] shells out to rsvg-convert (from librsvg):
//
//	frame := sink.SVG()
//	png, err := render.ToPNG(frame, 2.0)
//
// [animate.Sink]: github.com/matzehuels/searchviz/pkg/animate#Sink
// [svg]: github.com/matzehuels/searchviz/pkg/render/svg
// [nodelink]: github.com/matzehuels/searchviz/pkg/render/nodelink
// [term]: github.com/matzehuels/searchviz/pkg/render/term
// [stream]: github.com/matzehuels/searchviz/pkg/render/stream
package render
