// Package svg renders traversal frames as SVG.
//
// [Sink] implements animate.Sink. It draws the static graph once, recolours
// nodes as visit events arrive and renders the current frame on demand:
//
//	sink := svg.NewSink(svg.WithViewport(vp), svg.WithFrames(1))
//	res, err := animate.Complete(animate.Config{..., Sink: sink})
//	final := sink.SVG()
//	frames := sink.Frames()
//
// Nodes are circles, edges plain lines and the step counter sits in the
// top-left corner, coloured from green to red as the search spreads.
package svg
