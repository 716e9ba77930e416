// Package geom maps raw 2D point data into a fixed drawing viewport.
//
// Source data such as road coordinates arrives in arbitrary ranges
// (longitude/latitude, projected metres, hand-placed demo positions). Before
// a graph can be drawn, its node positions are remapped into the pixel
// rectangle of the target canvas:
//
//	scale = min(width/(maxX-minX), height/(maxY-minY))
//	x'    = (x - minX) * scale
//	y'    = height - (y - minY) * scale
//
// The y axis is flipped because display coordinates grow downward while
// source data grows upward. A single scale factor is used for both axes so
// the aspect ratio of the input is preserved.
//
// # Degenerate input
//
// An axis whose bounding box has zero extent is skipped when computing the
// scale. When both axes have zero extent (zero or one distinct point) the
// transform is the identity and points are returned unchanged. None of these
// cases is an error.
//
// Bounding boxes are computed with [github.com/paulmach/orb].
package geom
