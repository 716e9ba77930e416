package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Viewport is the fixed-size drawing rectangle that coordinates are mapped into.
type Viewport struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Bounds returns the bounding box of pts.
// The result is empty (orb.Bound.IsEmpty) when pts is empty.
func Bounds(pts []Point) orb.Bound {
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp.Bound()
}

// Transform is a computed viewport mapping. The zero value is not usable;
// build one with NewTransform.
type Transform struct {
	MinX, MinY float64
	Scale      float64
	Height     float64
	// Identity is set when the input had no extent on either axis.
	Identity bool
}

// NewTransform computes the mapping of pts into vp.
func NewTransform(pts []Point, vp Viewport) Transform {
	b := Bounds(pts)
	if b.IsEmpty() {
		return Transform{Scale: 1, Identity: true}
	}

	dx := b.Right() - b.Left()
	dy := b.Top() - b.Bottom()

	scale := math.Inf(1)
	if dx > 0 {
		scale = vp.Width / dx
	}
	if dy > 0 {
		scale = math.Min(scale, vp.Height/dy)
	}
	if math.IsInf(scale, 1) {
		return Transform{Scale: 1, Identity: true}
	}

	return Transform{
		MinX:   b.Left(),
		MinY:   b.Bottom(),
		Scale:  scale,
		Height: vp.Height,
	}
}

// Apply maps a single point.
func (t Transform) Apply(p Point) Point {
	if t.Identity {
		return p
	}
	return Point{
		X: (p.X - t.MinX) * t.Scale,
		Y: t.Height - (p.Y-t.MinY)*t.Scale,
	}
}

// Normalize returns pts remapped into vp. The input slice is not modified.
func Normalize(pts []Point, vp Viewport) []Point {
	t := NewTransform(pts, vp)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}
