package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Counter is the step counter shown next to the graph. It counts coloured
// nodes other than the two endpoints.
type Counter struct {
	Total int // nodes in the graph
	Count int
}

// Inc adds one visited node.
func (c *Counter) Inc() { c.Count++ }

// Text renders the counter label.
func (c Counter) Text() string {
	return fmt.Sprintf("%d nodes", c.Count)
}

// Fraction maps Count onto [0, 1] over the range [0, Total/2].
func (c Counter) Fraction() float64 {
	half := float64(c.Total) / 2
	if half <= 0 {
		return 1
	}
	return min(float64(c.Count)/half, 1)
}

var (
	counterStart = colorful.Hsl(102, 1, 0.5)
	counterEnd   = colorful.Hsl(0, 1, 0.5)
)

// Color blends in RGB from green at zero to red at half the graph, passing
// through olive rather than yellow.
func (c Counter) Color() colorful.Color {
	return counterStart.BlendRgb(counterEnd, c.Fraction())
}
