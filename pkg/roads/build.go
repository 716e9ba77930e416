package roads

import (
	"github.com/dhconnelly/rtreego"

	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
)

// DefaultMaxDistSquared is the join threshold for separate roads, in
// squared degrees.
const DefaultMaxDistSquared = 1e-13

// Options configures BuildGraph.
type Options struct {
	// MaxDistSquared joins a node to its nearest neighbour when their
	// squared distance is at most this. Zero means DefaultMaxDistSquared;
	// negative disables joining.
	MaxDistSquared float64
}

// entry is a graph node stored in the R-tree.
type entry struct {
	id  graph.NodeID
	pos rtreego.Point
}

func (e *entry) Bounds() rtreego.Rect { return e.pos.ToRect(0) }

// BuildGraph converts placemarks into a graph. Node ids follow point order
// across placemarks.
func BuildGraph(pms []Placemark, opts Options) (*graph.Graph, error) {
	maxDist := opts.MaxDistSquared
	if maxDist == 0 {
		maxDist = DefaultMaxDistSquared
	}

	b := graph.NewBuilder()
	var entries []*entry
	for _, pm := range pms {
		prev := graph.None
		for _, p := range pm.Points {
			id := b.AddNode(pm.DeclaredName, geom.Point{X: p.Lon, Y: p.Lat})
			if prev != graph.None {
				b.Connect(prev, id)
			}
			prev = id
			entries = append(entries, &entry{id: id, pos: rtreego.Point{p.Lon, p.Lat}})
		}
	}

	if maxDist > 0 && len(entries) > 1 {
		joinClose(b, entries, maxDist)
	}
	return b.Build()
}

// joinClose connects every node to its nearest other node within maxDist.
func joinClose(b *graph.Builder, entries []*entry, maxDist float64) {
	objs := make([]rtreego.Spatial, len(entries))
	for i, e := range entries {
		objs[i] = e
	}
	tree := rtreego.NewTree(2, 25, 50, objs...)

	for _, e := range entries {
		// The node itself is one of the two nearest; coincident points
		// can come back in either order.
		for _, s := range tree.NearestNeighbors(2, e.pos) {
			other, ok := s.(*entry)
			if !ok || other == nil || other.id == e.id {
				continue
			}
			if distSquared(e.pos, other.pos) <= maxDist {
				b.Connect(e.id, other.id)
			}
			break
		}
	}
}

func distSquared(a, b rtreego.Point) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}
