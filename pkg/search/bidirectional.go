package search

import (
	"slices"

	"github.com/matzehuels/searchviz/pkg/graph"
)

// bidirectional alternates breadth-first steps from both ends. The halves
// meet when the side that just stepped has visited a node the other side has
// reached, or has discovered a node the other side has already visited.
// Meeting is checked after every single-sided step, so a node is never
// reported by both halves.
type bidirectional struct {
	src, dst *walker
	turn     Side

	meet     graph.NodeID
	terminal bool
}

func newBidirectional(g *graph.Graph, source, target graph.NodeID) *bidirectional {
	return &bidirectional{
		src:  newWalker(g, source, graph.None, fifo),
		dst:  newWalker(g, target, graph.None, fifo),
		turn: Source,
		meet: graph.None,
	}
}

func (b *bidirectional) half(s Side) (self, other *walker) {
	if s == Dest {
		return b.dst, b.src
	}
	return b.src, b.dst
}

func (b *bidirectional) Step() Step {
	if b.terminal {
		return done
	}

	side := b.turn
	w, other := b.half(side)
	if len(w.frontier) == 0 {
		side = 1 - side
		w, other = other, w
	}
	b.turn = 1 - side

	n, added := w.expand()
	if other.reached(n) {
		b.meet = n
	} else {
		for _, a := range added {
			if other.visited[a] {
				b.meet = a
				break
			}
		}
	}

	if b.meet != graph.None || (len(b.src.frontier) == 0 && len(b.dst.frontier) == 0) {
		b.terminal = true
	}
	return Step{Side: side, Node: n}
}

func (b *bidirectional) Done() bool   { return b.terminal }
func (b *bidirectional) Found() bool  { return b.meet != graph.None }
func (b *bidirectional) Visited() int { return b.src.count + b.dst.count }

// Meet returns the node where the halves met, or graph.None.
func (b *bidirectional) Meet() graph.NodeID { return b.meet }

func (b *bidirectional) Frontier() []graph.NodeID {
	return append(slices.Clone(b.src.frontier), b.dst.frontier...)
}

func (b *bidirectional) Next() graph.NodeID {
	if b.terminal {
		return graph.None
	}
	w, other := b.half(b.turn)
	if len(w.frontier) == 0 {
		w = other
	}
	return w.peek()
}

func (b *bidirectional) Path() []graph.NodeID {
	if b.meet == graph.None {
		return nil
	}
	head := b.src.trace(b.meet)
	tail := b.dst.trace(b.meet)
	slices.Reverse(tail)
	return append(head, tail[1:]...)
}
