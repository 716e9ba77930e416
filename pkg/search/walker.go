package search

import (
	"slices"

	"github.com/matzehuels/searchviz/pkg/graph"
)

type discipline int

const (
	fifo discipline = iota
	lifo
)

// walker is a single-ended traversal whose frontier order is set by its
// discipline. Bidirectional searches run two fifo walkers without targets.
type walker struct {
	g      *graph.Graph
	target graph.NodeID
	order  discipline

	frontier   []graph.NodeID
	discovered []bool // enqueued or visited
	visited    []bool
	parent     []graph.NodeID
	count      int

	found    bool
	terminal bool
}

func newWalker(g *graph.Graph, source, target graph.NodeID, order discipline) *walker {
	w := &walker{
		g:          g,
		target:     target,
		order:      order,
		frontier:   []graph.NodeID{source},
		discovered: make([]bool, g.Len()),
		visited:    make([]bool, g.Len()),
		parent:     make([]graph.NodeID, g.Len()),
	}
	for i := range w.parent {
		w.parent[i] = graph.None
	}
	w.discovered[source] = true
	return w
}

// peek returns the node pop would return, or graph.None on an empty frontier.
func (w *walker) peek() graph.NodeID {
	switch {
	case len(w.frontier) == 0:
		return graph.None
	case w.order == lifo:
		return w.frontier[len(w.frontier)-1]
	}
	return w.frontier[0]
}

func (w *walker) pop() graph.NodeID {
	var n graph.NodeID
	if w.order == lifo {
		last := len(w.frontier) - 1
		n = w.frontier[last]
		w.frontier = w.frontier[:last]
	} else {
		n = w.frontier[0]
		w.frontier = w.frontier[1:]
	}
	return n
}

// expand pops one node, marks it visited and enqueues its undiscovered
// neighbours. It returns the visited node and the newly discovered ones.
func (w *walker) expand() (graph.NodeID, []graph.NodeID) {
	n := w.pop()
	w.visited[n] = true
	w.count++

	var added []graph.NodeID
	for _, nb := range w.g.Neighbors(n) {
		if w.discovered[nb] {
			continue
		}
		w.discovered[nb] = true
		w.parent[nb] = n
		w.frontier = append(w.frontier, nb)
		added = append(added, nb)
	}
	return n, added
}

func (w *walker) Step() Step {
	if w.terminal {
		return done
	}
	n, _ := w.expand()
	if n == w.target {
		w.found = true
		w.terminal = true
	} else if len(w.frontier) == 0 {
		w.terminal = true
	}
	return Step{Side: Source, Node: n}
}

func (w *walker) Done() bool  { return w.terminal }
func (w *walker) Found() bool { return w.found }
func (w *walker) Visited() int { return w.count }

func (w *walker) Frontier() []graph.NodeID { return slices.Clone(w.frontier) }

func (w *walker) Next() graph.NodeID {
	if w.terminal {
		return graph.None
	}
	return w.peek()
}

func (w *walker) Path() []graph.NodeID {
	if !w.found {
		return nil
	}
	return w.trace(w.target)
}

// trace follows parent links from n back to the root and returns the
// root-to-n path.
func (w *walker) trace(n graph.NodeID) []graph.NodeID {
	var path []graph.NodeID
	for cur := n; cur != graph.None; cur = w.parent[cur] {
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// inFrontier reports whether n is discovered but not yet visited.
func (w *walker) inFrontier(n graph.NodeID) bool {
	return w.discovered[n] && !w.visited[n]
}

// reached reports whether n is discovered, visited or not.
func (w *walker) reached(n graph.NodeID) bool {
	return w.discovered[n]
}
