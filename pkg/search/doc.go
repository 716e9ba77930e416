// Package search implements single-step graph traversals for animation.
//
// An [Agent] advances a search by exactly one node per [Agent.Step] call, so
// animation frames and algorithm steps stay in lock-step. The algorithm is
// chosen at construction time with an [Algorithm] tag:
//
//   - [BFS]: FIFO frontier, neighbours enqueued in adjacency order.
//   - [DFS]: LIFO frontier, neighbours pushed in adjacency order.
//   - [Bidirectional]: two breadth-first halves from the source and the target,
//     stepped alternately, stopping when they meet.
//
// # State machine
//
// Every agent moves through Ready (frontier non-empty), Stepping (one node
// popped and visited per call) and Terminal. BFS and DFS become terminal
// when the target is popped or the frontier empties. An unreachable target
// is an expected outcome, not an error: the frontier simply runs dry.
//
// A node is enqueued at most once, so no node is ever visited twice, and the
// start node is discovered up front so reaching it again is a no-op. Once
// terminal, Step keeps returning a Done step and never panics, which lets
// callers poll it redundantly.
//
// # Usage
//
//	agent, err := search.New(search.BFS, g, source, target)
//	for !agent.Done() {
//	    st := agent.Step()
//	    if !st.Done {
//	        draw(st.Node)
//	    }
//	}
//	path := agent.Path()
package search
