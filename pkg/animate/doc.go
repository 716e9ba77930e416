// Package animate drives a search agent on a fixed cadence and forwards each
// step to a rendering sink.
//
// The Driver decouples algorithm stepping from wall-clock time so a person can
// watch a traversal unfold. Timing goes through a [Scheduler], so the same
// driver runs on real timers ([NewClock]) or on a deterministic virtual clock
// ([NewVirtual]) in tests and batch rendering.
//
// # Lifecycle
//
//	d, err := animate.Initialize(animate.Config{
//	    Graph:     g,
//	    Viewport:  geom.Viewport{Width: 600, Height: 350},
//	    Algorithm: search.BFS,
//	    Source:    0,
//	    Dest:      8,
//	    Delay:     4 * time.Millisecond,
//	    Sink:      sink,
//	})
//	d.Start()
//	// ...
//	d.Destroy()
//
// Initialize normalizes the graph into the viewport, builds the agent and makes
// the one-time [Sink.DrawStaticGraph] call. Start schedules the first tick.
// Every tick calls the agent once and delivers the visit as VisitedSource or
// VisitedDest. The tick whose visit makes the agent terminal also delivers
// the single Done right after it, and the driver stops rescheduling. The next
// tick is only scheduled when the current one has finished, so ticks never
// overlap.
//
// A sink that also implements [FrontierSink] gets the waiting nodes and the
// next node to expand once before the first tick and after every visit.
//
// # Cancellation
//
// Destroy stops the driver regardless of traversal state. It is idempotent and
// safe after natural completion. Once Destroy returns, the sink receives no
// further events: ticks hold the driver's lock while delivering, and a tick
// that fires after Destroy is a no-op. For the same reason a sink must not
// call Destroy from inside OnEvent.
//
// Restarting means destroying the old driver and initializing a fresh one;
// [Controller] does this for the restart button.
package animate
