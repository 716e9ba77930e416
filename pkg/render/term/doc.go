// Package term animates a traversal in the terminal with bubbletea.
//
// [Model] draws the graph onto a character grid coloured with lipgloss.
// [Sink] adapts the animation driver to a running tea.Program by turning
// driver callbacks into messages:
//
//	ctrl := animate.NewController(cfg) // cfg.Sink = sink
//	p := tea.NewProgram(term.NewModel(ctrl, search.BFS, "roads.json"))
//	sink.Attach(p.Send)
//	_, err := p.Run()
//	ctrl.Stop()
//
// The model starts, restarts and reconfigures the controller from commands,
// never from Update, because the driver blocks in Program.Send while it holds
// its lock. Sinks drawing the queue get [FrontierMsg] after every visit.
package term
