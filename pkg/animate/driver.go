package animate

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/observability"
	"github.com/matzehuels/searchviz/pkg/search"
)

// DefaultDelay is the inter-step delay of the demo page.
const DefaultDelay = 4 * time.Millisecond

// Config holds everything a driver needs. Nothing is read from globals
// except the registered observability hooks when Hooks is nil.
type Config struct {
	Graph     *graph.Graph
	Viewport  geom.Viewport // zero value keeps graph positions as they are
	Algorithm search.Algorithm
	Source    graph.NodeID
	Dest      graph.NodeID
	Delay     time.Duration // zero means DefaultDelay
	Sink      Sink

	Scheduler Scheduler                    // nil means NewClock()
	Hooks     observability.TraversalHooks // nil means observability.Traversal()
	Logger    *log.Logger                  // nil means log.Default()
	Context   context.Context              // passed to hooks; nil means Background
}

func (c *Config) setDefaults() {
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	if c.Scheduler == nil {
		c.Scheduler = NewClock()
	}
	if c.Hooks == nil {
		c.Hooks = observability.Traversal()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Context == nil {
		c.Context = context.Background()
	}
}

// State is the lifecycle state of a Driver.
type State int

const (
	Idle State = iota // initialized, not started
	Running
	Finished
	Destroyed
)

func (s State) String() string {
	return [...]string{"idle", "running", "finished", "destroyed"}[s]
}

// Driver steps one agent on a fixed cadence and holds exclusive use of it.
type Driver struct {
	mu     sync.Mutex
	state  State
	handle Handle
	start  time.Time

	graph  *graph.Graph
	agent  search.Agent
	alg    search.Algorithm
	source graph.NodeID
	dest   graph.NodeID
	sink   Sink
	sched  Scheduler
	delay  time.Duration
	hooks  observability.TraversalHooks
	logger *log.Logger
	ctx    context.Context
}

// Initialize validates cfg, normalizes the graph into the viewport, builds
// the agent and draws the static graph on the sink. The returned driver is
// idle until Start.
func Initialize(cfg Config) (*Driver, error) {
	if cfg.Graph == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "graph is required")
	}
	if cfg.Sink == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "sink is required")
	}
	if cfg.Delay < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "delay must not be negative, got %s", cfg.Delay)
	}
	cfg.setDefaults()

	g := cfg.Graph
	if cfg.Viewport != (geom.Viewport{}) {
		if err := apperrors.ValidateViewport(cfg.Viewport.Width, cfg.Viewport.Height); err != nil {
			return nil, err
		}
		g = g.Normalized(cfg.Viewport)
	}

	agent, err := search.New(cfg.Algorithm, g, cfg.Source, cfg.Dest)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		graph:  g,
		agent:  agent,
		alg:    cfg.Algorithm,
		source: cfg.Source,
		dest:   cfg.Dest,
		sink:   cfg.Sink,
		sched:  cfg.Scheduler,
		delay:  cfg.Delay,
		hooks:  cfg.Hooks,
		logger: cfg.Logger,
		ctx:    cfg.Context,
	}
	d.sink.DrawStaticGraph(g, cfg.Source, cfg.Dest)
	d.showFrontier()
	return d, nil
}

// showFrontier hands the agent's queue to sinks that draw it.
func (d *Driver) showFrontier() {
	if fs, ok := d.sink.(FrontierSink); ok {
		fs.OnFrontier(d.agent.Frontier(), d.agent.Next())
	}
}

// Start schedules the first tick. It is a no-op unless the driver is idle.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return
	}
	d.state = Running
	d.start = time.Now()
	d.hooks.OnRunStart(d.ctx, d.alg.String(), d.graph.Len())
	d.logger.Debug("animation started", "algorithm", d.alg, "nodes", d.graph.Len(), "delay", d.delay)
	d.handle = d.sched.Schedule(d.tick, d.delay)
}

func (d *Driver) tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return
	}

	st := d.agent.Step()
	if !st.Done {
		kind := VisitedSource
		if st.Side == search.Dest {
			kind = VisitedDest
		}
		d.sink.OnEvent(Event{Kind: kind, Node: st.Node})
		d.showFrontier()
		d.hooks.OnStep(d.ctx, d.alg.String(), st.Side.String())
	}

	if st.Done || d.agent.Done() {
		d.sink.OnEvent(Event{Kind: Done, Node: graph.None})
		d.state = Finished
		elapsed := time.Since(d.start)
		d.hooks.OnRunDone(d.ctx, d.alg.String(), d.agent.Visited(), d.agent.Found(), elapsed)
		d.logger.Debug("animation finished", "algorithm", d.alg, "visited", d.agent.Visited(), "found", d.agent.Found())
		return
	}
	d.handle = d.sched.Schedule(d.tick, d.delay)
}

// Destroy stops ticking. It is idempotent and safe in any state; after it
// returns the sink receives no more events.
func (d *Driver) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Destroyed:
		return
	case Running:
		d.sched.Cancel(d.handle)
		d.hooks.OnRunDestroyed(d.ctx, d.alg.String(), d.agent.Visited())
		d.logger.Debug("animation destroyed", "algorithm", d.alg, "visited", d.agent.Visited())
	}
	d.state = Destroyed
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Graph returns the normalized graph the driver animates.
func (d *Driver) Graph() *graph.Graph { return d.graph }

// Result summarizes the agent's progress.
type Result struct {
	Algorithm search.Algorithm
	Source    graph.NodeID
	Dest      graph.NodeID
	Visited   int
	Found     bool
	Path      []graph.NodeID
}

// Result reports the agent's progress so far.
func (d *Driver) Result() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Result{
		Algorithm: d.alg,
		Source:    d.source,
		Dest:      d.dest,
		Visited:   d.agent.Visited(),
		Found:     d.agent.Found(),
		Path:      d.agent.Path(),
	}
}
