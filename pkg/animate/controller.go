package animate

import (
	"context"
	"sync"

	"github.com/matzehuels/searchviz/pkg/graph"
)

// Controller owns at most one live driver and backs the restart button.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	driver *Driver
}

// NewController returns a controller for cfg. No driver exists until Start.
func NewController(cfg Config) *Controller {
	cfg.setDefaults()
	return &Controller{cfg: cfg}
}

// Start initializes and starts a driver unless one already exists.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver != nil {
		return nil
	}
	return c.launch()
}

// Restart destroys the current driver, then initializes and starts a fresh
// one. Ticks scheduled by the old driver never reach the sink afterwards.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver != nil {
		c.driver.Destroy()
		c.driver = nil
	}
	return c.launch()
}

// Reconfigure applies fn to the configuration and restarts.
func (c *Controller) Reconfigure(fn func(*Config)) error {
	c.mu.Lock()
	fn(&c.cfg)
	c.cfg.setDefaults()
	c.mu.Unlock()
	return c.Restart()
}

// Stop destroys the current driver, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.driver != nil {
		c.driver.Destroy()
		c.driver = nil
	}
}

// Driver returns the live driver or nil.
func (c *Controller) Driver() *Driver {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.driver
}

func (c *Controller) launch() error {
	d, err := Initialize(c.cfg)
	if err != nil {
		return err
	}
	c.driver = d
	d.Start()
	return nil
}

// =============================================================================
// Run helpers
// =============================================================================

// doneNotifier wraps a sink and closes ch after forwarding Done.
type doneNotifier struct {
	Sink
	once sync.Once
	ch   chan struct{}
}

func (n *doneNotifier) OnEvent(e Event) {
	n.Sink.OnEvent(e)
	if e.Kind == Done {
		n.once.Do(func() { close(n.ch) })
	}
}

func (n *doneNotifier) OnFrontier(waiting []graph.NodeID, next graph.NodeID) {
	if fs, ok := n.Sink.(FrontierSink); ok {
		fs.OnFrontier(waiting, next)
	}
}

// Run drives cfg to completion and blocks until Done is delivered or ctx is
// cancelled. On cancellation the driver is destroyed and ctx.Err is returned.
func Run(ctx context.Context, cfg Config) (Result, error) {
	n := &doneNotifier{Sink: cfg.Sink, ch: make(chan struct{})}
	cfg.Sink = n
	if cfg.Context == nil {
		cfg.Context = ctx
	}
	d, err := Initialize(cfg)
	if err != nil {
		return Result{}, err
	}
	d.Start()

	select {
	case <-n.ch:
		return d.Result(), nil
	case <-ctx.Done():
		d.Destroy()
		return d.Result(), ctx.Err()
	}
}

// Complete drives cfg to completion on a fresh virtual scheduler without
// waiting for wall-clock time. cfg.Scheduler is ignored.
func Complete(cfg Config) (Result, error) {
	v := NewVirtual()
	cfg.Scheduler = v
	d, err := Initialize(cfg)
	if err != nil {
		return Result{}, err
	}
	d.Start()
	v.Drain(0)
	return d.Result(), nil
}
