package animate

import (
	"math"
	"slices"
	"sync"
	"time"
)

// Handle identifies a scheduled callback.
type Handle uint64

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	// Schedule arranges for fn to run once after delay.
	Schedule(fn func(), delay time.Duration) Handle
	// Cancel prevents a scheduled callback from running. Cancelling an
	// unknown or already fired handle is a no-op.
	Cancel(h Handle)
}

// =============================================================================
// Clock - wall-clock scheduler
// =============================================================================

// Clock schedules callbacks on real timers. Callbacks run on their own
// goroutines.
type Clock struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewClock returns a wall-clock scheduler.
func NewClock() *Clock {
	return &Clock{timers: make(map[Handle]*time.Timer)}
}

func (c *Clock) Schedule(fn func(), delay time.Duration) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	h := c.next
	c.timers[h] = time.AfterFunc(delay, func() {
		c.mu.Lock()
		delete(c.timers, h)
		c.mu.Unlock()
		fn()
	})
	return h
}

func (c *Clock) Cancel(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[h]; ok {
		t.Stop()
		delete(c.timers, h)
	}
}

// =============================================================================
// Virtual - deterministic scheduler
// =============================================================================

type task struct {
	h  Handle
	at time.Duration
	fn func()
}

// Virtual is a manually advanced scheduler. Callbacks run synchronously
// inside Advance and Drain, in due-time order, ties broken by scheduling order.
type Virtual struct {
	mu    sync.Mutex
	now   time.Duration
	next  Handle
	tasks []task
}

// NewVirtual returns a virtual scheduler at time zero.
func NewVirtual() *Virtual { return &Virtual{} }

func (v *Virtual) Schedule(fn func(), delay time.Duration) Handle {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.next++
	v.tasks = append(v.tasks, task{h: v.next, at: v.now + max(delay, 0), fn: fn})
	return v.next
}

func (v *Virtual) Cancel(h Handle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tasks = slices.DeleteFunc(v.tasks, func(t task) bool { return t.h == h })
}

// Now returns the virtual time elapsed since creation.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of scheduled callbacks.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.tasks)
}

// popDue removes and returns the earliest task due at or before limit.
func (v *Virtual) popDue(limit time.Duration) (task, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	best := -1
	for i, t := range v.tasks {
		if t.at > limit {
			continue
		}
		if best < 0 || t.at < v.tasks[best].at || (t.at == v.tasks[best].at && t.h < v.tasks[best].h) {
			best = i
		}
	}
	if best < 0 {
		return task{}, false
	}
	t := v.tasks[best]
	v.tasks = slices.Delete(v.tasks, best, best+1)
	v.now = max(v.now, t.at)
	return t, true
}

// Advance moves time forward by d, running every callback that falls due,
// including callbacks scheduled by those callbacks. It returns the number of
// callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	v.mu.Lock()
	limit := v.now + d
	v.mu.Unlock()

	n := 0
	for {
		t, ok := v.popDue(limit)
		if !ok {
			break
		}
		t.fn()
		n++
	}

	v.mu.Lock()
	v.now = max(v.now, limit)
	v.mu.Unlock()
	return n
}

// Drain runs callbacks in order until none are pending or limit callbacks
// have run. A limit <= 0 means no limit.
func (v *Virtual) Drain(limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		t, ok := v.popDue(math.MaxInt64)
		if !ok {
			break
		}
		t.fn()
		n++
	}
	return n
}
