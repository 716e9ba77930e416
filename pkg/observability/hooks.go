// Package observability lets a host program watch searchviz at work without
// the library depending on any metrics or tracing backend.
//
// Three hook sets exist: [PipelineHooks] for graph loading, [TraversalHooks]
// for animation runs and [CacheHooks] for the graph cache. Each defaults to a
// no-op; register replacements once at startup:
//
//	observability.SetTraversalHooks(&runMetrics{})
//
// Drivers capture the traversal hooks when they are created, so hooks set
// later only affect later runs.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from graph loading.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)
}

// TraversalHooks receives events from the animation driver.
type TraversalHooks interface {
	// OnRunStart records the first tick being scheduled.
	OnRunStart(ctx context.Context, algorithm string, nodeCount int)

	// OnStep records one visited node. side is "source" or "dest".
	OnStep(ctx context.Context, algorithm, side string)

	// OnRunDone records natural completion.
	OnRunDone(ctx context.Context, algorithm string, visited int, found bool, duration time.Duration)

	// OnRunDestroyed records a run cancelled before completion.
	OnRunDestroyed(ctx context.Context, algorithm string, visited int)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	// OnCacheSet reports size in bytes of the stored value.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

// NoopTraversalHooks is a no-op implementation of TraversalHooks.
type NoopTraversalHooks struct{}

func (NoopTraversalHooks) OnRunStart(context.Context, string, int)                     {}
func (NoopTraversalHooks) OnStep(context.Context, string, string)                      {}
func (NoopTraversalHooks) OnRunDone(context.Context, string, int, bool, time.Duration) {}
func (NoopTraversalHooks) OnRunDestroyed(context.Context, string, int)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	hooksMu        sync.RWMutex
	pipelineHooks  PipelineHooks  = NoopPipelineHooks{}
	traversalHooks TraversalHooks = NoopTraversalHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
)

// install replaces *slot with h under the registry lock. A nil h is ignored.
func install[H any](slot *H, h H, isNil bool) {
	if isNil {
		return
	}
	hooksMu.Lock()
	*slot = h
	hooksMu.Unlock()
}

func current[H any](slot *H) H {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return *slot
}

// SetPipelineHooks registers h for graph loading events.
func SetPipelineHooks(h PipelineHooks) { install(&pipelineHooks, h, h == nil) }

// SetTraversalHooks registers h for runs started afterwards.
func SetTraversalHooks(h TraversalHooks) { install(&traversalHooks, h, h == nil) }

// SetCacheHooks registers h for cache lookups and writes.
func SetCacheHooks(h CacheHooks) { install(&cacheHooks, h, h == nil) }

func Pipeline() PipelineHooks   { return current(&pipelineHooks) }
func Traversal() TraversalHooks { return current(&traversalHooks) }
func Cache() CacheHooks         { return current(&cacheHooks) }

// Reset puts every hook set back to its no-op.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks, traversalHooks, cacheHooks = NoopPipelineHooks{}, NoopTraversalHooks{}, NoopCacheHooks{}
}
