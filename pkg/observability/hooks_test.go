package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "roads.json")
	p.OnLoadComplete(ctx, "roads.json", 100, time.Second, nil)

	tr := NoopTraversalHooks{}
	tr.OnRunStart(ctx, "bfs", 9)
	tr.OnStep(ctx, "bfs", "source")
	tr.OnRunDone(ctx, "bfs", 9, true, time.Second)
	tr.OnRunDestroyed(ctx, "dfs", 3)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "graph")
	c.OnCacheSet(ctx, "graph", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Traversal().(NoopTraversalHooks); !ok {
		t.Error("Traversal() should return NoopTraversalHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customTraversal := &testTraversalHooks{}
	SetTraversalHooks(customTraversal)
	if Traversal() != customTraversal {
		t.Error("SetTraversalHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// nil leaves the current hooks in place
	SetTraversalHooks(nil)
	if Traversal() != customTraversal {
		t.Error("SetTraversalHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Traversal().(NoopTraversalHooks); !ok {
		t.Error("Reset should restore NoopTraversalHooks")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testTraversalHooks struct{ NoopTraversalHooks }
type testCacheHooks struct{ NoopCacheHooks }
