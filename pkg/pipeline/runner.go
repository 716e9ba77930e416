package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/searchviz/pkg/cache"
	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/observability"
	"github.com/matzehuels/searchviz/pkg/roads"
	"github.com/matzehuels/searchviz/pkg/search"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// LoadGraph loads and builds the input graph, resolves the endpoints and
// normalizes the graph into the viewport.
func (r *Runner) LoadGraph(ctx context.Context, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	source := opts.Input
	if source == "" {
		source = DemoInput
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		n := 0
		if res != nil {
			n = res.Stats.NodeCount
		}
		hooks.OnLoadComplete(ctx, source, n, time.Since(start), err)
	}()

	g, hit, err := r.buildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	alg, _ := search.ParseAlgorithm(opts.Algorithm)
	src, err := ResolveNode(g, opts.From, 0)
	if err != nil {
		return nil, err
	}
	dst, err := ResolveNode(g, opts.To, graph.NodeID(g.Len()-1))
	if err != nil {
		return nil, err
	}

	res = &Result{
		Graph:      g,
		Normalized: g.Normalized(opts.Viewport()),
		Viewport:   opts.Viewport(),
		Algorithm:  alg,
		Source:     src,
		Dest:       dst,
		CacheHit:   hit,
		Stats: Stats{
			NodeCount: g.Len(),
			EdgeCount: len(g.Edges()),
			LoadTime:  time.Since(start),
		},
	}
	if data, err := graph.Marshal(g); err == nil {
		res.GraphHash = cache.Hash(data)
	}

	r.Logger.Debug("loaded graph",
		"input", source,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"cached", hit,
		"duration", res.Stats.LoadTime)
	return res, nil
}

// buildWithCacheInfo reads the input and builds its graph, consulting the
// cache for anything but the demo graph.
func (r *Runner) buildWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	if opts.Input == "" || opts.Input == DemoInput || opts.InputFormat == InputDemo {
		return graph.Demo(), false, nil
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", opts.Input)
		}
		return nil, false, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	format := opts.InputFormat
	if format == "" {
		format = DetectInput(opts.Input, data[:min(len(data), 64)])
	}

	cacheKey := cache.GraphKey(cache.Hash(data), cache.GraphKeyOpts{
		Format:         format,
		Limit:          opts.Limit,
		MaxDistSquared: opts.MaxDistSquared,
	})
	hooks := observability.Cache()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(cached); err == nil {
				hooks.OnCacheHit(ctx, cacheKey)
				return g, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
	}
	hooks.OnCacheMiss(ctx, cacheKey)

	g, err := Build(data, format, opts)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := graph.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, TTLGraph); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKey, len(encoded))
		}
	}
	return g, false, nil
}

// Build constructs a graph from raw input in the given format.
func Build(data []byte, format string, opts Options) (*graph.Graph, error) {
	switch format {
	case InputDemo:
		return graph.Demo(), nil
	case InputGraph:
		if opts.Input != "" && graph.IsYAML(opts.Input) {
			return graph.ReadYAML(bytes.NewReader(data))
		}
		return graph.Unmarshal(data)
	case InputKML:
		pms, err := roads.ReadKML(bytes.NewReader(data), opts.Limit)
		if err != nil {
			return nil, err
		}
		return roads.BuildGraph(pms, roads.Options{MaxDistSquared: opts.MaxDistSquared})
	case InputRoads:
		pms, err := roads.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if opts.Limit > 0 && len(pms) > opts.Limit {
			pms = pms[:opts.Limit]
		}
		return roads.BuildGraph(pms, roads.Options{MaxDistSquared: opts.MaxDistSquared})
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown input format %q", format)
}

// ResolveNode finds a node by label or by "#id". An empty ref resolves to
// def.
func ResolveNode(g *graph.Graph, ref string, def graph.NodeID) (graph.NodeID, error) {
	if g.Len() == 0 {
		return graph.None, apperrors.New(apperrors.ErrCodeMalformedGraph, "graph has no nodes")
	}
	if ref == "" {
		return def, nil
	}
	if rest, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || !g.Valid(graph.NodeID(n)) {
			return graph.None, apperrors.Wrap(apperrors.ErrCodeInvalidNode, search.ErrUnknownNode,
				"node %s not in graph of %d nodes", ref, g.Len())
		}
		return graph.NodeID(n), nil
	}
	if id, ok := g.Lookup(ref); ok {
		return id, nil
	}
	return graph.None, apperrors.Wrap(apperrors.ErrCodeInvalidNode, search.ErrUnknownNode, "no node labelled %q", ref)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
