package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/searchviz/pkg/config"
	"github.com/matzehuels/searchviz/pkg/pipeline"
)

// loadFlags are the input and traversal flags shared by graph, render,
// animate and serve. Flags left unset fall back to the config file.
type loadFlags struct {
	inputFormat string
	limit       int
	maxDist     float64
	refresh     bool
	width       float64
	height      float64
	algorithm   string
	from        string
	to          string
}

func (f *loadFlags) register(cmd *cobra.Command, traversal bool) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "input format: kml, roads, graph, demo (detected when empty)")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "read at most N placemarks (0 = all)")
	cmd.Flags().Float64Var(&f.maxDist, "join-distance", 0, "squared distance below which separate roads are joined")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "rebuild the graph even if cached")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "viewport height")
	if !traversal {
		return
	}
	cmd.Flags().StringVarP(&f.algorithm, "algo", "a", pipeline.DefaultAlgorithm, "search algorithm: bfs, dfs, bidi")
	cmd.Flags().StringVar(&f.from, "from", "", "source node label or #id (default first node)")
	cmd.Flags().StringVar(&f.to, "to", "", "destination node label or #id (default last node)")
}

// options merges flags over cfg for input.
func (f *loadFlags) options(cmd *cobra.Command, cfg config.Config, input string) pipeline.Options {
	return pipeline.Options{
		Input:          input,
		InputFormat:    f.inputFormat,
		Limit:          flagOr(cmd, "limit", f.limit, cfg.Roads.Limit),
		MaxDistSquared: flagOr(cmd, "join-distance", f.maxDist, cfg.Roads.MaxDistSquared),
		Refresh:        f.refresh,
		Width:          flagOr(cmd, "width", f.width, cfg.Viewport.Width),
		Height:         flagOr(cmd, "height", f.height, cfg.Viewport.Height),
		Algorithm:      flagOr(cmd, "algo", f.algorithm, cfg.Animation.Algorithm),
		From:           f.from,
		To:             f.to,
	}
}

// flagOr returns v when the named flag was set on the command line, def
// otherwise. A zero def keeps v.
func flagOr[T comparable](cmd *cobra.Command, name string, v, def T) T {
	var zero T
	if cmd.Flags().Changed(name) || def == zero {
		return v
	}
	return def
}

// inputArg returns the first positional argument or the demo graph.
func inputArg(args []string) string {
	if len(args) == 0 {
		return pipeline.DemoInput
	}
	return args[0]
}
