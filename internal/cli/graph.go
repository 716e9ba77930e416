package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/pipeline"
)

// graphCommand creates the graph build command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags  loadFlags
		output string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "graph [input]",
		Short: "Build a graph from roads or a graph file and write it",
		Long: `Graph builds the input into a graph, joining nearby road points, normalises
it into the viewport and writes it as JSON or YAML (chosen by the output
extension). Without -o the JSON is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config, inputArg(args))
			return c.runGraph(cmd.Context(), opts, output, raw)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .yaml)")
	cmd.Flags().BoolVar(&raw, "raw", false, "keep input coordinates instead of normalising")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string, raw bool) error {
	runner := c.newRunner(ctx)
	defer runner.Close()

	res, err := runner.LoadGraph(ctx, opts)
	if err != nil {
		return err
	}
	g := res.Normalized
	if raw {
		g = res.Graph
	}

	if output == "" {
		return graph.Write(g, os.Stdout)
	}
	if err := graph.WriteFile(g, output); err != nil {
		return err
	}
	printSuccess("Wrote %s", output)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)
	return nil
}
