package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/pipeline"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags loadFlags
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Serve the graph and stream search runs over HTTP",
		Long: `Serve loads the graph once and exposes it over HTTP:

  GET    /graph.svg          the graph with no nodes visited
  GET    /graph.json         nodes, edges and default endpoints
  POST   /runs               start a run {"algorithm","from","to","delay"}
  GET    /runs/{id}          run state and result
  GET    /runs/{id}/events   Server-Sent Events: graph, step..., done
  DELETE /runs/{id}          destroy the run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config, inputArg(args))
			a := flagOr(cmd, "addr", addr, c.Config.Server.Addr)
			d := flagOr(cmd, "delay", delay, c.Config.Animation.Delay.Duration)
			return c.runServe(cmd.Context(), opts, a, d)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&delay, "delay", animate.DefaultDelay, "default delay between steps")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr string, delay time.Duration) error {
	runner := c.newRunner(ctx)
	defer runner.Close()

	res, err := runner.LoadGraph(ctx, opts)
	if err != nil {
		return err
	}

	s := newServer(res, c.Config.ColorPalette(), delay, c.Logger)
	defer s.close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %d nodes on %s", res.Stats.NodeCount, StyleHighlight.Render(addr))
	printDetail("%s from %s to %s", res.Algorithm, nodeName(res.Graph, res.Source), nodeName(res.Graph, res.Dest))
	if err := serve(ctx, srv, c.Logger); err != nil && err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}
