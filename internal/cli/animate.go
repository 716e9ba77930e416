package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/pipeline"
	"github.com/matzehuels/searchviz/pkg/render/term"
)

// animateCommand creates the live terminal animation command.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags loadFlags
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "animate [input]",
		Short: "Animate a search in the terminal",
		Long: `Animate draws the graph in the terminal and colours nodes as the search
visits them, one step per delay. Press r to restart the search, a to switch
to the next algorithm and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config, inputArg(args))
			d := flagOr(cmd, "delay", delay, c.Config.Animation.Delay.Duration)
			return c.runAnimate(cmd.Context(), opts, d)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().DurationVar(&delay, "delay", animate.DefaultDelay, "delay between steps")

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, opts pipeline.Options, delay time.Duration) error {
	runner := c.newRunner(ctx)
	defer runner.Close()

	res, err := runner.LoadGraph(ctx, opts)
	if err != nil {
		return err
	}

	sink := term.NewSink()
	ctrl := animate.NewController(animate.Config{
		Graph:     res.Normalized,
		Algorithm: res.Algorithm,
		Source:    res.Source,
		Dest:      res.Dest,
		Delay:     delay,
		Sink:      sink,
		Logger:    c.Logger,
		Context:   ctx,
	})
	defer ctrl.Stop()

	model := term.NewModel(ctrl, res.Algorithm, opts.Input)
	model.Palette = c.Config.ColorPalette()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	sink.Attach(p.Send)

	final, err := p.Run()
	// Ticks after this point are dropped.
	sink.Attach(nil)
	if err != nil {
		return err
	}

	m := final.(term.Model)
	if d := ctrl.Driver(); d != nil && m.Done() {
		printInfo("%s", term.Summary(d.Result()))
	}
	return nil
}
