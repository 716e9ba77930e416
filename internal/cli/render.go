package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/searchviz/pkg/pipeline"
)

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	output      string
	formats     []string
	frameEvery  int
	labels      bool
	hideCounter bool
	pngScale    float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      loadFlags
		opts       renderOpts
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Run a search to completion and render it",
		Long: `Render runs the search on a virtual clock, so no time passes between steps,
and writes the final picture. Formats:

  svg       final frame with node colours and counter
  dot       Graphviz DOT source with fixed positions
  graphviz  the DOT source laid out by Graphviz (neato) as SVG
  png       the final frame rasterised with rsvg-convert
  frames    one SVG per step, in <output>_frames/
  json      a summary of the run

Without an input the built-in demo graph is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			input := inputArg(args)
			po := flags.options(cmd, c.Config, input)
			po.Formats = opts.formats
			po.FrameEvery = opts.frameEvery
			po.Labels = opts.labels
			po.HideCounter = opts.hideCounter
			po.PNGScale = opts.pngScale
			if err := po.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, po, &opts)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, graphviz, png, frames, json (comma-separated)")
	cmd.Flags().IntVar(&opts.frameEvery, "frame-every", 1, "capture a frame every N events (frames format)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label nodes in DOT output")
	cmd.Flags().BoolVar(&opts.hideCounter, "no-counter", false, "omit the visited-node counter")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 2, "PNG scale factor")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, po pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading "+input+"...")
	spinner.Start()
	res, err := runner.LoadGraph(ctx, po)
	spinner.Stop()
	if err != nil {
		return err
	}
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)

	prog := newProgress(logger)
	art, err := runner.Render(ctx, res, po, c.Config.ColorPalette())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ran %s over %d nodes", art.Summary.Algorithm, art.Summary.Visited))

	base := basePath(opts.output, input, po.Algorithm)
	for _, format := range po.Formats {
		if format == pipeline.FormatFrames {
			dir, err := writeFrames(base+"_frames", art.Frames)
			if err != nil {
				return err
			}
			printSuccess("Wrote %d frames", len(art.Frames))
			printFile(dir)
			continue
		}
		path := outputPath(opts.output, base, format, len(po.Formats))
		if err := os.WriteFile(path, art.Files[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printRun(art.Summary)
	return nil
}

// fileExt maps formats to file extensions.
var fileExt = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatGraphviz: "_graphviz.svg",
	pipeline.FormatPNG:      ".png",
	pipeline.FormatJSON:     ".json",
}

// basePath derives the base output path. Without an explicit output it is
// the input name plus the algorithm ("roads_bfs"); a known extension on
// output is stripped.
func basePath(output, input, algorithm string) string {
	if output == "" {
		name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return name + "_" + algorithm
	}
	ext := filepath.Ext(output)
	for _, e := range fileExt {
		if strings.HasSuffix(e, ext) && ext != "" {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath returns the file for format. A single format with an explicit
// output writes exactly there.
func outputPath(output, base, format string, n int) string {
	if n == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + fileExt[format]
}

// writeFrames writes frames as numbered SVG files into dir.
func writeFrames(dir string, frames [][]byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	for i, f := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame-%04d.svg", i))
		if err := os.WriteFile(path, f, 0644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return dir, nil
}
