package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/searchviz/pkg/animate"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/render"
	"github.com/matzehuels/searchviz/pkg/render/nodelink"
	"github.com/matzehuels/searchviz/pkg/render/svg"
)

// Artifacts holds the outputs of a completed traversal.
type Artifacts struct {
	// Files contains rendered outputs keyed by format.
	Files map[string][]byte

	// Frames is the SVG frame sequence when FormatFrames was requested.
	Frames [][]byte

	Summary Summary
}

// Summary is the JSON artifact describing a finished run.
type Summary struct {
	Algorithm string   `json:"algorithm"`
	Source    string   `json:"source"`
	Dest      string   `json:"dest"`
	Visited   int      `json:"visited"`
	Found     bool     `json:"found"`
	Path      []string `json:"path,omitempty"`
	Nodes     int      `json:"nodes"`
	Edges     int      `json:"edges"`
}

// Render runs the traversal described by res to completion on a virtual
// clock and renders the requested formats.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options, palette render.Palette) (*Artifacts, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	svgOpts := []svg.SVGOption{svg.WithViewport(res.Viewport), svg.WithPalette(palette)}
	if opts.HasFormat(FormatFrames) {
		svgOpts = append(svgOpts, svg.WithFrames(max(opts.FrameEvery, 1)))
	}
	if opts.HideCounter {
		svgOpts = append(svgOpts, svg.WithoutCounter())
	}
	sink := svg.NewSink(svgOpts...)

	run, err := animate.Complete(animate.Config{
		Graph:     res.Normalized,
		Algorithm: res.Algorithm,
		Source:    res.Source,
		Dest:      res.Dest,
		Sink:      sink,
		Logger:    opts.Logger,
		Context:   ctx,
	})
	if err != nil {
		return nil, err
	}

	art := &Artifacts{
		Files:   make(map[string][]byte),
		Summary: summarize(res, run),
	}
	final := sink.SVG()

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = final
		case FormatDOT:
			data = []byte(nodelink.ToDOT(sink.Trace(), nodelink.Options{Labels: opts.Labels, Palette: &palette}))
		case FormatGraphviz:
			dot := nodelink.ToDOT(sink.Trace(), nodelink.Options{Labels: opts.Labels, Palette: &palette})
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.ToPNG(final, opts.PNGScale)
		case FormatJSON:
			data, err = json.MarshalIndent(art.Summary, "", "  ")
		case FormatFrames:
			art.Frames = sink.Frames()
			continue
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		art.Files[format] = data
	}

	r.Logger.Debug("rendered traversal",
		"algorithm", res.Algorithm,
		"visited", run.Visited,
		"found", run.Found,
		"formats", opts.Formats)
	return art, nil
}

func summarize(res *Result, run animate.Result) Summary {
	label := func(id graph.NodeID) string {
		n, _ := res.Graph.Node(id)
		if n.Label != "" {
			return n.Label
		}
		return fmt.Sprintf("#%d", id)
	}
	s := Summary{
		Algorithm: run.Algorithm.String(),
		Source:    label(res.Source),
		Dest:      label(res.Dest),
		Visited:   run.Visited,
		Found:     run.Found,
		Nodes:     res.Stats.NodeCount,
		Edges:     res.Stats.EdgeCount,
	}
	for _, id := range run.Path {
		s.Path = append(s.Path, label(id))
	}
	return s
}
