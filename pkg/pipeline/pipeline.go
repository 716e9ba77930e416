// Package pipeline provides the load → build → normalize → render pipeline
// shared by every searchviz command and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a KML file, a roads JSON file, a graph file (JSON or YAML)
//     or the built-in demo graph
//  2. Build: turn road placemarks into a graph, joining close nodes; built
//     graphs are cached by input content hash and join options
//  3. Render: run the traversal to completion on a virtual clock and produce
//     artifacts (SVG, DOT, Graphviz SVG, PNG, frame sequences)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.LoadGraph(ctx, pipeline.Options{
//	    Input:     "roads.kml",
//	    Algorithm: "bidi",
//	})
//	art, err := runner.Render(ctx, res, opts)
//	svg := art.Files["svg"]
package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/geom"
	"github.com/matzehuels/searchviz/pkg/graph"
	"github.com/matzehuels/searchviz/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default viewport width.
	DefaultWidth = 600.0

	// DefaultHeight is the default viewport height.
	DefaultHeight = 350.0

	// DefaultAlgorithm is the default traversal.
	DefaultAlgorithm = "bfs"

	// DemoInput names the built-in demo graph.
	DemoInput = "demo"

	// TTLGraph is how long built graphs stay cached.
	TTLGraph = 7 * 24 * time.Hour
)

// Input format constants.
const (
	InputKML   = "kml"
	InputRoads = "roads"
	InputGraph = "graph"
	InputDemo  = "demo"
)

// Output format constants.
const (
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
	FormatPNG      = "png"
	FormatFrames   = "frames"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatDOT:      true,
	FormatGraphviz: true,
	FormatPNG:      true,
	FormatFrames:   true,
	FormatJSON:     true,
}

// ValidInputs is the set of supported input formats.
var ValidInputs = map[string]bool{
	InputKML:   true,
	InputRoads: true,
	InputGraph: true,
	InputDemo:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Input          string  `json:"input,omitempty"`        // path, or "demo"
	InputFormat    string  `json:"input_format,omitempty"` // detected from Input when empty
	Limit          int     `json:"limit,omitempty"`        // KML placemark limit
	MaxDistSquared float64 `json:"max_dist_squared,omitempty"`
	Refresh        bool    `json:"refresh,omitempty"`

	// Traversal options
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Algorithm string  `json:"algorithm,omitempty"`
	From      string  `json:"from,omitempty"` // node label or "#id"; first node when empty
	To        string  `json:"to,omitempty"`   // node label or "#id"; last node when empty

	// Render options
	Formats     []string `json:"formats,omitempty"`
	FrameEvery  int      `json:"frame_every,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`
	HideCounter bool     `json:"hide_counter,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result is a loaded graph ready to animate.
type Result struct {
	// Graph is the built graph in input coordinates.
	Graph *graph.Graph

	// Normalized is Graph mapped into the viewport.
	Normalized *graph.Graph

	Viewport  geom.Viewport
	Algorithm search.Algorithm
	Source    graph.NodeID
	Dest      graph.NodeID

	// GraphHash is the content hash of the built graph JSON.
	GraphHash string

	// CacheHit reports whether the built graph came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	LoadTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot, graphviz, png, frames, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// DetectInput guesses the input format from a path and, for JSON, the first
// non-space byte of its content: roads files are arrays, graph files objects.
func DetectInput(path string, head []byte) string {
	if path == "" || path == DemoInput {
		return InputDemo
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".kml":
		return InputKML
	case ".yaml", ".yml":
		return InputGraph
	}
	if trimmed := bytes.TrimLeft(head, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		return InputRoads
	}
	return InputGraph
}

// =============================================================================
// Options Methods
// =============================================================================

// Validate checks the options and applies defaults. It is idempotent.
func (o *Options) Validate() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := apperrors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := search.ParseAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if o.InputFormat != "" && !ValidInputs[o.InputFormat] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid input format: %q (must be one of: kml, roads, graph, demo)", o.InputFormat)
	}
	if o.Input != "" && o.Input != DemoInput {
		if err := apperrors.ValidatePath(o.Input); err != nil {
			return err
		}
	}
	if o.Limit < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "limit must not be negative, got %d", o.Limit)
	}
	if o.FrameEvery < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "frame interval must not be negative, got %d", o.FrameEvery)
	}
	return ValidateFormats(o.Formats)
}

// Viewport returns the configured drawing area.
func (o *Options) Viewport() geom.Viewport {
	return geom.Viewport{Width: o.Width, Height: o.Height}
}

// HasFormat reports whether f was requested.
func (o *Options) HasFormat(f string) bool {
	return slices.Contains(o.Formats, f)
}

// String describes the run for log lines.
func (o *Options) String() string {
	in := o.Input
	if in == "" {
		in = DemoInput
	}
	return fmt.Sprintf("%s %s→%s on %s", o.Algorithm, orDefault(o.From, "first"), orDefault(o.To, "last"), in)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
