package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/searchviz/pkg/errors"
	"github.com/matzehuels/searchviz/pkg/geom"
)

// =============================================================================
// Wire Types
// =============================================================================

// Document is the serialization format for graphs.
type Document struct {
	Nodes []DocNode  `json:"nodes" yaml:"nodes"`
	Edges [][]NodeID `json:"edges" yaml:"edges"`
}

// DocNode is a serialized node. ID must equal the node's position in the list.
type DocNode struct {
	ID    NodeID  `json:"id" yaml:"id"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
}

// ToDocument converts g to its serialization format.
func ToDocument(g *Graph) Document {
	doc := Document{
		Nodes: make([]DocNode, g.Len()),
		Edges: make([][]NodeID, len(g.Edges())),
	}
	for i, n := range g.Nodes() {
		doc.Nodes[i] = DocNode{ID: n.ID, Label: n.Label, X: n.Pos.X, Y: n.Pos.Y}
	}
	for i, e := range g.Edges() {
		doc.Edges[i] = []NodeID{e.A, e.B}
	}
	return doc
}

// FromDocument builds a graph from its serialization format.
func FromDocument(doc Document) (*Graph, error) {
	b := NewBuilder()
	for i, n := range doc.Nodes {
		if n.ID != NodeID(i) {
			return nil, apperrors.New(apperrors.ErrCodeMalformedGraph,
				"node at position %d has id %d", i, n.ID)
		}
		b.AddNode(n.Label, geom.Point{X: n.X, Y: n.Y})
	}
	for i, e := range doc.Edges {
		if len(e) != 2 {
			return nil, apperrors.New(apperrors.ErrCodeMalformedGraph,
				"edge %d has %d endpoints, want 2", i, len(e))
		}
		b.Connect(e[0], e[1])
	}
	return b.Build()
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a graph.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes g as JSON to w.
func Write(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r.
func Read(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode graph")
	}
	return FromDocument(doc)
}

// WriteYAML encodes g as YAML to w.
func WriteYAML(g *Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a YAML graph from r.
func ReadYAML(r io.Reader) (*Graph, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode graph yaml")
	}
	return FromDocument(doc)
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// WriteFile writes g to path, as YAML for .yaml/.yml and JSON otherwise.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if IsYAML(path) {
		return WriteYAML(g, f)
	}
	return Write(g, f)
}

// ReadFile reads a graph from path, as YAML for .yaml/.yml and JSON otherwise.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if IsYAML(path) {
		return ReadYAML(f)
	}
	return Read(f)
}
