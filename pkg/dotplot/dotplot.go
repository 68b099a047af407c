/*
Package dotplot renders Graphviz DOT graphs so they can be displayed with imgcat.
*/
package dotplot

import (
	"bytes"
	"context"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

// ErrEmptySource is returned when a graph has no DOT source.
var ErrEmptySource = errors.New("empty DOT source")

// Graph is DOT source that rasterizes itself to PNG. It satisfies
// imgcat.Rasterizer.
type Graph struct {
	Source []byte
	// Layout is the Graphviz layout engine; empty means dot.
	Layout graphviz.Layout
}

// New returns a Graph over DOT source.
func New(dot []byte) *Graph {
	return &Graph{Source: dot}
}

// Load reads a DOT file.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read DOT")
	}
	return New(data), nil
}

// Rasterize renders the graph to PNG bytes.
func (g *Graph) Rasterize() ([]byte, error) {
	if len(bytes.TrimSpace(g.Source)) == 0 {
		return nil, ErrEmptySource
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()
	if g.Layout != "" {
		gv.SetLayout(g.Layout)
	}

	graph, err := graphviz.ParseBytes(g.Source)
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}
