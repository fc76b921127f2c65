// Package source loads tract records and adjacency edges from outside the
// process and hands them over as a Dataset ready for tract.NewGraph.
//
// Three loaders are provided: a fixed in-memory Static dataset, a grid
// adapter over gridgraph, and a CSV pair of files. Cache wraps any of them
// with a bounded LRU so repeated runs over the same input skip the reload.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/redistrict/gridgraph"
	"github.com/katalvlaran/redistrict/tract"
)

// Sentinel errors for loaders.
var (
	// ErrMalformed indicates input that cannot be parsed into tracts or edges.
	ErrMalformed = errors.New("source: malformed input")

	// ErrNilSource indicates a nil Source or dataset passed to a wrapper.
	ErrNilSource = errors.New("source: nil source")
)

// Dataset is the raw input of one tract graph.
type Dataset struct {
	Tracts []tract.Tract `json:"tracts" yaml:"tracts"`
	Edges  []tract.Edge  `json:"edges" yaml:"edges"`
}

// Graph validates the dataset and builds its tract.Graph.
func (ds *Dataset) Graph() (*tract.Graph, error) {
	return tract.NewGraph(ds.Tracts, ds.Edges)
}

// Clone returns a copy whose slices share nothing with ds.
func (ds *Dataset) Clone() *Dataset {
	out := &Dataset{
		Tracts: make([]tract.Tract, len(ds.Tracts)),
		Edges:  make([]tract.Edge, len(ds.Edges)),
	}
	copy(out.Tracts, ds.Tracts)
	copy(out.Edges, ds.Edges)

	return out
}

// Source produces a Dataset. Implementations must honor ctx cancellation
// on any blocking work.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Static serves a fixed dataset.
type Static struct {
	ds *Dataset
}

// NewStatic returns a Source that always yields a copy of ds.
func NewStatic(ds *Dataset) *Static {
	return &Static{ds: ds}
}

// Load implements Source.
func (s *Static) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.ds == nil {
		return nil, ErrNilSource
	}

	return s.ds.Clone(), nil
}

// Grid serves the land cells of a population grid.
type Grid struct {
	gg *gridgraph.GridGraph
}

// NewGrid returns a Source over gg. Cells become tracts with ID "x,y".
func NewGrid(gg *gridgraph.GridGraph) *Grid {
	return &Grid{gg: gg}
}

// Load implements Source.
func (s *Grid) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.gg == nil {
		return nil, ErrNilSource
	}
	ts := s.gg.Tracts()
	if len(ts) == 0 {
		return nil, fmt.Errorf("source: %w", gridgraph.ErrNoLand)
	}

	return &Dataset{Tracts: ts, Edges: s.gg.Edges()}, nil
}
