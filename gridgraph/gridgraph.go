package gridgraph

import (
	"fmt"

	"github.com/katalvlaran/redistrict/tract"
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation
	cells := make([][]int, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]int, w)
		copy(cells[y], values[y])
	}
	var offsets [][2]int
	if opts.Conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	} else {
		offsets = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	}

	return &GridGraph{
		Width:           w,
		Height:          h,
		CellValues:      cells,
		Conn:            opts.Conn,
		LandThreshold:   opts.LandThreshold,
		cellArea:        opts.CellArea,
		locality:        opts.Locality,
		neighborOffsets: offsets,
	}, nil
}

// From2D is NewGridGraph with default options and the given connectivity.
func From2D(values [][]int, conn Connectivity) (*GridGraph, error) {
	opts := DefaultGridOptions()
	opts.Conn = conn

	return NewGridGraph(values, opts)
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// IsLand reports whether (x,y) is in bounds and at or above LandThreshold.
func (gg *GridGraph) IsLand(x, y int) bool {
	return gg.InBounds(x, y) && gg.CellValues[y][x] >= gg.LandThreshold
}

// NeighborOffsets returns the precomputed neighbor offsets slice.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// ID formats the tract identifier of cell (x,y).
func ID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// boundary reports whether land cell (x,y) touches the edge of the grid or
// has water among its four orthogonal neighbors.
func (gg *GridGraph) boundary(x, y int) bool {
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		if !gg.IsLand(x+d[0], y+d[1]) {
			return true
		}
	}

	return false
}

// Tracts returns one tract per land cell in row-major order. Population is
// the cell value, area is CellArea, and Boundary marks cells on the grid
// edge or next to water.
// Complexity: O(W×H).
func (gg *GridGraph) Tracts() []tract.Tract {
	var out []tract.Tract
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if !gg.IsLand(x, y) {
				continue
			}
			t := tract.Tract{
				ID:         ID(x, y),
				Population: gg.CellValues[y][x],
				Area:       gg.cellArea,
				Boundary:   gg.boundary(x, y),
			}
			if gg.locality != nil {
				t.Locality = gg.locality(x, y)
			}
			out = append(out, t)
		}
	}

	return out
}

// Edges returns every adjacency between land cells once, ordered by the
// row-major index of the first cell.
// Complexity: O(W×H×d).
func (gg *GridGraph) Edges() []tract.Edge {
	var out []tract.Edge
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if !gg.IsLand(x, y) {
				continue
			}
			u := gg.index(x, y)
			for _, d := range gg.neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if !gg.IsLand(nx, ny) || gg.index(nx, ny) < u {
					continue
				}
				out = append(out, tract.Edge{A: ID(x, y), B: ID(nx, ny)})
			}
		}
	}

	return out
}

// TractGraph builds the tract.Graph of the land cells.
// Returns ErrNoLand when the grid has none.
func (gg *GridGraph) TractGraph() (*tract.Graph, error) {
	ts := gg.Tracts()
	if len(ts) == 0 {
		return nil, ErrNoLand
	}
	g, err := tract.NewGraph(ts, gg.Edges())
	if err != nil {
		return nil, fmt.Errorf("gridgraph: %w", err)
	}

	return g, nil
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return y*gg.Width + x
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}
