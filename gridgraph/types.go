package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrComponentIndex indicates a requested component index is out of range.
	ErrComponentIndex = errors.New("gridgraph: component index out of range")
	// ErrNoPath indicates no conversion path exists between two components.
	ErrNoPath = errors.New("gridgraph: no path between specified components")
	// ErrNoLand indicates a grid without a single land cell.
	ErrNoLand = errors.New("gridgraph: grid has no land cells")
	// ErrFillBelowThreshold indicates a bridge fill value that would still be water.
	ErrFillBelowThreshold = errors.New("gridgraph: fill value is below the land threshold")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// GridOptions contains tunable parameters for turning a grid into tracts.
type GridOptions struct {
	// LandThreshold specifies the minimum cell value considered "land".
	LandThreshold int
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// CellArea is the area given to every tract.
	CellArea float64
	// Locality, if set, assigns the locality key of the tract at (x,y).
	Locality func(x, y int) string
}

// DefaultGridOptions returns a GridOptions with default settings:
// LandThreshold=1 (values ≥1 are land), Conn=Conn4, CellArea=1, no localities.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		LandThreshold: 1,
		Conn:          Conn4,
		CellArea:      1,
	}
}

// GridGraph treats a 2D integer grid as a set of tracts. It is immutable once built.
// Width and Height define dimensions; CellValues[y][x] holds the original input
// value, which is the population of a land cell.
type GridGraph struct {
	Width, Height   int
	CellValues      [][]int
	Conn            Connectivity
	LandThreshold   int
	cellArea        float64
	locality        func(x, y int) string
	neighborOffsets [][2]int
}
