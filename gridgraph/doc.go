// Package gridgraph turns a 2D grid of cell populations into tract input,
// which makes it the quickest way to build synthetic maps for tests,
// benchmarks and demos.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid with tunable LandThreshold.
//   - Land cells (value ≥ LandThreshold) become tracts with ID "x,y",
//     population equal to the cell value and a fixed CellArea.
//   - Boundary marks cells on the grid edge or next to water.
//   - Identifies connected components ("islands"), which are exactly the
//     landmasses the partitioner starts from.
//   - Computes minimal water conversions (0-1 BFS) joining two islands and
//     Bridge repeats that until the map is one landmass.
//
// Complexity:
//
//   - Tracts, Edges:       O(W×H×d)  (d = 4 or 8 neighbors).
//   - ConnectedComponents: O(W×H×d), Memory: O(W×H).
//   - ExpandIsland:        O(W×H×d), Memory: O(W×H).
//   - Bridge:              O(k×W×H×d) for k islands.
//
// Options:
//
//   - GridOptions.LandThreshold: minimum value considered "land".
//   - GridOptions.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors).
//   - GridOptions.CellArea: area of every tract.
//   - GridOptions.Locality: locality key per cell.
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrComponentIndex: requested component index out of range.
//   - ErrNoPath: no conversion path exists between specified components.
//   - ErrNoLand: the grid has no land cells.
//   - ErrFillBelowThreshold: Bridge fill value would still be water.
package gridgraph
