package gridgraph

import "fmt"

// ConnectedComponents finds all contiguous regions ("islands") of land
// cells according to gg.Conn connectivity. They are the landmasses of
// TractGraph: each component is a slice of row-major cell indices in
// ascending order, and components are ordered by their first cell.
//
// To convert an index back to (x,y), use Coordinate(idx).
// A grid without land has no components.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H).
func (gg *GridGraph) ConnectedComponents() [][]int {
	g, err := gg.TractGraph()
	if err != nil {
		return nil
	}
	lands, err := g.Landmasses()
	if err != nil {
		// TractGraph only yields valid graphs; a failure here is a bug.
		panic(fmt.Sprintf("gridgraph: landmasses: %v", err))
	}

	index := make(map[string]int, g.Len())
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if gg.IsLand(x, y) {
				index[ID(x, y)] = gg.index(x, y)
			}
		}
	}

	// Landmasses keep input order, which is row-major here.
	comps := make([][]int, len(lands))
	for i, land := range lands {
		comp := make([]int, len(land))
		for j, t := range land {
			comp[j] = index[t.ID]
		}
		comps[i] = comp
	}

	return comps
}
