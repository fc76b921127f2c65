package gridgraph_test

import (
	"testing"

	"github.com/katalvlaran/redistrict/gridgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectedComponents_Simple4 tests ConnectedComponents on a 4×3 grid
// with orthogonal connectivity (Conn4).
//
// Grid (1 = land, 0 = water):
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
//
// Expected: 2 islands of sizes 4 and 2, in row-major order.
func TestConnectedComponents_Simple4(t *testing.T) {
	grid := [][]int{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	}
	gg, err := gridgraph.From2D(grid, gridgraph.Conn4)
	require.NoError(t, err)

	comps := gg.ConnectedComponents()
	require.Len(t, comps, 2)
	assert.Equal(t, []int{1, 2, 4, 5}, comps[0])
	assert.Equal(t, []int{10, 11}, comps[1])
}

// TestConnectedComponents_Diagonal8 uses diagonal connectivity (Conn8) to
// catch islands touching at corners.
//
// Grid:
//
//	1 0 0 0 1
//	0 1 0 1 0
//	0 0 1 0 0
//	0 1 0 1 0
//	1 0 0 0 1
//
// With Conn8, all 9 ones connect through diagonal hops into a single island.
func TestConnectedComponents_Diagonal8(t *testing.T) {
	grid := [][]int{
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 1},
	}
	gg, err := gridgraph.From2D(grid, gridgraph.Conn8)
	require.NoError(t, err)
	comps := gg.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Len(t, comps[0], 9)

	gg4, err := gridgraph.From2D(grid, gridgraph.Conn4)
	require.NoError(t, err)
	assert.Len(t, gg4.ConnectedComponents(), 9)
}

// TestConnectedComponents_EmptyAndAllWater tests edge cases:
//   - completely water grid → zero components
//   - single-cell land grid → one component of size 1
func TestConnectedComponents_EmptyAndAllWater(t *testing.T) {
	gg1, err := gridgraph.From2D([][]int{{0, 0}, {0, 0}}, gridgraph.Conn4)
	require.NoError(t, err)
	assert.Empty(t, gg1.ConnectedComponents())

	gg2, err := gridgraph.From2D([][]int{{0, 1}}, gridgraph.Conn4)
	require.NoError(t, err)
	comps := gg2.ConnectedComponents()
	require.Len(t, comps, 1)
	assert.Equal(t, []int{1}, comps[0])
}
