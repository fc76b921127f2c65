// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAddEdge ensures that concurrent AddEdge calls are safe
// and every neighbor appears exactly once.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("X", fmt.Sprintf("V%d", id))
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	nbrs, err := g.NeighborIDs("X")
	require.NoError(t, err)
	require.Len(t, nbrs, num)
	require.Equal(t, num, g.EdgeCount())
}

// TestConcurrentReaders runs queries against a shared, read-only topology
// the way parallel partition runs do.
func TestConcurrentReaders(t *testing.T) {
	g := core.NewGraph()
	for i := 0; i < 50; i++ {
		_, err := g.AddEdge(fmt.Sprintf("V%02d", i), fmt.Sprintf("V%02d", i+1))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range g.Vertices() {
				_, err := g.NeighborIDs(id)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
