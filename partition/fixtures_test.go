package partition_test

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/katalvlaran/redistrict/tract"
	"github.com/stretchr/testify/require"
)

func cellID(r, c int) string { return fmt.Sprintf("%d,%d", r, c) }

// gridGraph builds a 4-connected rows×cols grid; pop(r, c) gives each
// population. Cells on the grid edge are boundary tracts.
func gridGraph(t *testing.T, rows, cols int, pop func(r, c int) int) *tract.Graph {
	t.Helper()
	var (
		ts []tract.Tract
		es []tract.Edge
	)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ts = append(ts, tract.Tract{
				ID:         cellID(r, c),
				Population: pop(r, c),
				Area:       1,
				Locality:   fmt.Sprintf("county-%d", c/2),
				Boundary:   r == 0 || c == 0 || r == rows-1 || c == cols-1,
			})
			if c+1 < cols {
				es = append(es, tract.Edge{A: cellID(r, c), B: cellID(r, c+1)})
			}
			if r+1 < rows {
				es = append(es, tract.Edge{A: cellID(r, c), B: cellID(r+1, c)})
			}
		}
	}
	g, err := tract.NewGraph(ts, es)
	require.NoError(t, err)

	return g
}

func unit(int, int) int { return 1 }

// build is a terse constructor for hand-drawn graphs. Every tract gets
// population 10 and area 1 unless pops overrides it.
func build(t *testing.T, ids []string, edges [][2]string, boundary []string, pops map[string]int) *tract.Graph {
	t.Helper()
	isBoundary := make(map[string]bool, len(boundary))
	for _, id := range boundary {
		isBoundary[id] = true
	}
	ts := make([]tract.Tract, len(ids))
	for i, id := range ids {
		p, ok := pops[id]
		if !ok {
			p = 10
		}
		ts[i] = tract.Tract{ID: id, Population: p, Area: 1, Boundary: isBoundary[id]}
	}
	es := make([]tract.Edge, len(edges))
	for i, e := range edges {
		es[i] = tract.Edge{A: e[0], B: e[1]}
	}
	g, err := tract.NewGraph(ts, es)
	require.NoError(t, err)

	return g
}

// dumbbell is a triangle L1-L2-L3 joined through the bridge X to a 2×3
// block R1..R6:
//
//	L2
//	| \
//	|  L1 - X - R1 - R2 - R3
//	| /          |    |    |
//	L3           R4 - R5 - R6
//
// X is the only boundary tract, so the first district is seeded there.
func dumbbell(t *testing.T) *tract.Graph {
	t.Helper()
	ids := []string{"L1", "L2", "L3", "X", "R1", "R2", "R3", "R4", "R5", "R6"}
	edges := [][2]string{
		{"L1", "L2"}, {"L2", "L3"}, {"L3", "L1"},
		{"L1", "X"}, {"X", "R1"},
		{"R1", "R2"}, {"R2", "R3"}, {"R4", "R5"}, {"R5", "R6"},
		{"R1", "R4"}, {"R2", "R5"}, {"R3", "R6"},
	}

	return build(t, ids, edges, []string{"X"}, nil)
}

// randomGrid returns a grid with populations drawn from [1, 20].
func randomGrid(t *testing.T, seed int64, rows, cols int) *tract.Graph {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	return gridGraph(t, rows, cols, func(int, int) int { return 1 + rng.Intn(20) })
}

// recorder is a metrics.Collector that keeps what it is told.
type recorder struct {
	mu         sync.Mutex
	districts  []int
	repairs    []int
	runs       int
	complete   int
	unassigned int
}

func (r *recorder) RecordDistrict(population, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.districts = append(r.districts, population)
}

func (r *recorder) RecordSplitRepair(absorbed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repairs = append(r.repairs, absorbed)
}

func (r *recorder) RecordRun(_ float64, complete bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	if complete {
		r.complete++
	}
}

func (r *recorder) SetUnassigned(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unassigned = n
}
