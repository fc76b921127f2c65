package region_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/redistrict/region"
	"github.com/katalvlaran/redistrict/tract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid returns a w×h 4-connected tract graph with IDs "r,c", population
// r*w+c+1 and locality "L<c%2>".
func grid(t *testing.T, w, h int) *tract.Graph {
	t.Helper()
	var (
		ts []tract.Tract
		es []tract.Edge
	)
	id := func(r, c int) string { return fmt.Sprintf("%d,%d", r, c) }
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			ts = append(ts, tract.Tract{
				ID:         id(r, c),
				Population: r*w + c + 1,
				Area:       0.5,
				Locality:   fmt.Sprintf("L%d", c%2),
			})
			if c+1 < w {
				es = append(es, tract.Edge{A: id(r, c), B: id(r, c+1)})
			}
			if r+1 < h {
				es = append(es, tract.Edge{A: id(r, c), B: id(r+1, c)})
			}
		}
	}
	g, err := tract.NewGraph(ts, es)
	require.NoError(t, err)

	return g
}

func path(t *testing.T) *tract.Graph {
	t.Helper()
	g, err := tract.NewGraph(
		[]tract.Tract{{ID: "A", Population: 1}, {ID: "B", Population: 2}, {ID: "C", Population: 4}},
		[]tract.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}},
	)
	require.NoError(t, err)

	return g
}

func ids(ts []*tract.Tract) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestRegion_AddRemoveFrontier(t *testing.T) {
	g := path(t)
	a, b, c := g.Tract("A"), g.Tract("B"), g.Tract("C")
	r := region.NewClaimed(g, 1)

	r.Add(b)
	assert.Equal(t, []string{"A", "C"}, ids(r.Frontier()))
	assert.Equal(t, 2, r.Population())
	id, ok := b.District()
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	r.Add(a)
	assert.Equal(t, []string{"C"}, ids(r.Frontier()))
	assert.Equal(t, []string{"B", "A"}, ids(r.Members()))
	assert.Equal(t, 1, r.NeighborsInside(c))
	assert.Equal(t, 1, r.NeighborsInside(b))

	// Removing B leaves A; B still borders A so it re-enters the frontier,
	// while C no longer borders anything.
	r.Remove(b)
	assert.Equal(t, []string{"B"}, ids(r.Frontier()))
	assert.False(t, r.InFrontier(c))
	assert.Equal(t, 1, r.Population())
	require.NoError(t, r.Check())

	r.Remove(a)
	assert.True(t, r.Empty())
	assert.Zero(t, r.FrontierLen())
	assert.Zero(t, r.Area())
	require.NoError(t, r.Check())
}

func TestRegion_UnclaimedClearsStamp(t *testing.T) {
	g := path(t)
	a := g.Tract("A")
	a.Assign(9)

	pool := region.NewUnclaimed(g)
	pool.Add(a)
	assert.False(t, a.Assigned())
	assert.Equal(t, region.Unclaimed, pool.Kind())
	assert.Equal(t, tract.Unassigned, pool.District())
	require.NoError(t, pool.Check())
}

func TestRegion_Locality(t *testing.T) {
	g := grid(t, 3, 1)
	r := region.NewClaimed(g, 2)
	r.Add(g.Tract("0,0"))
	assert.True(t, r.HasLocality("L0"))
	assert.False(t, r.HasLocality("L1"))

	r.Add(g.Tract("0,1"))
	r.Add(g.Tract("0,2"))
	r.Remove(g.Tract("0,0"))
	assert.True(t, r.HasLocality("L0"), "0,2 still carries L0")
	r.Remove(g.Tract("0,2"))
	assert.False(t, r.HasLocality("L0"))
	require.NoError(t, r.Check())
}

func TestRegion_PreconditionPanics(t *testing.T) {
	g := path(t)
	r := region.NewClaimed(g, 1)
	r.Add(g.Tract("A"))

	assertPanicIs(t, region.ErrAlreadyMember, func() { r.Add(g.Tract("A")) })
	assertPanicIs(t, region.ErrNotMember, func() { r.Remove(g.Tract("B")) })
	require.Panics(t, func() { region.NewClaimed(g, tract.Unassigned) })
}

func TestRegion_FromTracts(t *testing.T) {
	g := grid(t, 3, 3)
	r := region.FromTracts(g, region.Unclaimed, 0, g.Tracts())
	assert.Equal(t, 9, r.Len())
	assert.Equal(t, g.TotalPopulation(), r.Population())
	assert.Zero(t, r.FrontierLen(), "a whole landmass has no outer frontier")
	assert.Equal(t, "unclaimed (9 tracts, pop 45)", r.String())

	d := region.FromTracts(g, region.Claimed, 4, g.Resolve([]string{"1,1"}))
	assert.Equal(t, 4, d.District())
	assert.ElementsMatch(t, []string{"0,1", "1,0", "1,2", "2,1"}, ids(d.Frontier()))
}

// TestRegion_RandomizedInvariants drives long random add/remove sequences on
// a grid and recomputes the bookkeeping from scratch after every step.
func TestRegion_RandomizedInvariants(t *testing.T) {
	g := grid(t, 5, 4)
	all := g.Tracts()

	for seed := int64(1); seed <= 8; seed++ {
		rng := rand.New(rand.NewSource(seed))
		r := region.NewClaimed(g, 1)
		for step := 0; step < 300; step++ {
			tr := all[rng.Intn(len(all))]
			if r.Contains(tr) {
				r.Remove(tr)
			} else {
				r.Add(tr)
			}
			require.NoError(t, r.Check(), "seed %d step %d", seed, step)
		}
	}
}

// TestRegion_PopulationConserved moves tracts between a pool and a district
// and checks the two totals always sum to the graph population.
func TestRegion_PopulationConserved(t *testing.T) {
	g := grid(t, 4, 4)
	pool := region.FromTracts(g, region.Unclaimed, 0, g.Tracts())
	dist := region.NewClaimed(g, 1)
	total := g.TotalPopulation()

	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 200; step++ {
		tr := g.Tracts()[rng.Intn(g.Len())]
		if pool.Contains(tr) {
			pool.Remove(tr)
			dist.Add(tr)
		} else {
			dist.Remove(tr)
			pool.Add(tr)
		}
		require.Equal(t, total, pool.Population()+dist.Population())
		require.Equal(t, g.Len(), pool.Len()+dist.Len())
	}
	require.NoError(t, pool.Check())
	require.NoError(t, dist.Check())
}

func assertPanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		v := recover()
		require.NotNil(t, v, "expected panic")
		err, ok := v.(error)
		require.True(t, ok, "panic value %v is not an error", v)
		require.True(t, errors.Is(err, target), "got %v", err)
	}()
	fn()
}
