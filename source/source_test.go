package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/redistrict/gridgraph"
	"github.com/katalvlaran/redistrict/source"
	"github.com/katalvlaran/redistrict/tract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestStatic(t *testing.T) {
	ds := &source.Dataset{
		Tracts: []tract.Tract{{ID: "A", Population: 3}, {ID: "B", Population: 4}},
		Edges:  []tract.Edge{{A: "A", B: "B"}},
	}
	s := source.NewStatic(ds)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	got.Tracts[0].Population = 99
	assert.Equal(t, 3, ds.Tracts[0].Population, "Load returns a copy")

	g, err := got.Graph()
	require.NoError(t, err)
	assert.Equal(t, 103, g.TotalPopulation())

	_, err = source.NewStatic(nil).Load(context.Background())
	require.ErrorIs(t, err, source.ErrNilSource)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGrid(t *testing.T) {
	gg, err := gridgraph.From2D([][]int{{2, 0}, {3, 4}}, gridgraph.Conn4)
	require.NoError(t, err)

	ds, err := source.NewGrid(gg).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Tracts, 3)
	assert.Equal(t, "0,0", ds.Tracts[0].ID)
	assert.Len(t, ds.Edges, 2)

	water, err := gridgraph.From2D([][]int{{0}}, gridgraph.Conn4)
	require.NoError(t, err)
	_, err = source.NewGrid(water).Load(context.Background())
	require.ErrorIs(t, err, gridgraph.ErrNoLand)
}

func TestCSV(t *testing.T) {
	dir := t.TempDir()
	tp := writeFile(t, dir, "tracts.csv", strings.Join([]string{
		"population,id,area,locality,boundary",
		"10,A,1.5,north,true",
		"20, B ,2,north,false",
		"30,C,,south,",
	}, "\n"))
	ep := writeFile(t, dir, "edges.csv", "a,b\nA,B\nB,C\n")

	ds, err := source.NewCSV(tp, ep).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []tract.Tract{
		{ID: "A", Population: 10, Area: 1.5, Locality: "north", Boundary: true},
		{ID: "B", Population: 20, Area: 2, Locality: "north"},
		{ID: "C", Population: 30, Locality: "south"},
	}, ds.Tracts)
	assert.Equal(t, []tract.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}}, ds.Edges)

	g, err := ds.Graph()
	require.NoError(t, err)
	assert.Equal(t, 60, g.TotalPopulation())
}

func TestReadTracts_Malformed(t *testing.T) {
	cases := map[string]string{
		"Empty":         "",
		"NoPopulation":  "id,area\nA,1\n",
		"BadPopulation": "id,population\nA,many\n",
		"BadArea":       "id,population,area\nA,1,wide\n",
		"BadBoundary":   "id,population,boundary\nA,1,maybe\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := source.ReadTracts(context.Background(), strings.NewReader(body))
			require.ErrorIs(t, err, source.ErrMalformed)
		})
	}
}

func TestReadEdges_Malformed(t *testing.T) {
	_, err := source.ReadEdges(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, source.ErrMalformed)

	_, err = source.ReadEdges(context.Background(), strings.NewReader("a,b\nA,B,C\n"))
	require.ErrorIs(t, err, source.ErrMalformed)
}

func TestCSV_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := source.NewCSV(filepath.Join(dir, "none.csv"), filepath.Join(dir, "none.csv")).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

type countingSource struct {
	calls int
	ds    *source.Dataset
	err   error
}

func (c *countingSource) Load(context.Context) (*source.Dataset, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}

	return c.ds.Clone(), nil
}

func TestCache(t *testing.T) {
	cache, err := source.NewCache(1)
	require.NoError(t, err)

	a := &countingSource{ds: &source.Dataset{Tracts: []tract.Tract{{ID: "A", Population: 1}}}}
	b := &countingSource{ds: &source.Dataset{Tracts: []tract.Tract{{ID: "B", Population: 2}}}}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ds, err := cache.Wrap("a", a).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "A", ds.Tracts[0].ID)
		ds.Tracts[0].ID = "mutated"
	}
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, cache.Len())

	_, err = cache.Wrap("b", b).Load(ctx)
	require.NoError(t, err)
	_, err = cache.Wrap("a", a).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, a.calls, "evicted by b")

	cache.Purge()
	assert.Zero(t, cache.Len())

	boom := errors.New("boom")
	_, err = cache.Wrap("c", &countingSource{err: boom}).Load(ctx)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len(), "failures are not cached")
}
