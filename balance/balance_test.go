package balance_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/redistrict/balance"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/tract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, pops ...int) *tract.Graph {
	t.Helper()
	ts := make([]tract.Tract, len(pops))
	var es []tract.Edge
	for i, p := range pops {
		ts[i] = tract.Tract{ID: fmt.Sprintf("t%d", i), Population: p, Area: 2}
		if i > 0 {
			es = append(es, tract.Edge{A: ts[i-1].ID, B: ts[i].ID})
		}
	}
	g, err := tract.NewGraph(ts, es)
	require.NoError(t, err)

	return g
}

func TestSummarize(t *testing.T) {
	g := line(t, 10, 20, 30, 40) // total 100
	res := &partition.Result{
		Requested: 2,
		Districts: []partition.District{
			{ID: 1, Tracts: []string{"t0", "t1", "t2"}, Population: 60, Area: 6},
			{ID: 2, Tracts: []string{"t3"}, Population: 40, Area: 2},
		},
	}

	s := balance.Summarize(g, res)
	assert.InDelta(t, 50, s.Ideal, 1e-9)
	assert.Equal(t, 40, s.Min)
	assert.Equal(t, 60, s.Max)
	assert.InDelta(t, 50, s.Mean, 1e-9)
	assert.InDelta(t, 10, s.StdDev, 1e-9)
	assert.InDelta(t, 10, s.MaxAbsDeviation, 1e-9)
	assert.InDelta(t, 0.2, s.MaxRelDeviation, 1e-9)
	assert.InDelta(t, 8, s.TotalArea, 1e-9)
	assert.Equal(t, 2, s.Districts)
	assert.True(t, s.Complete)
}

func TestSummarize_Empty(t *testing.T) {
	g := line(t, 5, 5)
	res := &partition.Result{Requested: 2, Shortfall: 2, Unassigned: []string{"t0", "t1"}}

	s := balance.Summarize(g, res)
	assert.InDelta(t, 5, s.Ideal, 1e-9)
	assert.Zero(t, s.Max)
	assert.Equal(t, 2, s.Unassigned)
	assert.False(t, s.Complete)
}

func TestRank(t *testing.T) {
	g := line(t, 10, 10, 10, 10)
	even := &partition.Result{Requested: 2, Districts: []partition.District{
		{ID: 1, Population: 20}, {ID: 2, Population: 20},
	}}
	skewed := &partition.Result{Requested: 2, Districts: []partition.District{
		{ID: 1, Population: 30}, {ID: 2, Population: 10},
	}}
	partial := &partition.Result{Requested: 2, Shortfall: 1, Districts: []partition.District{
		{ID: 1, Population: 20},
	}, Unassigned: []string{"t2", "t3"}}

	ranked := balance.Rank(g, []*partition.Result{partial, skewed, even})
	require.Len(t, ranked, 3)
	assert.Same(t, even, ranked[0].Result)
	assert.Same(t, skewed, ranked[1].Result)
	assert.Same(t, partial, ranked[2].Result)
	assert.InDelta(t, 0.5, ranked[1].Summary.MaxRelDeviation, 1e-9)
}

func TestRank_SweepResults(t *testing.T) {
	g := line(t, 3, 9, 4, 7, 1, 8, 2, 6)
	results, err := partition.Sweep(context.Background(), g, 3, []partition.ScoringPolicy{
		{Compactness: 1}, {Locality: 1}, partition.DefaultPolicy(),
	})
	require.NoError(t, err)

	ranked := balance.Rank(g, results)
	require.Len(t, ranked, len(results))
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1].Summary, ranked[i].Summary
		if prev.Complete == cur.Complete {
			require.LessOrEqual(t, prev.MaxRelDeviation, cur.MaxRelDeviation)
		} else {
			require.True(t, prev.Complete)
		}
	}
}
