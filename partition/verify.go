package partition

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/redistrict/core"
	"github.com/katalvlaran/redistrict/dfs"
	"github.com/katalvlaran/redistrict/tract"
)

// Verify audits res against g without touching the partitioner's
// bookkeeping:
//
//   - every district is non-empty and its tracts induce a connected
//     subgraph (checked by an explicit DFS);
//   - no tract appears twice across districts and Unassigned;
//   - district population and area equal the sums over their tracts;
//   - every tract of g is accounted for, and built plus missing districts
//     add up to the requested count.
//
// It returns nil or the first violation found, wrapping ErrNotContiguous,
// ErrDoubleAssigned, ErrPopulationMismatch, ErrIncomplete or
// tract.ErrUnknownTract.
func Verify(g *tract.Graph, res *Result) error {
	if g == nil {
		return ErrGraphNil
	}
	if res == nil {
		return errors.New("partition: nil result")
	}

	owner := make(map[string]int, g.Len())
	for _, d := range res.Districts {
		if len(d.Tracts) == 0 {
			return fmt.Errorf("%w: district %d is empty", ErrNotContiguous, d.ID)
		}

		pop, area := 0, 0.0
		for _, id := range d.Tracts {
			t := g.Tract(id)
			if t == nil {
				return fmt.Errorf("district %d: %q: %w", d.ID, id, tract.ErrUnknownTract)
			}
			if prev, dup := owner[id]; dup {
				return fmt.Errorf("%w: %q in districts %d and %d", ErrDoubleAssigned, id, prev, d.ID)
			}
			owner[id] = d.ID
			pop += t.Population
			area += t.Area
		}
		if pop != d.Population {
			return fmt.Errorf("%w: district %d reports population %d, tracts sum to %d",
				ErrPopulationMismatch, d.ID, d.Population, pop)
		}
		if math.Abs(area-d.Area) > 1e-6*math.Max(1, area) {
			return fmt.Errorf("%w: district %d reports area %v, tracts sum to %v",
				ErrPopulationMismatch, d.ID, d.Area, area)
		}

		if err := contiguous(g, d); err != nil {
			return err
		}
	}

	for _, id := range res.Unassigned {
		if g.Tract(id) == nil {
			return fmt.Errorf("unassigned: %q: %w", id, tract.ErrUnknownTract)
		}
		if prev, dup := owner[id]; dup {
			return fmt.Errorf("%w: %q is unassigned and in district %d", ErrDoubleAssigned, id, prev)
		}
		owner[id] = 0
	}

	if len(owner) != g.Len() {
		return fmt.Errorf("%w: %d of %d tracts unaccounted for", ErrIncomplete, g.Len()-len(owner), g.Len())
	}
	if built := len(res.Districts); built+res.Shortfall != res.Requested {
		return fmt.Errorf("%w: %d built + %d short != %d requested", ErrIncomplete, built, res.Shortfall, res.Requested)
	}

	return nil
}

// contiguous checks that the subgraph induced by d's tracts forms a single
// DFS tree.
func contiguous(g *tract.Graph, d District) error {
	keep := make(map[string]bool, len(d.Tracts))
	for _, id := range d.Tracts {
		keep[id] = true
	}
	sub := core.InducedSubgraph(g.Topology(), keep)

	res, err := dfs.DFS(sub, d.Tracts[0], dfs.WithFullTraversal())
	if err != nil {
		return fmt.Errorf("district %d: %w", d.ID, err)
	}
	if res.Trees != 1 {
		return fmt.Errorf("%w: district %d splits into %d pieces",
			ErrNotContiguous, d.ID, res.Trees)
	}

	return nil
}
