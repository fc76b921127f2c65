package tract

import (
	"fmt"
	"math"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/core"
)

// Graph is the tract adjacency graph. Topology lives in a core.Graph; the
// tract records are held by ID and in input order so that every iteration
// the partitioner performs is reproducible.
type Graph struct {
	topo  *core.Graph
	byID  map[string]*Tract
	order []*Tract
	pop   int
	area  float64
	neigh map[string][]*Tract // memoized, sorted by ID
}

// NewGraph validates records and edges and builds the graph.
//
// Steps:
//  1. Validate each tract (non-empty unique ID, population ≥ 0, finite area ≥ 0).
//  2. Register every tract as a vertex, so isolated tracts form their own landmass.
//  3. Validate and add each edge; repeated pairs are idempotent.
//  4. Memoize neighbor lists (the topology is frozen from here on).
//
// Errors wrap ErrEmptyID, ErrDuplicateTract, ErrNegativePopulation,
// ErrNegativeArea, ErrUnknownTract or ErrSelfAdjacency with the offending IDs.
//
// Complexity: O(V + E·log d).
func NewGraph(tracts []Tract, edges []Edge) (*Graph, error) {
	g := &Graph{
		topo:  core.NewGraph(),
		byID:  make(map[string]*Tract, len(tracts)),
		order: make([]*Tract, 0, len(tracts)),
		neigh: make(map[string][]*Tract, len(tracts)),
	}

	for i := range tracts {
		rec := tracts[i]
		switch {
		case rec.ID == "":
			return nil, fmt.Errorf("record %d: %w", i, ErrEmptyID)
		case rec.Population < 0:
			return nil, fmt.Errorf("tract %q: population %d: %w", rec.ID, rec.Population, ErrNegativePopulation)
		case rec.Area < 0 || math.IsNaN(rec.Area) || math.IsInf(rec.Area, 0):
			return nil, fmt.Errorf("tract %q: area %v: %w", rec.ID, rec.Area, ErrNegativeArea)
		}
		if _, dup := g.byID[rec.ID]; dup {
			return nil, fmt.Errorf("tract %q: %w", rec.ID, ErrDuplicateTract)
		}

		t := &Tract{
			ID:         rec.ID,
			Population: rec.Population,
			Area:       rec.Area,
			Locality:   rec.Locality,
			Boundary:   rec.Boundary,
		}
		if err := g.topo.AddVertex(t.ID); err != nil {
			return nil, fmt.Errorf("tract %q: %w", t.ID, err)
		}
		g.byID[t.ID] = t
		g.order = append(g.order, t)
		g.pop += t.Population
		g.area += t.Area
	}

	for i, e := range edges {
		switch {
		case e.A == "" || e.B == "":
			return nil, fmt.Errorf("edge %d: %w", i, ErrEmptyID)
		case e.A == e.B:
			return nil, fmt.Errorf("edge %d (%s,%s): %w", i, e.A, e.B, ErrSelfAdjacency)
		}
		for _, id := range [2]string{e.A, e.B} {
			if _, ok := g.byID[id]; !ok {
				return nil, fmt.Errorf("edge %d (%s,%s): %q: %w", i, e.A, e.B, id, ErrUnknownTract)
			}
		}
		if _, err := g.topo.AddEdge(e.A, e.B); err != nil {
			return nil, fmt.Errorf("edge %d (%s,%s): %w", i, e.A, e.B, err)
		}
	}

	if err := g.memoize(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Graph) memoize() error {
	for _, t := range g.order {
		ids, err := g.topo.NeighborIDs(t.ID)
		if err != nil {
			return fmt.Errorf("tract %q: %w", t.ID, err)
		}
		nbrs := make([]*Tract, len(ids))
		for i, id := range ids {
			nbrs[i] = g.byID[id]
		}
		g.neigh[t.ID] = nbrs
	}

	return nil
}

// Tract returns the tract with the given id, or nil.
func (g *Graph) Tract(id string) *Tract { return g.byID[id] }

// Tracts returns every tract in input order. The slice is shared; do not modify it.
func (g *Graph) Tracts() []*Tract { return g.order }

// Neighbors returns the tracts bordering t, sorted by ID. The slice is
// shared; do not modify it.
func (g *Graph) Neighbors(t *Tract) []*Tract { return g.neigh[t.ID] }

// Adjacent reports whether a and b share a border.
func (g *Graph) Adjacent(a, b *Tract) bool { return g.topo.HasEdge(a.ID, b.ID) }

// Len returns the number of tracts.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount returns the number of distinct borders.
func (g *Graph) EdgeCount() int { return g.topo.EdgeCount() }

// TotalPopulation returns the population summed over all tracts.
func (g *Graph) TotalPopulation() int { return g.pop }

// TotalArea returns the area summed over all tracts.
func (g *Graph) TotalArea() float64 { return g.area }

// Topology exposes the underlying core.Graph for traversal packages.
// Callers must treat it as read-only.
func (g *Graph) Topology() *core.Graph { return g.topo }

// Landmasses returns the connected components of the graph. Components are
// ordered by their first tract in input order, and tracts keep input order
// within a component.
func (g *Graph) Landmasses() ([][]*Tract, error) {
	ids := make([]string, len(g.order))
	for i, t := range g.order {
		ids[i] = t.ID
	}
	comps, err := bfs.Components(g.topo, ids)
	if err != nil {
		return nil, fmt.Errorf("tract: landmasses: %w", err)
	}

	owner := make(map[string]int, len(ids))
	for ci, comp := range comps {
		for _, id := range comp {
			owner[id] = ci
		}
	}
	out := make([][]*Tract, len(comps))
	for _, t := range g.order {
		ci := owner[t.ID]
		out[ci] = append(out[ci], t)
	}

	return out, nil
}

// Resolve maps IDs to tracts, skipping unknown IDs.
func (g *Graph) Resolve(ids []string) []*Tract {
	out := make([]*Tract, 0, len(ids))
	for _, id := range ids {
		if t := g.byID[id]; t != nil {
			out = append(out, t)
		}
	}

	return out
}

// Clone returns a Graph with fresh, unassigned Tract values over the same
// frozen topology. Use one clone per concurrent run.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		topo:  g.topo,
		byID:  make(map[string]*Tract, len(g.order)),
		order: make([]*Tract, len(g.order)),
		pop:   g.pop,
		area:  g.area,
		neigh: make(map[string][]*Tract, len(g.order)),
	}
	for i, t := range g.order {
		cp := *t
		cp.district = Unassigned
		c.order[i] = &cp
		c.byID[cp.ID] = &cp
	}
	for id, nbrs := range g.neigh {
		cn := make([]*Tract, len(nbrs))
		for i, n := range nbrs {
			cn[i] = c.byID[n.ID]
		}
		c.neigh[id] = cn
	}

	return c
}
