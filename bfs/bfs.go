// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted distances and visit order, plus the two
// reachability questions region growing asks: are two vertices connected
// inside a subset, and what are the connected components of a subset.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

// ErrNeighbors is returned when fetching neighbors from the graph fails.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

// errTargetReached aborts Connected as soon as the target is dequeued.
var errTargetReached = errors.New("bfs: target reached")

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrNeighbors for graph failures, or any user-supplied hook error.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := resolve(opts)
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	w := newWalker(g, o)
	w.enqueue(startID, 0)

	return w.res, w.loop()
}

// Connected reports whether a and b are joined by a path whose vertices all
// pass the configured neighbor filter. The walk stops as soon as b is seen.
func Connected(g *core.Graph, a, b string, opts ...Option) (bool, error) {
	if a == b {
		if g == nil {
			return false, ErrGraphNil
		}
		return g.HasVertex(a), nil
	}
	stop := WithOnVisit(func(id string, _ int) error {
		if id == b {
			return errTargetReached
		}
		return nil
	})
	res, err := BFS(g, a, append(opts[:len(opts):len(opts)], stop)...)
	if errors.Is(err, errTargetReached) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return res.Reached(b), nil
}

// Components partitions ids into connected components. A vertex is only
// expanded into neighbors accepted by the configured filter, so passing
// WithinSet(member) yields the components of the induced subgraph on ids.
//
// Components are returned in discovery order: the component containing
// ids[0] first, then the component of the first id not yet covered, and so
// on. Within a component vertices appear in BFS visit order.
//
// Complexity: O(|ids| + E_induced · log d).
func Components(g *core.Graph, ids []string, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := resolve(opts)

	seen := make(map[string]bool, len(ids))
	var comps [][]string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if !g.HasVertex(id) {
			return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, id)
		}
		w := newWalker(g, o)
		w.enqueue(id, 0)
		if err := w.loop(); err != nil {
			return nil, err
		}
		for _, v := range w.res.Order {
			seen[v] = true
		}
		comps = append(comps, w.res.Order)
	}

	return comps, nil
}

// resolve applies opts over DefaultOptions.
func resolve(opts []Option) BFSOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func newWalker(g *core.Graph, o BFSOptions) *walker {
	return &walker{
		graph:   g,
		opts:    o,
		visited: make(map[string]bool),
		res: &BFSResult{
			Depth: make(map[string]int),
		},
	}
}

// enqueue marks id visited at depth d and adds it to the queue.
func (w *walker) enqueue(id string, d int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty or error.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]
		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

// visit records the vertex in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}
	return nil
}

// enqueueNeighbors retrieves neighbors, applies filtering,
// and enqueues each unseen neighbor. Returns ErrNeighbors on lookup failure.
func (w *walker) enqueueNeighbors(item queueItem) error {
	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, item.id, err)
	}
	nextDepth := item.depth + 1
	for _, nbr := range neighbors {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, nextDepth)
	}
	return nil
}
