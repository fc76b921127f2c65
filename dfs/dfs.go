// Package dfs implements depth‑first search (single‑source and forest) on core.Graph.
//
// The walk is iterative (explicit stack), so recursion depth never scales
// with the size of a district. It is used as an audit traversal that shares
// nothing with the incremental bookkeeping of the region-growing code.
//
// Complexity:
//
//   - Time:   O(V + E·log d)
//   - Memory: O(V) for the stack and visited set.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - ErrStartVertexNotFound    if startID is missing (single-source mode).
package dfs

import (
	"fmt"

	"github.com/katalvlaran/redistrict/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	res   *DFSResult
}

// DFS performs depth‑first search on graph g. If opts include WithFullTraversal,
// it covers all disconnected components (startID is then ignored when empty);
// otherwise, it starts only from startID.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	if !dopts.FullTraversal && !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	vertices := g.Vertices()
	w := &dfsWalker{
		graph: g,
		res: &DFSResult{
			Order:   make([]string, 0, len(vertices)),
			Visited: make(map[string]bool, len(vertices)),
		},
	}

	if !dopts.FullTraversal {
		return w.res, w.traverse(startID)
	}

	// Forest mode: honor startID first when given, then sweep in sorted order.
	if startID != "" && g.HasVertex(startID) {
		if err := w.traverse(startID); err != nil {
			return w.res, err
		}
	}
	for _, v := range vertices {
		if w.res.Visited[v] {
			continue
		}
		if err := w.traverse(v); err != nil {
			return w.res, err
		}
	}

	return w.res, nil
}

// traverse runs one DFS tree rooted at root.
func (w *dfsWalker) traverse(root string) error {
	w.res.Trees++
	stack := []string{root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.res.Visited[id] {
			continue
		}
		w.res.Visited[id] = true
		w.res.Order = append(w.res.Order, id)

		nbs, err := w.graph.NeighborIDs(id)
		if err != nil {
			return fmt.Errorf("dfs: NeighborIDs(%q): %w", id, err)
		}
		// Push in reverse so the lexicographically smallest neighbor is explored first.
		for i := len(nbs) - 1; i >= 0; i-- {
			nid := nbs[i]
			if w.res.Visited[nid] {
				continue
			}
			stack = append(stack, nid)
		}
	}

	return nil
}
