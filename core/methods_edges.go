// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/EdgeCount, plus newEdgeID().
// Determinism:
//   - newEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is a private textual prefix for edge identifiers.
// Ensures stable human-readable IDs like "e1", "e2", ...
const edgeIDPrefix = 'e'

// AddEdge connects from and to, creating missing endpoints.
//
// Steps:
//  1. Validate IDs and reject loops.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj; if the pair is already adjacent return its existing ID.
//  4. Generate eid atomically, store the Edge and mirror adjacency.
//
// Errors:
//   - ErrEmptyVertexID: if either endpoint is "".
//   - ErrLoopNotAllowed: if from == to.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	// Simple graph: a repeated border pair is the same edge.
	if eid, ok := g.adjacency[from][to]; ok {
		return eid, nil
	}

	eid := g.newEdgeID()
	g.edges[eid] = &Edge{ID: eid, From: from, To: to}
	g.adjacency[from][to] = eid
	g.adjacency[to][from] = eid

	return eid, nil
}

// HasEdge reports whether from and to are adjacent (either orientation).
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[from][to]

	return ok
}

// EdgeCount returns the number of distinct undirected edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// newEdgeID returns the next textual edge ID ("e1", "e2", ...).
// Must be called under muEdgeAdj write lock or from a single goroutine.
func (g *Graph) newEdgeID() string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}
