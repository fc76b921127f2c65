// Package bfs provides breadth-first search over a core.Graph.
//
// What
//
//   - BFS(g, start, opts...): visit order and depth of every reachable vertex.
//   - Connected(g, a, b, opts...): early-exit reachability between two vertices.
//   - Components(g, ids, opts...): connected components of a vertex subset.
//   - WithinSet(allowed) narrows any of the above to the subgraph induced by
//     allowed, without building that subgraph.
//
// Why
//
//   - Landmass detection over the tract adjacency graph.
//   - Split detection while a district consumes the unclaimed pool: two
//     unclaimed neighbors of the claimed tract are tested for a remaining path.
//   - Split repair: components of the pool after a disconnection.
//
// Determinism
//
//	core.NeighborIDs returns IDs sorted lexicographically, and BFS enqueues
//	neighbors in that order, so visit sequences and component order are
//	fully reproducible for the same input order.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E·log d)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrNeighbors            if core.NeighborIDs fails for any vertex.
//   - Wrapped user-supplied hook errors from OnVisit.
package bfs
