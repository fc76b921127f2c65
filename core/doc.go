// Package core provides a small, thread-safe, in-memory undirected graph
// keyed by string vertex IDs. It is the topology layer under tract.Graph:
// vertices are tract IDs, edges are "shares a border with".
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Undirected, unweighted, simple: no self-loops, no parallel edges.
//   - Adding an existing edge is idempotent and returns the original Edge.ID.
//   - Constant-time adjacency via nested maps:
//     adjacency[from][to] = edgeID (mirrored for to→from).
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//     so concurrent readers never block one another.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error            // O(1), idempotent
//	HasVertex(id string) bool             // O(1)
//	Vertices() []string                   // O(V·log V), sorted
//
//	// Edge lifecycle
//	AddEdge(from, to string) (edgeID string, err error) // O(1)†
//	HasEdge(from, to string) bool         // O(1)
//	EdgeCount() int                       // O(1)
//
//	// Neighborhood
//	NeighborIDs(id string) ([]string, error) // O(d·log d), unique, sorted
//
//	// Views
//	InducedSubgraph(g, keep map[string]bool) *Graph // O(V+E), used by district audits
//
// Errors:
//
//	ErrEmptyVertexID  – zero-length vertex ID
//	ErrVertexNotFound – missing vertex
//	ErrLoopNotAllowed – self-loop (a tract never borders itself)
//
// † amortized constant time: atomic ID generation + nested-map insertion.
package core
