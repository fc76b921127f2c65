// Package dfs defines types and options for depth-first search traversal:
// single-source or full-graph (forest) traversal and basic diagnostics.
package dfs

import (
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the specified start vertex ID
	// does not exist in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")
)

// Option configures optional behavior of DFS traversal.
// Use with DFS(g, startID, opts...).
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
type DFSOptions struct {
	// FullTraversal, if true, runs DFS from every unvisited vertex in the graph,
	// covering disconnected components (forest traversal). Default is false.
	FullTraversal bool
}

// DefaultOptions returns single-source traversal (FullTraversal = false).
func DefaultOptions() DFSOptions {
	return DFSOptions{}
}

// WithFullTraversal returns an Option that enables full-graph traversal.
// When set, DFS will restart from each unvisited vertex, covering disconnected components.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in discovery sequence (pre-order).
	Order []string

	// Visited flags which vertices were reached during the traversal.
	Visited map[string]bool

	// Trees counts DFS trees started; in forest mode this is the number of
	// connected components of the graph.
	Trees int
}
