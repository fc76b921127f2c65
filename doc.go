// Package redistrict partitions a map of census-style tracts into a fixed
// number of contiguous, population-balanced districts.
//
// What is redistrict?
//
//	A deterministic greedy region-growing heuristic over a static tract
//	adjacency graph, with the supporting pieces a run needs:
//		• tract:     tracts, edges and the read-only adjacency Graph
//		• region:    incrementally maintained tract sets with an outer frontier
//		• partition: Partitioner, ScoringPolicy, Fill, Verify and Sweep
//		• balance:   population balance statistics and plan ranking
//		• source:    static, grid and CSV loaders plus an LRU cache
//		• gridgraph: synthetic tract maps from 2D population grids
//		• config:    YAML configuration with .env and environment overrides
//
// Under the hood:
//
//	core/: thread-safe adjacency storage shared by every tract.Graph
//	bfs/ : breadth-first traversal, connectivity and component queries
//	dfs/ : depth-first reachability used by plan verification
//
// Quick ASCII example:
//
//	    A───B
//	    │   │
//	    C───D
//
//	With four tracts of equal population and two districts, Fill yields
//	{A B} and {C D}.
//
// The redistrict command (cmd/redistrict) wires everything together and
// prints a JSON plan with its balance summary.
package redistrict
