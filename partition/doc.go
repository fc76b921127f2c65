// Package partition grows a fixed number of contiguous, population-balanced
// districts over a tract.Graph with a deterministic greedy heuristic.
//
// What
//
//   - New(g, districts, opts...): validate the request and build one
//     unclaimed region per landmass.
//   - Fill(ctx): build every district in turn and return a Result.
//   - BuildDistrict(target, id): seed one district and grow it tract by
//     tract until adding the best candidate would move its population
//     further from target.
//   - Verify(g, res): audit a Result independently of the bookkeeping
//     that produced it.
//   - Sweep(ctx, g, districts, policies, opts...): run several independent
//     plans in parallel, one per ScoringPolicy.
//
// Growth
//
//	seed  = FindStart()       tract bordering the most built districts
//	loop:
//	  c   = SelectNext(dst)   max  inside(c)·Compactness + sameLocality(c)·Locality
//	  stop when |c.pop + dst.pop − target| > |dst.pop − target|
//	  Swap(dst, c)            move c out of its unclaimed region
//	  split check             are c's unclaimed neighbors still connected?
//	  split repair            keep the largest piece unclaimed, absorb the rest
//
// Ties in FindStart and SelectNext resolve to the first tract found in
// insertion order, so the same input always yields the same plan.
//
// Concurrency
//
//	A Partitioner owns the district stamps of its graph's tracts and is not
//	safe for concurrent use. Independent runs need independent graphs
//	(tract.Graph.Clone); Sweep does this for you. Cancellation is observed
//	between districts only.
//
// Errors
//
//   - ErrGraphNil        nil graph.
//   - ErrInfeasible      district count ≤ 0 or larger than the tract count.
//   - ErrInvalidPolicy   negative or non-finite scoring weight.
//   - ErrAlreadyFilled   Fill called twice on one Partitioner.
//   - ErrIncomplete      carried by Result.Err and Verify when tracts remain
//     unassigned or fewer districts than requested were built.
//
// Calling Swap with a tract no unclaimed region holds is a programming error
// and panics with an error wrapping ErrNotUnclaimed.
package partition
