package partition

import (
	"fmt"
	"math"

	"github.com/katalvlaran/redistrict/bfs"
	"github.com/katalvlaran/redistrict/region"
	"github.com/katalvlaran/redistrict/tract"
)

// BuildDistrict grows one district with the given id toward target.
//
// Steps:
//  1. Create the claimed region and append it to the districts.
//  2. Seed it with FindStart and Swap (returns the empty region if every
//     tract is already claimed).
//  3. Repeat: SelectNext; stop when adding the candidate would move the
//     population strictly further from target; Swap; split check.
//  4. Drop unclaimed regions that became empty.
//
// The returned region is live and must not be mutated once Fill continues.
func (p *Partitioner) BuildDistrict(target float64, id int) *region.Region {
	dst := region.NewClaimed(p.g, id)
	p.districts = append(p.districts, dst)

	seed := p.FindStart()
	if seed == nil {
		return dst
	}
	p.take(dst, seed)

	for {
		cand := p.SelectNext(dst)
		if cand == nil {
			break
		}
		stay := math.Abs(float64(dst.Population()) - target)
		grow := math.Abs(float64(dst.Population()+cand.Population) - target)
		if grow > stay {
			break
		}
		p.take(dst, cand)
	}
	p.dropEmpty()

	return dst
}

// take swaps t into dst and repairs its source region if that split it.
func (p *Partitioner) take(dst *region.Region, t *tract.Tract) {
	src := p.Swap(dst, t)
	if p.splits(src, t) {
		p.repair(dst, src)
	}
}

// FindStart picks the seed of the next district.
//
// Candidates are the members of the first non-empty unclaimed region that
// are boundary tracts or border a tract outside that region. The candidate
// bordering the most distinct built districts wins; ties (including the
// all-zero case of a first district) go to the first candidate in member
// order. When no member qualifies, the first member is used. Returns nil
// when no unclaimed tract is left.
func (p *Partitioner) FindStart() *tract.Tract {
	var src *region.Region
	for _, r := range p.unclaimed {
		if !r.Empty() {
			src = r
			break
		}
	}
	if src == nil {
		return nil
	}

	var (
		best      *tract.Tract
		bestCount = -1
		first     *tract.Tract
		seen      = make(map[int]struct{})
	)
	src.RangeMembers(func(t *tract.Tract) bool {
		if first == nil {
			first = t
		}
		outside := false
		clear(seen)
		for _, n := range p.g.Neighbors(t) {
			if src.Contains(n) {
				continue
			}
			outside = true
			if id, ok := n.District(); ok {
				seen[id] = struct{}{}
			}
		}
		if !outside && !t.Boundary {
			return true
		}
		if len(seen) > bestCount {
			best, bestCount = t, len(seen)
		}

		return true
	})
	if best == nil {
		return first
	}

	return best
}

// SelectNext returns the frontier tract of dst with the highest score under
// the policy, considering only tracts no district claims. Ties go to the
// first tract in frontier order. Returns nil when no candidate is eligible.
// It does not mutate anything, so two calls in a row agree.
func (p *Partitioner) SelectNext(dst *region.Region) *tract.Tract {
	var (
		best      *tract.Tract
		bestScore float64
	)
	dst.RangeFrontier(func(t *tract.Tract) bool {
		if t.Assigned() {
			return true
		}
		s := p.policy.Score(dst.NeighborsInside(t), dst.HasLocality(t.Locality))
		if best == nil || s > bestScore {
			best, bestScore = t, s
		}

		return true
	})

	return best
}

// Swap moves t from the unclaimed region holding it into dst and returns
// that unclaimed region. It panics with an error wrapping ErrNotUnclaimed
// if no unclaimed region holds t.
func (p *Partitioner) Swap(dst *region.Region, t *tract.Tract) *region.Region {
	src := p.owner(t)
	if src == nil {
		panic(fmt.Errorf("partition: swap %q into district %d: %w", t.ID, dst.District(), ErrNotUnclaimed))
	}
	src.Remove(t)
	dst.Add(t)

	return src
}

func (p *Partitioner) owner(t *tract.Tract) *region.Region {
	for _, r := range p.unclaimed {
		if r.Contains(t) {
			return r
		}
	}

	return nil
}

// splits reports whether removing t disconnected src. Only t's neighbors
// still in src can have lost their connection; they are checked pairwise
// along the chain, so one failing pair proves a split.
func (p *Partitioner) splits(src *region.Region, t *tract.Tract) bool {
	var left []*tract.Tract
	for _, n := range p.g.Neighbors(t) {
		if src.Contains(n) {
			left = append(left, n)
		}
	}
	if len(left) < 2 {
		return false
	}

	within := bfs.WithinSet(src.ContainsID)
	for i := 1; i < len(left); i++ {
		ok, err := bfs.Connected(p.g.Topology(), left[i-1].ID, left[i].ID, within)
		if err != nil {
			// Both endpoints are vertices of the topology; anything else is a bug.
			panic(fmt.Errorf("partition: split check around %q: %w", t.ID, err))
		}
		if !ok {
			return true
		}
	}

	return false
}

// repair replaces src by its largest connected piece and adds every other
// piece to dst. Pieces keep src's member order; the largest is the first
// one found among equals.
func (p *Partitioner) repair(dst, src *region.Region) {
	ids := src.MemberIDs()
	comps, err := bfs.Components(p.g.Topology(), ids, bfs.WithinSet(src.ContainsID))
	if err != nil {
		panic(fmt.Errorf("partition: split repair: %w", err))
	}

	largest := 0
	for i, c := range comps {
		if len(c) > len(comps[largest]) {
			largest = i
		}
	}
	keep := make(map[string]bool, len(comps[largest]))
	for _, id := range comps[largest] {
		keep[id] = true
	}

	kept := make([]*tract.Tract, 0, len(keep))
	absorbed := 0
	for _, t := range p.g.Resolve(ids) {
		if keep[t.ID] {
			kept = append(kept, t)
			continue
		}
		dst.Add(t)
		absorbed++
	}

	next := region.FromTracts(p.g, region.Unclaimed, tract.Unassigned, kept)
	for i, r := range p.unclaimed {
		if r == src {
			p.unclaimed[i] = next
			break
		}
	}

	p.metrics.RecordSplitRepair(absorbed)
	p.log.Debug("split repaired",
		"district", dst.District(),
		"pieces", len(comps),
		"kept", len(kept),
		"absorbed", absorbed,
		"population", dst.Population(),
	)
}
