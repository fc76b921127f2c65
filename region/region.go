// Package region implements the incremental bookkeeping structure used
// while growing districts: a set of member tracts together with its
// frontier (tracts bordering the members without being members) and
// running population and area totals.
//
// A Region is either Claimed (it is a district and stamps its id on every
// member) or Unclaimed (a pool of tracts no district owns yet). The two
// kinds share all bookkeeping; they differ only in the stamp written by Add.
//
// Add and Remove keep the frontier invariant exactly:
//
//	t ∈ frontier  ⇔  t ∉ members ∧ t has ≥1 neighbor in members
//
// Neither operation checks contiguity of the members; that is the caller's
// responsibility. Calling Add on a member or Remove on a non-member is a
// programming error and panics.
//
// A Region is not safe for concurrent use.
package region

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/redistrict/tract"
)

// Sentinel errors. ErrAlreadyMember and ErrNotMember are carried by panics.
var (
	// ErrAlreadyMember is the panic value (wrapped) of Add on a member.
	ErrAlreadyMember = errors.New("region: tract is already a member")

	// ErrNotMember is the panic value (wrapped) of Remove on a non-member.
	ErrNotMember = errors.New("region: tract is not a member")

	// ErrInvariant is reported by Check when bookkeeping has drifted.
	ErrInvariant = errors.New("region: invariant violated")
)

// Kind tells a district apart from an unclaimed pool.
type Kind uint8

const (
	// Unclaimed regions hold tracts no district owns yet.
	Unclaimed Kind = iota
	// Claimed regions are districts.
	Claimed
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Claimed:
		return "claimed"
	case Unclaimed:
		return "unclaimed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Region is a mutable subset of a tract.Graph.
type Region struct {
	g        *tract.Graph
	kind     Kind
	district int

	members  *orderedSet
	frontier *orderedSet

	// touch[id] = number of members bordering tract id. Entries are
	// deleted when they fall to zero, so every key is a member or frontier tract.
	touch map[string]int

	// locality histogram over members
	locality map[string]int

	population int
	area       float64
}

func newRegion(g *tract.Graph, kind Kind, district int) *Region {
	return &Region{
		g:        g,
		kind:     kind,
		district: district,
		members:  newOrderedSet(0),
		frontier: newOrderedSet(0),
		touch:    make(map[string]int),
		locality: make(map[string]int),
	}
}

// NewClaimed returns an empty district region stamping id on its members.
// id must be positive.
func NewClaimed(g *tract.Graph, id int) *Region {
	if id == tract.Unassigned {
		panic(fmt.Sprintf("region: claimed region needs a district id, got %d", id))
	}

	return newRegion(g, Claimed, id)
}

// NewUnclaimed returns an empty pool region.
func NewUnclaimed(g *tract.Graph) *Region {
	return newRegion(g, Unclaimed, tract.Unassigned)
}

// FromTracts builds a region of the given kind by adding ts in order.
// district is ignored for Unclaimed regions.
func FromTracts(g *tract.Graph, kind Kind, district int, ts []*tract.Tract) *Region {
	var r *Region
	if kind == Claimed {
		r = NewClaimed(g, district)
	} else {
		r = NewUnclaimed(g)
	}
	for _, t := range ts {
		r.Add(t)
	}

	return r
}

// Add inserts t into the members.
//
// Steps:
//  1. Stamp t: district id for Claimed, cleared for Unclaimed.
//  2. Drop t from the frontier.
//  3. Add population, area and locality.
//  4. Push every non-member neighbor not yet in the frontier onto it.
//
// Panics with an error wrapping ErrAlreadyMember if t is a member.
// Complexity: O(deg(t)).
func (r *Region) Add(t *tract.Tract) {
	if !r.members.add(t) {
		panic(fmt.Errorf("region: add %q: %w", t.ID, ErrAlreadyMember))
	}
	if r.kind == Claimed {
		t.Assign(r.district)
	} else {
		t.Unassign()
	}
	r.frontier.remove(t.ID)

	r.population += t.Population
	r.area += t.Area
	r.locality[t.Locality]++

	for _, n := range r.g.Neighbors(t) {
		r.touch[n.ID]++
		if !r.members.has(n.ID) {
			r.frontier.add(n)
		}
	}
}

// Remove deletes t from the members and re-evaluates the frontier around it:
// neighbors left without any member neighbor leave the frontier, and t itself
// joins the frontier iff it still borders a member.
//
// The district stamp of t is left for the region that adds it next.
// Panics with an error wrapping ErrNotMember if t is not a member.
// Complexity: O(deg(t)).
func (r *Region) Remove(t *tract.Tract) {
	if !r.members.remove(t.ID) {
		panic(fmt.Errorf("region: remove %q: %w", t.ID, ErrNotMember))
	}

	r.population -= t.Population
	r.area -= t.Area
	if r.locality[t.Locality]--; r.locality[t.Locality] == 0 {
		delete(r.locality, t.Locality)
	}

	for _, n := range r.g.Neighbors(t) {
		if r.touch[n.ID]--; r.touch[n.ID] == 0 {
			delete(r.touch, n.ID)
			r.frontier.remove(n.ID)
		}
	}
	if r.touch[t.ID] > 0 {
		r.frontier.add(t)
	}
	if r.members.len() == 0 {
		// float residue from repeated add/subtract
		r.area = 0
	}
}

// Kind returns the region kind.
func (r *Region) Kind() Kind { return r.kind }

// District returns the district id, or tract.Unassigned for pools.
func (r *Region) District() int { return r.district }

// Graph returns the tract graph the region lives on.
func (r *Region) Graph() *tract.Graph { return r.g }

// Population returns the summed population of the members.
func (r *Region) Population() int { return r.population }

// Area returns the summed area of the members.
func (r *Region) Area() float64 { return r.area }

// Len returns the number of members.
func (r *Region) Len() int { return r.members.len() }

// Empty reports whether the region has no members.
func (r *Region) Empty() bool { return r.members.len() == 0 }

// Contains reports whether t is a member.
func (r *Region) Contains(t *tract.Tract) bool { return r.members.has(t.ID) }

// ContainsID reports whether the tract with the given id is a member.
// It has the shape traversal filters expect.
func (r *Region) ContainsID(id string) bool { return r.members.has(id) }

// InFrontier reports whether t is in the frontier.
func (r *Region) InFrontier(t *tract.Tract) bool { return r.frontier.has(t.ID) }

// FrontierLen returns the size of the frontier.
func (r *Region) FrontierLen() int { return r.frontier.len() }

// Members returns the members in insertion order.
func (r *Region) Members() []*tract.Tract { return r.members.slice() }

// Frontier returns the frontier in insertion order.
func (r *Region) Frontier() []*tract.Tract { return r.frontier.slice() }

// RangeMembers calls fn on each member in insertion order until fn returns
// false. fn must not mutate the region.
func (r *Region) RangeMembers(fn func(t *tract.Tract) bool) { r.members.each(fn) }

// RangeFrontier calls fn on each frontier tract in insertion order until fn
// returns false. fn must not mutate the region.
func (r *Region) RangeFrontier(fn func(t *tract.Tract) bool) { r.frontier.each(fn) }

// MemberIDs returns the member IDs in insertion order.
func (r *Region) MemberIDs() []string {
	ids := make([]string, 0, r.members.len())
	r.members.each(func(t *tract.Tract) bool {
		ids = append(ids, t.ID)
		return true
	})

	return ids
}

// HasLocality reports whether some member carries the locality key.
func (r *Region) HasLocality(key string) bool { return r.locality[key] > 0 }

// NeighborsInside returns how many neighbors of t are members.
func (r *Region) NeighborsInside(t *tract.Tract) int { return r.touch[t.ID] }

// Check recomputes frontier, totals, locality counts and stamps from the
// members and compares them with the incremental state. It returns nil or an
// error wrapping ErrInvariant describing the first mismatch.
//
// Complexity: O(Σ deg(members)).
func (r *Region) Check() error {
	var (
		pop   int
		area  float64
		loc   = make(map[string]int)
		touch = make(map[string]int)
	)
	for _, m := range r.members.slice() {
		pop += m.Population
		area += m.Area
		loc[m.Locality]++
		if got, _ := m.District(); got != r.district {
			return fmt.Errorf("%w: member %q stamped %d, want %d", ErrInvariant, m.ID, got, r.district)
		}
		for _, n := range r.g.Neighbors(m) {
			touch[n.ID]++
		}
	}

	if pop != r.population {
		return fmt.Errorf("%w: population %d, recomputed %d", ErrInvariant, r.population, pop)
	}
	if d := area - r.area; d > 1e-6 || d < -1e-6 {
		return fmt.Errorf("%w: area %v, recomputed %v", ErrInvariant, r.area, area)
	}
	if len(loc) != len(r.locality) {
		return fmt.Errorf("%w: %d localities, recomputed %d", ErrInvariant, len(r.locality), len(loc))
	}
	for k, c := range loc {
		if r.locality[k] != c {
			return fmt.Errorf("%w: locality %q count %d, recomputed %d", ErrInvariant, k, r.locality[k], c)
		}
	}
	if len(touch) != len(r.touch) {
		return fmt.Errorf("%w: %d touched tracts, recomputed %d", ErrInvariant, len(r.touch), len(touch))
	}

	want := 0
	for id, c := range touch {
		if r.touch[id] != c {
			return fmt.Errorf("%w: tract %q borders %d members, recorded %d", ErrInvariant, id, c, r.touch[id])
		}
		inFrontier := r.frontier.has(id)
		isMember := r.members.has(id)
		if isMember && inFrontier {
			return fmt.Errorf("%w: member %q is in the frontier", ErrInvariant, id)
		}
		if !isMember {
			if !inFrontier {
				return fmt.Errorf("%w: %q borders the region but is not in the frontier", ErrInvariant, id)
			}
			want++
		}
	}
	if want != r.frontier.len() {
		return fmt.Errorf("%w: frontier has %d tracts, recomputed %d", ErrInvariant, r.frontier.len(), want)
	}

	return nil
}

// String implements fmt.Stringer.
func (r *Region) String() string {
	if r.kind == Claimed {
		return fmt.Sprintf("district %d (%d tracts, pop %d)", r.district, r.members.len(), r.population)
	}

	return fmt.Sprintf("unclaimed (%d tracts, pop %d)", r.members.len(), r.population)
}
