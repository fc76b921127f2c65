package region

import (
	"container/list"

	"github.com/katalvlaran/redistrict/tract"
)

// orderedSet is a set of tracts that remembers insertion order.
// Membership tests and removal are O(1); iteration follows first insertion,
// and a tract removed then re-inserted moves to the back.
type orderedSet struct {
	order *list.List               // of *tract.Tract
	index map[string]*list.Element // tract ID → element in order
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		order: list.New(),
		index: make(map[string]*list.Element, capacity),
	}
}

// add inserts t at the back. Reports false if t was already present.
func (s *orderedSet) add(t *tract.Tract) bool {
	if _, ok := s.index[t.ID]; ok {
		return false
	}
	s.index[t.ID] = s.order.PushBack(t)

	return true
}

// remove deletes the tract with the given id. Reports false if absent.
func (s *orderedSet) remove(id string) bool {
	e, ok := s.index[id]
	if !ok {
		return false
	}
	s.order.Remove(e)
	delete(s.index, id)

	return true
}

func (s *orderedSet) has(id string) bool {
	_, ok := s.index[id]

	return ok
}

func (s *orderedSet) len() int { return len(s.index) }

// each calls fn for every tract in insertion order until fn returns false.
// fn must not mutate the set.
func (s *orderedSet) each(fn func(t *tract.Tract) bool) {
	for e := s.order.Front(); e != nil; e = e.Next() {
		if !fn(e.Value.(*tract.Tract)) {
			return
		}
	}
}

// slice copies the set into a new slice in insertion order.
func (s *orderedSet) slice() []*tract.Tract {
	out := make([]*tract.Tract, 0, s.len())
	s.each(func(t *tract.Tract) bool {
		out = append(out, t)
		return true
	})

	return out
}
