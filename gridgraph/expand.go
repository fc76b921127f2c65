package gridgraph

import (
	"container/list"
	"fmt"
)

// ExpandIsland finds a minimum-conversion path of water cells to connect
// any cell in component srcComp to any cell in component dstComp, as
// identified by ConnectedComponents(). Each water-cell conversion costs 1.
// Returns the sequence of cell indices (row-major) representing the path
// (including the start and end land cells) and the total conversion cost.
//
// Behavior:
//  1. Validate component indices.
//  2. Multi-source 0–1 BFS from all srcComp cells:
//     • Moving into a land cell  → cost 0
//     • Moving into a water cell → cost 1
//  3. Stop when any dstComp cell is dequeued.
//  4. Reconstruct the path via predecessors.
//
// Complexity: O(W·H·d) time, O(W·H) memory.
func (gg *GridGraph) ExpandIsland(srcComp, dstComp int) (path []int, cost int, err error) {
	comps := gg.ConnectedComponents()
	if srcComp < 0 || srcComp >= len(comps) || dstComp < 0 || dstComp >= len(comps) {
		return nil, 0, ErrComponentIndex
	}
	dstSet := make(map[int]struct{}, len(comps[dstComp]))
	for _, i := range comps[dstComp] {
		dstSet[i] = struct{}{}
	}

	n := gg.Width * gg.Height
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}

	// 0–1 BFS: cost-0 steps go to the front, cost-1 steps to the back.
	dq := list.New()
	for _, i := range comps[srcComp] {
		dist[i] = 0
		dq.PushBack(i)
	}

	target := -1
	for dq.Len() > 0 {
		u := dq.Remove(dq.Front()).(int)
		if _, ok := dstSet[u]; ok {
			target = u
			break
		}
		ux, uy := gg.Coordinate(u)
		for _, d := range gg.neighborOffsets {
			vx, vy := ux+d[0], uy+d[1]
			if !gg.InBounds(vx, vy) {
				continue
			}
			v := gg.index(vx, vy)
			step := 0
			if !gg.IsLand(vx, vy) {
				step = 1
			}
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	if target < 0 {
		return nil, 0, ErrNoPath
	}
	for at := target; at >= 0; at = prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[target], nil
}

// Bridge returns a copy of gg whose islands are joined into one landmass.
// While more than one component remains, the cheapest water path from the
// first component to the second is converted to land with population fill.
// It also returns how many water cells were converted.
//
// Returns ErrNoLand for a grid without land and ErrFillBelowThreshold when
// fill would not count as land.
func (gg *GridGraph) Bridge(fill int) (*GridGraph, int, error) {
	if fill < gg.LandThreshold {
		return nil, 0, fmt.Errorf("%w: %d < %d", ErrFillBelowThreshold, fill, gg.LandThreshold)
	}
	out, err := NewGridGraph(gg.CellValues, GridOptions{
		LandThreshold: gg.LandThreshold,
		Conn:          gg.Conn,
		CellArea:      gg.cellArea,
		Locality:      gg.locality,
	})
	if err != nil {
		return nil, 0, err
	}

	converted := 0
	for {
		comps := out.ConnectedComponents()
		switch len(comps) {
		case 0:
			return nil, 0, ErrNoLand
		case 1:
			return out, converted, nil
		}
		path, _, err := out.ExpandIsland(0, 1)
		if err != nil {
			return nil, converted, err
		}
		for _, idx := range path {
			x, y := out.Coordinate(idx)
			if !out.IsLand(x, y) {
				out.CellValues[y][x] = fill
				converted++
			}
		}
	}
}
