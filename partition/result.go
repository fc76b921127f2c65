package partition

import "fmt"

// District is one finished district as handed to callers.
type District struct {
	ID         int      `json:"id"`
	Tracts     []string `json:"tracts"`
	Population int      `json:"population"`
	Area       float64  `json:"area"`
}

// Result is the outcome of one Fill.
type Result struct {
	// RunID is a ULID stamped when the run started.
	RunID string `json:"runId"`

	// Districts lists non-empty districts in build order; each lists its
	// tracts in the order they were claimed.
	Districts []District `json:"districts"`

	// Unassigned lists tracts still unclaimed after the run.
	Unassigned []string `json:"unassigned,omitempty"`

	// Shortfall is the number of requested districts that were not built.
	Shortfall int `json:"shortfall,omitempty"`

	// Requested is the district count the run was asked for.
	Requested int `json:"requested"`

	// Policy is the scoring policy the run used.
	Policy ScoringPolicy `json:"policy"`
}

// Complete reports whether every tract was assigned and every requested
// district was built.
func (r *Result) Complete() bool {
	return len(r.Unassigned) == 0 && r.Shortfall == 0
}

// Err returns nil for a complete plan and an error wrapping ErrIncomplete
// otherwise.
func (r *Result) Err() error {
	if r.Complete() {
		return nil
	}

	return fmt.Errorf("%w: %d tracts unassigned, %d of %d districts not built",
		ErrIncomplete, len(r.Unassigned), r.Shortfall, r.Requested)
}

// Assignments maps every assigned tract ID to its district ID.
func (r *Result) Assignments() map[string]int {
	n := 0
	for _, d := range r.Districts {
		n += len(d.Tracts)
	}
	out := make(map[string]int, n)
	for _, d := range r.Districts {
		for _, id := range d.Tracts {
			out[id] = d.ID
		}
	}

	return out
}

// Populations returns district populations in build order.
func (r *Result) Populations() []int {
	out := make([]int, len(r.Districts))
	for i, d := range r.Districts {
		out[i] = d.Population
	}

	return out
}
