// Package tract defines the atomic areal unit being districted and the
// static adjacency graph over those units.
//
// A Graph is built once from external records and is read-only afterwards:
// its topology never changes during a partition run. The only mutable state
// is each Tract's district stamp, which region bookkeeping writes in place.
// Independent runs therefore each need their own Graph.Clone.
package tract

import "errors"

// Unassigned is the district stamp of a tract no district has claimed.
const Unassigned = 0

// Sentinel errors for graph construction.
var (
	// ErrEmptyID indicates a tract or edge endpoint with an empty ID.
	ErrEmptyID = errors.New("tract: empty tract ID")

	// ErrDuplicateTract indicates two records share the same ID.
	ErrDuplicateTract = errors.New("tract: duplicate tract ID")

	// ErrNegativePopulation indicates a record with population < 0.
	ErrNegativePopulation = errors.New("tract: negative population")

	// ErrNegativeArea indicates a record with area < 0 (or NaN).
	ErrNegativeArea = errors.New("tract: negative or invalid area")

	// ErrUnknownTract indicates an edge endpoint that names no tract.
	ErrUnknownTract = errors.New("tract: edge references unknown tract")

	// ErrSelfAdjacency indicates an edge whose endpoints are equal.
	ErrSelfAdjacency = errors.New("tract: tract cannot border itself")
)

// Tract is one areal unit. All fields except the district stamp are fixed
// for the lifetime of a Graph.
type Tract struct {
	// ID uniquely identifies the tract.
	ID string `json:"id" yaml:"id"`

	// Population is the non-negative head count.
	Population int `json:"population" yaml:"population"`

	// Area is the pre-computed non-negative area.
	Area float64 `json:"area" yaml:"area"`

	// Locality is an opaque grouping key (a county, typically) used only
	// by the locality scoring bonus.
	Locality string `json:"locality,omitempty" yaml:"locality,omitempty"`

	// Boundary is true when the tract touches the outer boundary of the
	// whole mapped territory.
	Boundary bool `json:"boundary,omitempty" yaml:"boundary,omitempty"`

	district int
}

// District returns the id of the district currently claiming t.
// ok is false while the tract is unassigned.
func (t *Tract) District() (id int, ok bool) {
	return t.district, t.district != Unassigned
}

// Assigned reports whether some district claims t.
func (t *Tract) Assigned() bool { return t.district != Unassigned }

// Assign stamps t with district id. Only region bookkeeping should call it.
func (t *Tract) Assign(id int) { t.district = id }

// Unassign clears the district stamp.
func (t *Tract) Unassign() { t.district = Unassigned }

// Edge is an undirected "shares a border with" pair.
type Edge struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}
