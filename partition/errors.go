package partition

import "errors"

// Sentinel errors for partition requests and audits.
var (
	// ErrGraphNil is returned when a nil graph is supplied.
	ErrGraphNil = errors.New("partition: graph is nil")

	// ErrInfeasible is returned when the district count is ≤ 0 or exceeds
	// the number of tracts.
	ErrInfeasible = errors.New("partition: infeasible request")

	// ErrInvalidPolicy is returned for negative or non-finite scoring weights.
	ErrInvalidPolicy = errors.New("partition: invalid scoring policy")

	// ErrAlreadyFilled is returned when Fill runs twice on one Partitioner.
	ErrAlreadyFilled = errors.New("partition: partitioner already filled")

	// ErrNotUnclaimed is the panic value (wrapped) of Swap on a tract no
	// unclaimed region holds.
	ErrNotUnclaimed = errors.New("partition: tract is not held by any unclaimed region")

	// ErrIncomplete reports tracts left unassigned or districts not built.
	ErrIncomplete = errors.New("partition incomplete")

	// ErrNotContiguous reports a district whose members are not connected.
	ErrNotContiguous = errors.New("partition: district is not contiguous")

	// ErrDoubleAssigned reports a tract listed in more than one place.
	ErrDoubleAssigned = errors.New("partition: tract assigned twice")

	// ErrPopulationMismatch reports district totals that disagree with the
	// tracts they list.
	ErrPopulationMismatch = errors.New("partition: district totals mismatch")
)
